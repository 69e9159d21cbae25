package shared

import "time"

// Accepted date inputs, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses value against the accepted layouts. An empty value yields
// the zero time with no error; callers decide whether that is acceptable.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
