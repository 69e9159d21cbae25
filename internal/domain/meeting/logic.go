package meeting

import "time"

const dateLayout = "2006-01-02"

// FormatTimeRange combines separate start/end times into the display string
// stored with the meeting. Either side missing falls back to the zero range.
func FormatTimeRange(start, end string) string {
	if start == "" || end == "" {
		return "00:00 - 00:00"
	}
	return start + " - " + end
}

// DeriveStatus classifies a meeting date against the current date. ISO date
// strings compare lexicographically, so no parsing is needed.
func DeriveStatus(date string, now time.Time) string {
	today := now.Format(dateLayout)
	switch {
	case date == today:
		return StatusToday
	case date < today:
		return StatusPast
	default:
		return StatusUpcoming
	}
}

func ApplyStatus(list []Meeting, now time.Time) {
	for i := range list {
		list[i].Status = DeriveStatus(list[i].Date, now)
	}
}
