package meeting

import "time"

const (
	StatusToday    = "today"
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

// Meeting.Status is never stored; it is derived from the meeting date at
// read time so stored and computed values cannot drift.
type Meeting struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Location     string    `json:"location"`
	Participants []int64   `json:"participants"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
