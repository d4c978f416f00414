package domain

import "time"

// FeedbackEntry represents one user-submitted rating+comment record.
// Entries are immutable after creation; there is no update or delete path.
type FeedbackEntry struct {
	ID          int64
	Name        string
	Email       string
	Rating      int
	Comments    string
	SubmittedAt time.Time
}
