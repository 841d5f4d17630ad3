package domain

import "time"

// Submission is a draft awaiting moderation. Once published it is terminal.
type Submission struct {
	ID         int64            `json:"id"`
	IdentityID int64            `json:"identity_id"`
	Title      *string          `json:"title"`
	Body       string           `json:"content"`
	MoodTags   []string         `json:"mood_tags"`
	Status     SubmissionStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

type SubmissionView struct {
	Submission
	Handle      string `json:"username"`
	DisplayName string `json:"display_name"`
}
