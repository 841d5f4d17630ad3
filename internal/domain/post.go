package domain

import "time"

// Post is a published writing. Posts are immutable once created.
type Post struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	Title        *string   `json:"title"`
	Body         string    `json:"content"`
	MoodTags     []string  `json:"mood_tags"`
	SubmissionID *int64    `json:"submission_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostView is a post joined with its author.
type PostView struct {
	Post
	AuthorHandle      string `json:"author_username"`
	AuthorDisplayName string `json:"author_display_name"`
}
