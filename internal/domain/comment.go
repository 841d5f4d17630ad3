package domain

import "time"

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	IdentityID int64     `json:"identity_id"`
	Body       string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentView struct {
	Comment
	Handle      string `json:"username"`
	DisplayName string `json:"display_name"`
}

// CommentResult is returned by comment creation.
type CommentResult struct {
	CommentID     int64     `json:"comment_id"`
	CreatedAt     time.Time `json:"created_at"`
	Notifications int       `json:"notifications"`
}
