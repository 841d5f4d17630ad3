package domain

import "time"

type Notification struct {
	ID          int64            `json:"id"`
	RecipientID int64            `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	SourceID    int64            `json:"source_id"`
	PostID      int64            `json:"post_id"`
	CommentID   int64            `json:"comment_id"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}

type NotificationView struct {
	ID                int64            `json:"id"`
	Type              NotificationType `json:"type"`
	CreatedAt         time.Time        `json:"created_at"`
	IsRead            bool             `json:"is_read"`
	SourceHandle      string           `json:"source_username"`
	SourceDisplayName string           `json:"source_display_name"`
	PostID            *int64           `json:"post_id"`
	PostTitle         *string          `json:"post_title"`
}
