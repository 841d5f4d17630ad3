package models

import (
	"time"
)

type Identity struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	Handle         string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	DisplayName    string    `json:"display_name" gorm:"type:text;not null"`
	CredentialHash string    `json:"-" gorm:"type:text;not null"`
	LookupKey      string    `json:"-" gorm:"type:text;uniqueIndex;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null"`
}

type Post struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	AuthorID     int64     `json:"author_id" gorm:"index;not null"`
	Author       Identity  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title        *string   `json:"title" gorm:"type:text"`
	Body         string    `json:"content" gorm:"type:text;not null"`
	MoodTags     TagArray  `json:"mood_tags"`
	SubmissionID *int64    `json:"submission_id" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at" gorm:"index;not null"`
}

type Comment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PostID     int64     `json:"post_id" gorm:"index;not null"`
	Post       Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	IdentityID int64     `json:"identity_id" gorm:"index;not null"`
	Identity   Identity  `json:"-" gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE;"`
	Body       string    `json:"content" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"index;not null"`
}

// Reaction holds at most one row per (post, identity).
type Reaction struct {
	PostID     int64     `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	Post       Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	IdentityID int64     `json:"identity_id" gorm:"primaryKey;autoIncrement:false;index"`
	Identity   Identity  `json:"-" gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE;"`
	Emoji      string    `json:"emoji" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}

type Notification struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	RecipientID int64     `json:"recipient_id" gorm:"index;not null"`
	Recipient   Identity  `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;"`
	Type        string    `json:"type" gorm:"type:text;not null"`
	SourceID    int64     `json:"source_id" gorm:"not null"`
	Source      Identity  `json:"-" gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE;"`
	PostID      int64     `json:"post_id" gorm:"not null"`
	Post        Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	CommentID   int64     `json:"comment_id" gorm:"not null"`
	Comment     Comment   `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"index;not null"`
}

type Submission struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	IdentityID int64     `json:"identity_id" gorm:"index;not null"`
	Identity   Identity  `json:"-" gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE;"`
	Title      *string   `json:"title" gorm:"type:text"`
	Body       string    `json:"content" gorm:"type:text;not null"`
	MoodTags   TagArray  `json:"mood_tags"`
	Status     string    `json:"status" gorm:"type:text;index;not null;default:'pending'"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}
