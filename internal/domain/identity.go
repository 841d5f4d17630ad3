package domain

import "time"

// Identity is a registered handle. It never carries the credential hash.
type Identity struct {
	ID          int64     `json:"id"`
	Handle      string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// IssuedCredential is the single disclosure of a raw credential. LookupKey is
// a non-secret dispatch key; it never authenticates on its own.
type IssuedCredential struct {
	Identity   Identity `json:"user"`
	Credential string   `json:"token"`
	LookupKey  string   `json:"lookup_key"`
}

// Profile is the public view of an identity.
type Profile struct {
	Identity       Identity         `json:"user"`
	LastSeen       time.Time        `json:"last_seen"`
	RecentComments []ProfileComment `json:"recent_comments"`
}

type ProfileComment struct {
	Body      string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	PostID    int64     `json:"post_id"`
	PostTitle *string   `json:"post_title"`
}
