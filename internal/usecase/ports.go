package usecase

import (
	"context"
	"time"

	"github.com/NefariousNGGA/backend/internal/domain"
)

// StoredCredential pairs an identity with its credential hash. It only
// travels between the credential store and the resolver.
type StoredCredential struct {
	Identity domain.Identity
	Hash     string
}

// NewIdentity is what the credential store persists at issuance.
type NewIdentity struct {
	Handle         string
	DisplayName    string
	CredentialHash string
	LookupKey      string
}

// IdentityRepository is the credential store.
type IdentityRepository interface {
	Create(ctx context.Context, identity NewIdentity) (domain.Identity, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	Get(ctx context.Context, id int64) (*domain.Identity, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Identity, error)
	FindByHandles(ctx context.Context, handles []string) ([]domain.Identity, error)
	GetCredentialByLookupKey(ctx context.Context, lookupKey string) (*StoredCredential, error)
	// ScanCredentials visits credentials in ascending identity id order, batchSize
	// rows at a time, until visit returns false or the rows are exhausted.
	ScanCredentials(ctx context.Context, batchSize int, visit func(StoredCredential) bool) error
}

// CredentialHasher generates and verifies raw credentials.
type CredentialHasher interface {
	Generate() (string, error)
	Hash(raw string) (string, error)
	Verify(hash, raw string) bool
}

type PostRepository interface {
	Get(ctx context.Context, id int64) (*domain.PostView, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit int) ([]domain.PostView, error)
}

type CommentRepository interface {
	// Create inserts the comment and runs afterInsert in the same transaction.
	// Repository calls made with afterInsert's context join it; an afterInsert
	// error rolls the comment back.
	Create(ctx context.Context, comment domain.Comment, afterInsert func(ctx context.Context, saved domain.Comment) error) (domain.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]domain.CommentView, error)
}

type ReactionRepository interface {
	// Upsert replaces the (post, identity) reaction in a single conflict-resolving write.
	Upsert(ctx context.Context, reaction domain.Reaction) error
	Counts(ctx context.Context, postID int64) (map[string]int64, error)
	Get(ctx context.Context, postID, identityID int64) (*string, error)
}

type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []domain.Notification) ([]domain.Notification, error)
	ListRecent(ctx context.Context, recipientID int64, since time.Time, limit int) ([]domain.NotificationView, error)
	SetRead(ctx context.Context, id, recipientID int64, read bool) (bool, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	ListPending(ctx context.Context) ([]domain.SubmissionView, error)
	// Publish atomically moves a pending submission to published and creates
	// its post. It fails with domain.NotFoundError when the submission is
	// missing or no longer pending.
	Publish(ctx context.Context, submissionID int64) (domain.Post, error)
}

type ProfileRepository interface {
	LastSeen(ctx context.Context, identityID int64) (*time.Time, error)
	RecentComments(ctx context.Context, identityID int64, limit int) ([]domain.ProfileComment, error)
}

// Notifier delivers freshly persisted notifications to live subscribers.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}
