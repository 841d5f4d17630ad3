package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/NefariousNGGA/backend/internal/domain"
)

// memStore backs every repository port for usecase tests.
type memStore struct {
	mu sync.Mutex

	nextID        int64
	identities    []memIdentity
	posts         map[int64]domain.Post
	comments      []domain.Comment
	reactions     map[[2]int64]domain.Reaction
	notifications []domain.Notification
	submissions   map[int64]domain.Submission

	failWith          error
	failNotifications error
}

type memIdentity struct {
	identity  domain.Identity
	hash      string
	lookupKey string
}

func newMemStore() *memStore {
	return &memStore{
		posts:       map[int64]domain.Post{},
		reactions:   map[[2]int64]domain.Reaction{},
		submissions: map[int64]domain.Submission{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addPost(authorID int64) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Post{ID: s.id(), AuthorID: authorID, Body: "a post", MoodTags: []string{}, CreatedAt: time.Now()}
	s.posts[p.ID] = p
	return p
}

func (s *memStore) reactionRows(postID, identityID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.reactions {
		if k[0] == postID && k[1] == identityID {
			n++
		}
	}
	return n
}

func (s *memStore) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// --- identities ---

type memIdentities struct{ *memStore }

func (m memIdentities) Create(ctx context.Context, in NewIdentity) (domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return domain.Identity{}, m.failWith
	}
	for _, row := range m.identities {
		if row.identity.Handle == in.Handle {
			return domain.Identity{}, domain.ConflictError{Resource: "username"}
		}
	}
	identity := domain.Identity{ID: m.id(), Handle: in.Handle, DisplayName: in.DisplayName, CreatedAt: time.Now()}
	m.identities = append(m.identities, memIdentity{identity: identity, hash: in.CredentialHash, lookupKey: in.LookupKey})
	return identity, nil
}

func (m memIdentities) HandleExists(ctx context.Context, handle string) (bool, error) {
	found, err := m.GetByHandle(ctx, handle)
	return found != nil, err
}

func (m memIdentities) Get(ctx context.Context, id int64) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.identities {
		if row.identity.ID == id {
			identity := row.identity
			return &identity, nil
		}
	}
	return nil, nil
}

func (m memIdentities) GetByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, row := range m.identities {
		if row.identity.Handle == handle {
			identity := row.identity
			return &identity, nil
		}
	}
	return nil, nil
}

func (m memIdentities) FindByHandles(ctx context.Context, handles []string) ([]domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, h := range handles {
		want[h] = true
	}
	var result []domain.Identity
	for _, row := range m.identities {
		if want[row.identity.Handle] {
			result = append(result, row.identity)
		}
	}
	return result, nil
}

func (m memIdentities) GetCredentialByLookupKey(ctx context.Context, key string) (*StoredCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.identities {
		if row.lookupKey == key {
			return &StoredCredential{Identity: row.identity, Hash: row.hash}, nil
		}
	}
	return nil, nil
}

func (m memIdentities) ScanCredentials(ctx context.Context, batchSize int, visit func(StoredCredential) bool) error {
	m.mu.Lock()
	if m.failWith != nil {
		m.mu.Unlock()
		return m.failWith
	}
	rows := append([]memIdentity(nil), m.identities...)
	m.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return rows[i].identity.ID < rows[j].identity.ID })
	for _, row := range rows {
		if !visit(StoredCredential{Identity: row.identity, Hash: row.hash}) {
			return nil
		}
	}
	return nil
}

// --- posts ---

type memPosts struct{ *memStore }

func (m memPosts) Get(ctx context.Context, id int64) (*domain.PostView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &domain.PostView{Post: p}, nil
}

func (m memPosts) Exists(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.posts[id]
	return ok, nil
}

func (m memPosts) List(ctx context.Context, limit int) ([]domain.PostView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.PostView
	for _, p := range m.posts {
		result = append(result, domain.PostView{Post: p})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- comments ---

type memComments struct{ *memStore }

// Create mimics the transactional store: an afterInsert error drops the
// comment and anything recorded against it.
func (m memComments) Create(ctx context.Context, c domain.Comment, afterInsert func(ctx context.Context, saved domain.Comment) error) (domain.Comment, error) {
	m.mu.Lock()
	c.ID = m.id()
	m.comments = append(m.comments, c)
	m.mu.Unlock()

	if afterInsert == nil {
		return c, nil
	}
	if err := afterInsert(ctx, c); err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.comments = slices.DeleteFunc(m.comments, func(kept domain.Comment) bool { return kept.ID == c.ID })
		m.notifications = slices.DeleteFunc(m.notifications, func(n domain.Notification) bool { return n.CommentID == c.ID })
		return domain.Comment{}, err
	}
	return c, nil
}

func (m memComments) ListByPost(ctx context.Context, postID int64) ([]domain.CommentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.CommentView
	for _, c := range m.comments {
		if c.PostID == postID {
			result = append(result, domain.CommentView{Comment: c})
		}
	}
	return result, nil
}

// --- reactions ---

type memReactions struct{ *memStore }

func (m memReactions) Upsert(ctx context.Context, r domain.Reaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reactions[[2]int64{r.PostID, r.IdentityID}] = r
	return nil
}

func (m memReactions) Counts(ctx context.Context, postID int64) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for k, r := range m.reactions {
		if k[0] == postID {
			counts[r.Emoji]++
		}
	}
	return counts, nil
}

func (m memReactions) Get(ctx context.Context, postID, identityID int64) (*string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reactions[[2]int64{postID, identityID}]
	if !ok {
		return nil, nil
	}
	emoji := r.Emoji
	return &emoji, nil
}

// --- notifications ---

type memNotifications struct{ *memStore }

func (m memNotifications) CreateBatch(ctx context.Context, ns []domain.Notification) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNotifications != nil {
		return nil, m.failNotifications
	}
	saved := make([]domain.Notification, 0, len(ns))
	for _, n := range ns {
		n.ID = m.id()
		m.notifications = append(m.notifications, n)
		saved = append(saved, n)
	}
	return saved, nil
}

func (m memNotifications) ListRecent(ctx context.Context, recipientID int64, since time.Time, limit int) ([]domain.NotificationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.NotificationView
	for i := len(m.notifications) - 1; i >= 0; i-- {
		n := m.notifications[i]
		if n.RecipientID != recipientID || !n.CreatedAt.After(since) {
			continue
		}
		postID := n.PostID
		result = append(result, domain.NotificationView{ID: n.ID, Type: n.Type, CreatedAt: n.CreatedAt, IsRead: n.IsRead, PostID: &postID})
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m memNotifications) SetRead(ctx context.Context, id, recipientID int64, read bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notifications {
		if m.notifications[i].ID == id && m.notifications[i].RecipientID == recipientID {
			m.notifications[i].IsRead = read
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) notificationsFor(recipientID int64) []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result
}

// --- submissions ---

type memSubmissions struct{ *memStore }

func (m memSubmissions) Create(ctx context.Context, s domain.Submission) (domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	m.submissions[s.ID] = s
	return s, nil
}

func (m memSubmissions) ListPending(ctx context.Context) ([]domain.SubmissionView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.SubmissionView
	for _, s := range m.submissions {
		if s.Status == domain.SubmissionPending {
			result = append(result, domain.SubmissionView{Submission: s})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m memSubmissions) Publish(ctx context.Context, id int64) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok || s.Status != domain.SubmissionPending {
		return domain.Post{}, domain.NotFoundError{Resource: "submission"}
	}
	submissionID := s.ID
	p := domain.Post{
		ID:           m.id(),
		AuthorID:     s.IdentityID,
		Title:        s.Title,
		Body:         s.Body,
		MoodTags:     s.MoodTags,
		SubmissionID: &submissionID,
		CreatedAt:    time.Now(),
	}
	m.posts[p.ID] = p
	s.Status = domain.SubmissionPublished
	m.submissions[id] = s
	return p, nil
}

// --- profiles ---

type memProfiles struct{ *memStore }

func (m memProfiles) LastSeen(ctx context.Context, identityID int64) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	consider := func(t time.Time) {
		if latest == nil || t.After(*latest) {
			tt := t
			latest = &tt
		}
	}
	for _, c := range m.comments {
		if c.IdentityID == identityID {
			consider(c.CreatedAt)
		}
	}
	for _, r := range m.reactions {
		if r.IdentityID == identityID {
			consider(r.CreatedAt)
		}
	}
	for _, s := range m.submissions {
		if s.IdentityID == identityID {
			consider(s.CreatedAt)
		}
	}
	return latest, nil
}

func (m memProfiles) RecentComments(ctx context.Context, identityID int64, limit int) ([]domain.ProfileComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.ProfileComment
	for i := len(m.comments) - 1; i >= 0 && len(result) < limit; i-- {
		c := m.comments[i]
		if c.IdentityID == identityID {
			result = append(result, domain.ProfileComment{Body: c.Body, CreatedAt: c.CreatedAt, PostID: c.PostID})
		}
	}
	return result, nil
}

// --- hasher ---

// fakeHasher stands in for bcrypt: deterministic and cheap, but still one-way.
type fakeHasher struct {
	mu       sync.Mutex
	next     int
	verifies int
}

func (h *fakeHasher) Generate() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	return fmt.Sprintf("credential-%021d", h.next), nil
}

func (h *fakeHasher) Hash(raw string) (string, error) {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}

func (h *fakeHasher) Verify(hash, raw string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	expected, _ := h.Hash(raw)
	return expected == hash
}

func (h *fakeHasher) verifications() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verifies
}

// --- notifier ---

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
	return n.err
}
