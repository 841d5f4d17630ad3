package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/monitoring"
)

const (
	notificationWindow = 30 * 24 * time.Hour
	notificationLimit  = 10
)

type NotificationUsecase struct {
	identities    IdentityRepository
	notifications NotificationRepository
	notifier      Notifier
	now           func() time.Time
}

// NewNotificationUsecase builds the fan-out. notifier may be nil.
func NewNotificationUsecase(identities IdentityRepository, notifications NotificationRepository, notifier Notifier) *NotificationUsecase {
	return &NotificationUsecase{
		identities:    identities,
		notifications: notifications,
		notifier:      notifier,
		now:           time.Now,
	}
}

// OnCommentCreated persists one mention notification per distinct existing
// identity mentioned in the comment, skipping the author. It runs inside the
// comment's transaction, once per comment, and does not deliver anything.
func (uc *NotificationUsecase) OnCommentCreated(ctx context.Context, comment domain.Comment, author domain.Identity) ([]domain.Notification, error) {
	ctx, span := tracer.Start(ctx, "Notification.Usecase.OnCommentCreated")
	defer span.End()

	mentions := ExtractMentions(comment.Body)
	if len(mentions) == 0 {
		return nil, nil
	}

	mentioned, err := uc.identities.FindByHandles(ctx, mentions)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "NotificationUsecase.OnCommentCreated: FindByHandles failed")
	}

	created := uc.now()
	pending := make([]domain.Notification, 0, len(mentioned))
	seen := make(map[int64]struct{}, len(mentioned))
	for _, identity := range mentioned {
		if identity.ID == author.ID {
			continue
		}
		if _, ok := seen[identity.ID]; ok {
			continue
		}
		seen[identity.ID] = struct{}{}
		pending = append(pending, domain.Notification{
			RecipientID: identity.ID,
			Type:        domain.NotificationMention,
			SourceID:    author.ID,
			PostID:      comment.PostID,
			CommentID:   comment.ID,
			CreatedAt:   created,
		})
	}
	if len(pending) == 0 {
		return nil, nil
	}

	saved, err := uc.notifications.CreateBatch(ctx, pending)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "NotificationUsecase.OnCommentCreated: CreateBatch failed")
	}

	span.SetAttributes(attribute.Int("Notifications", len(saved)))
	return saved, nil
}

// Deliver pushes committed notifications to live subscribers. Failures are
// logged; the stored rows stay authoritative.
func (uc *NotificationUsecase) Deliver(ctx context.Context, saved []domain.Notification) {
	if len(saved) == 0 {
		return
	}
	monitoring.NotificationsCreated.WithLabelValues(string(domain.NotificationMention)).Add(float64(len(saved)))

	if uc.notifier == nil {
		return
	}
	for _, n := range saved {
		if err := uc.notifier.Notify(ctx, n); err != nil {
			slog.WarnContext(
				ctx, "failed to deliver realtime notification",
				slog.String("error", err.Error()),
				slog.Int64("notification", n.ID),
				slog.String("module", "notification"),
			)
		}
	}
}

// ListMine returns the recipient's notifications from the last 30 days,
// newest first.
func (uc *NotificationUsecase) ListMine(ctx context.Context, requester *domain.Identity) ([]domain.NotificationView, error) {
	if requester == nil {
		return nil, domain.UnauthorizedError{Reason: "not authenticated"}
	}
	return uc.notifications.ListRecent(ctx, requester.ID, uc.now().Add(-notificationWindow), notificationLimit)
}

// SetRead toggles the read flag. Only the recipient can change it; another
// identity's notification is reported as not found.
func (uc *NotificationUsecase) SetRead(ctx context.Context, requester *domain.Identity, id int64, read bool) error {
	if requester == nil {
		return domain.UnauthorizedError{Reason: "not authenticated"}
	}
	ok, err := uc.notifications.SetRead(ctx, id, requester.ID, read)
	if err != nil {
		return errors.Wrap(err, "NotificationUsecase.SetRead failed")
	}
	if !ok {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}
