package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/NefariousNGGA/backend/internal/domain"
)

var tracer = otel.Tracer("service")

// NotificationChannel is the pub/sub channel carrying one recipient's events.
func NotificationChannel(recipientID int64) string {
	return fmt.Sprintf("lair:notifications:%d", recipientID)
}

// SignalService pushes freshly stored notifications to connected clients.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Notify(ctx context.Context, notification domain.Notification) error {
	ctx, span := tracer.Start(ctx, "Signal.Service.Notify")
	defer span.End()

	n := notification
	return s.Publish(ctx, NotificationChannel(n.RecipientID), domain.Event{
		Type:         domain.EventNotification,
		Notification: &n,
	})
}

func (s *SignalService) Publish(ctx context.Context, channel string, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return errors.Wrap(err, "redis publish failed")
	}

	return nil
}

// Subscribe forwards the recipient's events to out until ctx is done.
func (s *SignalService) Subscribe(ctx context.Context, recipientID int64, out chan<- domain.Event) error {
	pubsub := s.rdb.Subscribe(ctx, NotificationChannel(recipientID))
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "redis subscribe failed")
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed realtime event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
