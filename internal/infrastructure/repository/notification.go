package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/NefariousNGGA/backend/internal/domain"
	"github.com/NefariousNGGA/backend/internal/infrastructure/database/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateBatch(ctx context.Context, notifications []domain.Notification) ([]domain.Notification, error) {
	if len(notifications) == 0 {
		return nil, nil
	}

	rows := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, models.Notification{
			RecipientID: n.RecipientID,
			Type:        string(n.Type),
			SourceID:    n.SourceID,
			PostID:      n.PostID,
			CommentID:   n.CommentID,
			IsRead:      n.IsRead,
			CreatedAt:   stamp(n.CreatedAt),
		})
	}
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return nil, domain.NewStoreError("notifications.create", err)
	}

	saved := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		saved = append(saved, domain.Notification{
			ID:          row.ID,
			RecipientID: row.RecipientID,
			Type:        domain.NotificationType(row.Type),
			SourceID:    row.SourceID,
			PostID:      row.PostID,
			CommentID:   row.CommentID,
			IsRead:      row.IsRead,
			CreatedAt:   row.CreatedAt,
		})
	}
	return saved, nil
}

type notificationRow struct {
	ID                int64
	Type              string
	CreatedAt         time.Time
	IsRead            bool
	SourceHandle      string
	SourceDisplayName string
	PostID            *int64
	PostTitle         *string
}

// ListRecent returns the recipient's notifications created after since,
// newest first.
func (r *NotificationRepository) ListRecent(ctx context.Context, recipientID int64, since time.Time, limit int) ([]domain.NotificationView, error) {
	var rows []notificationRow
	err := r.db.WithContext(ctx).
		Table("notifications").
		Select("notifications.id, notifications.type, notifications.created_at, notifications.is_read, " +
			"identities.handle AS source_handle, identities.display_name AS source_display_name, " +
			"posts.id AS post_id, posts.title AS post_title").
		Joins("JOIN identities ON identities.id = notifications.source_id").
		Joins("LEFT JOIN posts ON posts.id = notifications.post_id").
		Where("notifications.recipient_id = ? AND notifications.created_at > ?", recipientID, since.UTC()).
		Order("notifications.created_at DESC, notifications.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("notifications.list", err)
	}

	result := make([]domain.NotificationView, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.NotificationView{
			ID:                row.ID,
			Type:              domain.NotificationType(row.Type),
			CreatedAt:         row.CreatedAt,
			IsRead:            row.IsRead,
			SourceHandle:      row.SourceHandle,
			SourceDisplayName: row.SourceDisplayName,
			PostID:            row.PostID,
			PostTitle:         row.PostTitle,
		})
	}
	return result, nil
}

// SetRead reports false when no notification with id belongs to recipientID.
func (r *NotificationRepository) SetRead(ctx context.Context, id, recipientID int64, read bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", read)
	if result.Error != nil {
		return false, domain.NewStoreError("notifications.set_read", result.Error)
	}
	return result.RowsAffected > 0, nil
}
