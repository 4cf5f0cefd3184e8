package notificationrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Save inserts one row per recipient. Rows that already exist are left as they
// are, so a redelivered notification keeps its read state.
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification, recipients []kernel.UUID) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(recipients))
	for _, recipient := range recipients {
		if err := recipient.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(n, recipient))
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}

// ListForUser returns the user's inbox, newest first.
func (r *GormNotificationRepository) ListForUser(
	ctx context.Context,
	userID kernel.UUID,
	filter notification.InboxFilter,
) ([]notification.InboxEntry, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit == 0 {
		limit = action.DefaultQueryLimit
	}
	if limit < 1 || limit > action.MaxQueryLimit {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, action.MaxQueryLimit)
	}

	tx := r.db.WithContext(ctx).Where("recipient_id = ?", userID.Bytes())
	if filter.Since != nil {
		tx = tx.Where("created_at > ?", filter.Since.UTC())
	}
	if filter.UnreadOnly {
		tx = tx.Where("read_at IS NULL")
	}

	var dtos []NotificationDTO
	if err := tx.Order("created_at DESC").Limit(limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]notification.InboxEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MarkRead stamps the entry as read. Marking an entry read twice keeps the
// first read time.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, notificationID, userID kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("notification_id = ? AND recipient_id = ? AND read_at IS NULL", notificationID.Bytes(), userID.Bytes()).
		Update("read_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("notification_id = ? AND recipient_id = ?", notificationID.Bytes(), userID.Bytes()).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("notification", notificationID.String())
	}

	return nil
}

// DeleteOlderThan removes inbox rows created before horizon.
func (r *GormNotificationRepository) DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", horizon.UTC()).Delete(&NotificationDTO{})
	return result.RowsAffected, result.Error
}
