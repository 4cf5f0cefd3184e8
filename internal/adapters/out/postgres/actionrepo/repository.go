package actionrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// newestFirst orders by time, then insertion. Actions of one order never share
// a time; seq only settles ties between different orders.
const newestFirst = "occurred_at DESC, seq DESC"

// GormActionLog implements ActionLog using GORM.
type GormActionLog struct {
	db *gorm.DB
}

func NewGormActionLog(db *gorm.DB) *GormActionLog {
	return &GormActionLog{db: db}
}

// Append inserts one action. Seq is assigned by the database.
func (r *GormActionLog) Append(ctx context.Context, a *action.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// OrderHistory returns every action of the order, newest first.
func (r *GormActionLog) OrderHistory(ctx context.Context, orderID kernel.UUID) ([]*action.Action, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ActionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order(newestFirst).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// Query returns actions matching filter, newest first.
func (r *GormActionLog) Query(ctx context.Context, filter action.Filter) ([]*action.Action, error) {
	filter, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Model(&ActionDTO{})
	if filter.ActorID != nil {
		tx = tx.Where("actor_id = ?", filter.ActorID.Bytes())
	}
	if filter.OrderID != nil {
		tx = tx.Where("order_id = ?", filter.OrderID.Bytes())
	}
	if len(filter.NewStatuses) > 0 {
		statuses := make([]string, 0, len(filter.NewStatuses))
		for _, s := range filter.NewStatuses {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("new_status = ANY(?)", pq.Array(statuses))
	}
	if filter.From != nil {
		tx = tx.Where("occurred_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		tx = tx.Where("occurred_at < ?", filter.To.UTC())
	}

	var dtos []ActionDTO
	if err = tx.Order(newestFirst).Limit(filter.Limit).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// DeleteOlderThan removes actions that occurred before horizon.
func (r *GormActionLog) DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("occurred_at < ?", horizon.UTC()).Delete(&ActionDTO{})
	return result.RowsAffected, result.Error
}
