package queries

import (
	"context"

	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandler struct {
	db      *gorm.DB
	actions ActionReader
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB, actions ActionReader) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, actions: actions}
}

// Handle returns the history, or *errs.ObjectNotFoundError when the order does
// not exist. An existing order without transitions has an empty history.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]ActionResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders WHERE id = ?", query.OrderID().Bytes()).
		Scan(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	history, err := h.actions.OrderHistory(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	return actionsFrom(history), nil
}
