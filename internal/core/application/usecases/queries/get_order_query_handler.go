package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or *errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	return loadOrder(ctx, h.db, query.OrderID())
}

func loadOrder(ctx context.Context, db *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			client_id,
			total,
			tracking_number,
			created_at,
			shipped_at,
			delivered_at,
			completed_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var resp GetOrderQueryResponse
	var id, clientID uuid.UUID
	var status, trackingNumber sql.NullString
	var shippedAt, deliveredAt, completedAt sql.NullTime

	err := row.Scan(
		&id,
		&resp.Number,
		&status,
		&clientID,
		&resp.Total,
		&trackingNumber,
		&resp.CreatedAt,
		&shippedAt,
		&deliveredAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status.String)
	resp.TrackingNumber = trackingNumber.String
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.ShippedAt = nullTime(shippedAt)
	resp.DeliveredAt = nullTime(deliveredAt)
	resp.CompletedAt = nullTime(completedAt)

	return resp, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
