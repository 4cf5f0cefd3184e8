package queries

import (
	"context"
	"database/sql"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summaries from the orders table.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns matching orders sorted by creation time, then id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, string(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE status = ANY(?)
		ORDER BY created_at, id
		LIMIT ?
	`, pq.Array(statuses), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrderQueryResponse, 0)
	for rows.Next() {
		var resp GetOrderQueryResponse
		var id, clientID uuid.UUID
		var status, trackingNumber sql.NullString
		var shippedAt, deliveredAt, completedAt sql.NullTime

		err = rows.Scan(
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
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		client, idErr := kernel.UUIDFromBytes(clientID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.ClientID = client
		resp.Status = order.Status(status.String)
		resp.TrackingNumber = trackingNumber.String
		resp.CreatedAt = resp.CreatedAt.UTC()
		resp.ShippedAt = nullTime(shippedAt)
		resp.DeliveredAt = nullTime(deliveredAt)
		resp.CompletedAt = nullTime(completedAt)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
