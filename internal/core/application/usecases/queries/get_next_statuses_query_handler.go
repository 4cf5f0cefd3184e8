package queries

import (
	"context"

	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetNextStatusesQueryHandler struct {
	db       *gorm.DB
	registry *workflow.Registry
}

func NewGetNextStatusesQueryHandler(db *gorm.DB, registry *workflow.Registry) GetNextStatusesQueryHandler {
	return GetNextStatusesQueryHandler{db: db, registry: registry}
}

// Handle reads the order's current status and filters its next statuses by
// the role. Returns *errs.ObjectNotFoundError for unknown orders.
func (h GetNextStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetNextStatusesQuery,
) (GetNextStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	o, err := loadOrder(ctx, h.db, query.OrderID())
	if err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	current, ok := h.registry.StatusInfo(o.Status)
	if !ok {
		return GetNextStatusesQueryResponse{}, errs.NewValueIsInvalidError("order status " + string(o.Status))
	}

	next := h.registry.NextPossibleStatuses(o.Status, query.Role())
	resp := GetNextStatusesQueryResponse{
		Current: statusInfoFrom(current),
		Next:    make([]StatusInfoResponse, 0, len(next)),
	}
	for _, s := range next {
		def, _ := h.registry.StatusInfo(s)
		resp.Next = append(resp.Next, statusInfoFrom(def))
	}
	return resp, nil
}
