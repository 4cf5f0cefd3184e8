package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/pkg/guard"
)

var ErrQueryActionsQueryIsNotConstructed = errors.New("QueryActionsQuery must be created via NewQueryActionsQuery constructor")

// QueryActionsQuery searches the audit log across orders.
type QueryActionsQuery struct {
	filter action.Filter
	guard  guard.ConstructorGuard
}

// NewQueryActionsQuery normalizes filter, applying the default limit.
func NewQueryActionsQuery(filter action.Filter) (QueryActionsQuery, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return QueryActionsQuery{}, err
	}
	return QueryActionsQuery{filter: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q QueryActionsQuery) Filter() action.Filter {
	return q.filter
}

func (q QueryActionsQuery) Validate() error {
	return q.guard.Validate(ErrQueryActionsQueryIsNotConstructed)
}

type QueryActionsQueryHandler struct {
	actions ActionReader
}

func NewQueryActionsQueryHandler(actions ActionReader) QueryActionsQueryHandler {
	return QueryActionsQueryHandler{actions: actions}
}

func (h QueryActionsQueryHandler) Handle(ctx context.Context, query QueryActionsQuery) ([]ActionResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.actions.Query(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	return actionsFrom(found), nil
}
