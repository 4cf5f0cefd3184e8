package queries

import (
	"errors"
	"slices"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// ListOrdersQuery lists orders in the given statuses, oldest first. Without
// statuses it lists every order still moving through the workflow.
//
// Example:
//
//	query, err := NewListOrdersQuery([]order.Status{order.Ready, order.Shipped}, 50)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	statuses []order.Status
	limit    int
	guard    guard.ConstructorGuard
}

const (
	DefaultOrdersLimit = 100
	MaxOrdersLimit     = 1000
)

func NewListOrdersQuery(statuses []order.Status, limit int) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultOrdersLimit
	}
	if limit < 1 || limit > MaxOrdersLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersLimit)
	}

	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if len(statuses) == 0 {
		statuses = slices.DeleteFunc(order.KnownStatuses(), func(s order.Status) bool {
			return s == order.Completed || s == order.Cancelled
		})
	}

	return ListOrdersQuery{statuses: slices.Clone(statuses), limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Statuses() []order.Status {
	return slices.Clone(q.statuses)
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
