package action

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// Filter narrows an audit query. Zero fields are not applied; From is
// inclusive and To exclusive.
type Filter struct {
	ActorID     *kernel.UUID
	OrderID     *kernel.UUID
	NewStatuses []order.Status
	From        *time.Time
	To          *time.Time
	Limit       int
}

// Normalize applies the default limit and checks the bounds.
func (f Filter) Normalize() (Filter, error) {
	if f.Limit == 0 {
		f.Limit = DefaultQueryLimit
	}
	if f.Limit < 1 || f.Limit > MaxQueryLimit {
		return Filter{}, errs.NewValueIsOutOfRangeError("limit", f.Limit, 1, MaxQueryLimit)
	}
	for _, s := range f.NewStatuses {
		if err := s.Validate(); err != nil {
			return Filter{}, err
		}
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return Filter{}, errs.NewValueIsInvalidError("from must be before to")
	}
	return f, nil
}
