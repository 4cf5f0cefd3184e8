package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/guard"
)

var ErrGetNextStatusesQueryIsNotConstructed = errors.New(
	"GetNextStatusesQuery must be created via NewGetNextStatusesQuery constructor",
)

// GetNextStatusesQuery asks which statuses the actor's role may move an order
// into from its current status. UIs use it to build the action menu.
type GetNextStatusesQuery struct {
	orderID kernel.UUID
	role    role.Role
	guard   guard.ConstructorGuard
}

func NewGetNextStatusesQuery(orderID kernel.UUID, r role.Role) (GetNextStatusesQuery, error) {
	if err := errors.Join(orderID.Validate(), r.Validate()); err != nil {
		return GetNextStatusesQuery{}, err
	}
	return GetNextStatusesQuery{orderID: orderID, role: r, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNextStatusesQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetNextStatusesQuery) Role() role.Role {
	return q.role
}

func (q GetNextStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetNextStatusesQueryIsNotConstructed)
}

// GetNextStatusesQueryResponse carries the current status and its reachable
// statuses for the role. Next is empty for terminal statuses.
type GetNextStatusesQueryResponse struct {
	Current StatusInfoResponse
	Next    []StatusInfoResponse
}
