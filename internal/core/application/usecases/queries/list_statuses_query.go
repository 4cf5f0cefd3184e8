package queries

import (
	"errors"

	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/guard"
)

var ErrListStatusesQueryIsNotConstructed = errors.New("ListStatusesQuery must be created via NewListStatusesQuery constructor")

// ListStatusesQuery returns the whole status graph in configuration order.
type ListStatusesQuery struct {
	guard guard.ConstructorGuard
}

func NewListStatusesQuery() ListStatusesQuery {
	return ListStatusesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListStatusesQuery) Validate() error {
	return q.guard.Validate(ErrListStatusesQueryIsNotConstructed)
}

type ListStatusesQueryHandler struct {
	registry *workflow.Registry
}

func NewListStatusesQueryHandler(registry *workflow.Registry) ListStatusesQueryHandler {
	return ListStatusesQueryHandler{registry: registry}
}

func (h ListStatusesQueryHandler) Handle(query ListStatusesQuery) ([]StatusInfoResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := h.registry.Statuses()
	result := make([]StatusInfoResponse, 0, len(statuses))
	for _, s := range statuses {
		def, _ := h.registry.StatusInfo(s)
		result = append(result, statusInfoFrom(def))
	}
	return result, nil
}
