package http

import (
	"net/http"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Headers set by the gateway once the caller is authenticated.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
	HeaderActorName = "X-Actor-Name"
)

// actorFrom reads the caller from the gateway headers. Role aliases are
// folded into the canonical role here and nowhere else.
func actorFrom(r *http.Request) (action.Actor, error) {
	rawID := r.Header.Get(HeaderActorID)
	if rawID == "" {
		return action.Actor{}, errs.NewValueIsRequiredError(HeaderActorID)
	}
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return action.Actor{}, errs.NewValueIsInvalidErrorWithCause(HeaderActorID, err)
	}

	actorRole, err := role.Parse(r.Header.Get(HeaderActorRole))
	if err != nil {
		return action.Actor{}, err
	}

	return action.NewActor(id, actorRole, r.Header.Get(HeaderActorName))
}

func idFrom(name string, id openapi_types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}
