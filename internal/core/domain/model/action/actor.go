package action

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
)

// Actor is the authenticated user performing a status change.
type Actor struct {
	id   kernel.UUID
	role role.Role
	name string
}

// NewActor validates id and role. The display name is optional.
func NewActor(id kernel.UUID, r role.Role, name string) (Actor, error) {
	if err := errors.Join(id.Validate(), r.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: r, name: strings.TrimSpace(name)}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() role.Role {
	return a.role
}

func (a Actor) Name() string {
	return a.name
}

// Validate reports an error for the zero Actor.
func (a Actor) Validate() error {
	return errors.Join(a.id.Validate(), a.role.Validate())
}
