// Package user models the directory entry used to resolve a role to the
// people who should receive its notifications.
package user

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a directory entry. Inactive users keep their inbox but stop
// receiving role notifications.
type User struct {
	id     kernel.UUID
	name   string
	role   role.Role
	active bool

	isConstructed bool
}

func NewUser(id kernel.UUID, name string, r role.Role) (*User, error) {
	return RestoreUser(id, name, r, true)
}

func RestoreUser(id kernel.UUID, name string, r role.Role, active bool) (*User, error) {
	u := &User{active: active, isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(r),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() role.Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.active
}

// Deactivate stops role notifications for the user.
func (u *User) Deactivate() {
	u.active = false
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("user name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(r role.Role) error {
	if err := r.Validate(); err != nil {
		return err
	}
	u.role = r
	return nil
}
