package commands

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand adds a user to the recipient directory so role
// notifications reach them.
type RegisterUserCommand struct {
	user  *user.User
	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(id kernel.UUID, name string, r role.Role) (RegisterUserCommand, error) {
	u, err := user.NewUser(id, name, r)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{user: u, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) User() *user.User {
	return c.user
}

// UserStore persists directory entries.
type UserStore interface {
	Add(ctx context.Context, u *user.User) error
}

type RegisterUserCommandHandler struct {
	users UserStore
}

func NewRegisterUserCommandHandler(users UserStore) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{users: users}
}

// Handle returns *errs.ConflictError when the id is already registered.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.users.Add(ctx, cmd.User()); err != nil {
		return storageFailure("register user", err)
	}
	return nil
}
