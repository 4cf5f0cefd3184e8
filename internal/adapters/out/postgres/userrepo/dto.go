// Package userrepo backs the recipient directory with the users table.
package userrepo

import (
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"size:255;not null"`
	Role   string    `gorm:"size:32;index:idx_users_role_active,priority:1;not null"`
	Active bool      `gorm:"index:idx_users_role_active,priority:2;not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:     u.ID().Bytes(),
		Name:   u.Name(),
		Role:   string(u.Role()),
		Active: u.IsActive(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Name, role.Role(dto.Role), dto.Active)
}
