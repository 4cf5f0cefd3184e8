package notification

import (
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"
)

type TargetKind string

const (
	TargetRole TargetKind = "role"
	TargetUser TargetKind = "user"
)

// Target is the audience of a notification: every user of a role, or one user.
type Target struct {
	kind   TargetKind
	role   role.Role
	userID kernel.UUID
}

func RoleTarget(r role.Role) Target {
	return Target{kind: TargetRole, role: r}
}

func UserTarget(userID kernel.UUID) Target {
	return Target{kind: TargetUser, userID: userID}
}

// ParseTarget reads the "role:<role>" or "user:<uuid>" form produced by String.
func ParseTarget(s string) (Target, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return Target{}, errs.NewValueIsInvalidErrorWithCause("target", fmt.Errorf("%q has no kind prefix", s))
	}
	switch TargetKind(kind) {
	case TargetRole:
		r, err := role.Parse(value)
		if err != nil {
			return Target{}, err
		}
		return RoleTarget(r), nil
	case TargetUser:
		id, err := kernel.UUIDFromString(value)
		if err != nil {
			return Target{}, errs.NewValueIsInvalidErrorWithCause("target", err)
		}
		return UserTarget(id), nil
	default:
		return Target{}, errs.NewValueIsInvalidErrorWithCause("target", fmt.Errorf("unknown kind %q", kind))
	}
}

func (t Target) Kind() TargetKind {
	return t.kind
}

// Role is set for role targets only.
func (t Target) Role() role.Role {
	return t.role
}

// UserID is set for user targets only.
func (t Target) UserID() kernel.UUID {
	return t.userID
}

func (t Target) Validate() error {
	switch t.kind {
	case TargetRole:
		return t.role.Validate()
	case TargetUser:
		return t.userID.Validate()
	default:
		return errs.NewValueIsRequiredError("target")
	}
}

// Room is the real-time channel room of the target.
func (t Target) Room() string {
	return t.String()
}

func (t Target) String() string {
	if t.kind == TargetUser {
		return string(TargetUser) + ":" + t.userID.String()
	}
	return string(TargetRole) + ":" + string(t.role)
}
