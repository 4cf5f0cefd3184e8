// Package role defines the canonical actor roles of the order workflow.
//
// Callers send a variety of spellings for the same role ("compta",
// "accountant", "accounting"...). Parse folds them into one Role at the system
// boundary so the guard, registry and composer only ever compare canonical values.
package role

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Role is a category of actor with distinct workflow permissions.
type Role string

const (
	Client  Role = "client"
	Compta  Role = "compta"
	Counter Role = "counter"
	Admin   Role = "admin"
)

var aliases = map[string]Role{
	"client":        Client,
	"customer":      Client,
	"compta":        Compta,
	"comptable":     Compta,
	"accountant":    Compta,
	"accounting":    Compta,
	"counter":       Counter,
	"comptoir":      Counter,
	"counter_staff": Counter,
	"counterstaff":  Counter,
	"admin":         Admin,
	"administrator": Admin,
}

// All returns the canonical roles in a stable order.
func All() []Role {
	return []Role{Client, Compta, Counter, Admin}
}

// Parse normalizes an external role name (case and surrounding space
// insensitive, "-" treated as "_") into its canonical Role.
func Parse(s string) (Role, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if key == "" {
		return "", errs.NewValueIsRequiredError("role")
	}
	if r, ok := aliases[key]; ok {
		return r, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate reports whether r is one of the canonical roles.
func (r Role) Validate() error {
	switch r {
	case Client, Compta, Counter, Admin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a canonical role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// Room is the real-time channel room shared by every session of this role.
func (r Role) Room() string {
	return "role:" + string(r)
}
