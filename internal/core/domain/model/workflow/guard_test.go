package workflow_test

import (
	"slices"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_CanTransition_Exhaustive(t *testing.T) {
	reg := defaultRegistry(t)
	g := workflow.NewGuard(reg)

	for _, current := range order.KnownStatuses() {
		from, _ := reg.StatusInfo(current)
		for _, to := range order.KnownStatuses() {
			into, _ := reg.StatusInfo(to)
			for _, r := range role.All() {
				want := slices.Contains(from.NextStatuses(), to) &&
					(r == role.Admin || slices.Contains(into.AllowedRoles(), r))

				got := g.CanTransition(r, current, to)

				assert.Equal(t, want, got, "%s: %s -> %s", r, current, to)
				assert.Equal(t, got, slices.Contains(reg.NextPossibleStatuses(current, r), to),
					"guard and registry disagree for %s: %s -> %s", r, current, to)
			}
		}
	}
}

func TestGuard_Check(t *testing.T) {
	g := workflow.NewGuard(defaultRegistry(t))

	t.Run("should allow compta to confirm", func(t *testing.T) {
		require.NoError(t, g.Check(role.Compta, order.Pending, order.Confirmed))
	})

	t.Run("should refuse client confirming", func(t *testing.T) {
		err := g.Check(role.Client, order.Pending, order.Confirmed)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		var denied *errs.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, "client", denied.Role)
		assert.Contains(t, err.Error(), "role client may not set status confirmed")
	})

	t.Run("should refuse admin leaving the graph", func(t *testing.T) {
		err := g.Check(role.Admin, order.Pending, order.Shipped)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "shipped is not a next status of pending")
	})

	t.Run("should let admin skip the role list", func(t *testing.T) {
		require.NoError(t, g.Check(role.Admin, order.Ready, order.Shipped))
	})

	t.Run("should refuse leaving terminal statuses", func(t *testing.T) {
		for _, r := range role.All() {
			assert.False(t, g.CanTransition(r, order.Completed, order.Pending))
			assert.False(t, g.CanTransition(r, order.Cancelled, order.Pending))
		}
	})

	t.Run("should refuse unknown current status", func(t *testing.T) {
		err := g.Check(role.Admin, order.Status("archived"), order.Pending)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.Contains(t, err.Error(), "unknown current status")
	})
}
