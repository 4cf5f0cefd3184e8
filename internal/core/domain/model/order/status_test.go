package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Run("should normalize known statuses", func(t *testing.T) {
		for _, s := range order.KnownStatuses() {
			parsed, err := order.ParseStatus("  " + string(s) + " ")

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}

		parsed, err := order.ParseStatus("SHIPPED")
		require.NoError(t, err)
		assert.Equal(t, order.Shipped, parsed)
	})

	t.Run("should reject empty status", func(t *testing.T) {
		_, err := order.ParseStatus("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.ParseStatus("archived")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestKnownStatuses(t *testing.T) {
	statuses := order.KnownStatuses()

	assert.Len(t, statuses, 9)
	seen := make(map[order.Status]bool)
	for _, s := range statuses {
		assert.False(t, seen[s], "duplicate status %s", s)
		seen[s] = true
	}
}

func TestExtra_String(t *testing.T) {
	extra := order.Extra{"trackingNumber": " TRK9 ", "count": 3}

	assert.Equal(t, "TRK9", extra.String("trackingNumber"))
	assert.Empty(t, extra.String("count"))
	assert.Empty(t, extra.String("missing"))
	assert.Empty(t, order.Extra(nil).String("trackingNumber"))
}
