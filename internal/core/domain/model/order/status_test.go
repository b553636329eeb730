package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Confirmed))
		assert.Equal(t, 3, int(order.InTransit))
		assert.Equal(t, 4, int(order.Delivered))
		assert.Equal(t, 5, int(order.Completed))
		assert.Equal(t, 6, int(order.Disputed))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate declared statuses", func(t *testing.T) {
		valid := []order.Status{
			order.Pending, order.Confirmed, order.InTransit,
			order.Delivered, order.Completed, order.Disputed, order.Cancelled,
		}
		for _, s := range valid {
			t.Run(fmt.Sprintf("should validate %s", s.String()), func(t *testing.T) {
				require.NoError(t, s.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(8), order.Status(100)} {
			require.ErrorIs(t, s.Validate(), errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.Confirmed, "confirmed"},
		{order.InTransit, "in_transit"},
		{order.Delivered, "delivered"},
		{order.Completed, "completed"},
		{order.Disputed, "disputed"},
		{order.Cancelled, "cancelled"},
		{order.Unknown, "unknown"},
		{order.Status(99), "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Disputed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.InTransit.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("should confirm from pending and confirmed only", func(t *testing.T) {
		s, err := order.Pending.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, s)

		s, err = order.Confirmed.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, s)

		for _, from := range []order.Status{order.InTransit, order.Delivered, order.Completed, order.Disputed, order.Cancelled} {
			_, err = from.Confirm()
			require.ErrorIs(t, err, errs.ErrConflict, "from %s", from.String())
		}
	})

	t.Run("should begin transit from confirmed only", func(t *testing.T) {
		s, err := order.Confirmed.BeginTransit()
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, s)

		for _, from := range []order.Status{order.Pending, order.InTransit, order.Delivered, order.Completed, order.Cancelled} {
			_, err = from.BeginTransit()
			require.ErrorIs(t, err, errs.ErrConflict, "from %s", from.String())
		}
	})

	t.Run("should deliver from in_transit or confirmed", func(t *testing.T) {
		s, err := order.InTransit.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)

		s, err = order.Confirmed.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)

		_, err = order.Pending.Deliver()
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should complete and dispute from delivered only", func(t *testing.T) {
		s, err := order.Delivered.Complete()
		require.NoError(t, err)
		assert.Equal(t, order.Completed, s)

		s, err = order.Delivered.Dispute()
		require.NoError(t, err)
		assert.Equal(t, order.Disputed, s)

		_, err = order.Completed.Complete()
		require.ErrorIs(t, err, errs.ErrConflict)
		_, err = order.InTransit.Dispute()
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should cancel from pending and confirmed only", func(t *testing.T) {
		s, err := order.Pending.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, s)

		s, err = order.Confirmed.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, s)

		for _, from := range []order.Status{order.InTransit, order.Delivered, order.Completed, order.Disputed, order.Cancelled} {
			_, err = from.Cancel()
			require.ErrorIs(t, err, errs.ErrConflict, "from %s", from.String())
		}
	})
}

func TestStatus_ValidateNegotiable(t *testing.T) {
	require.NoError(t, order.Pending.ValidateNegotiable())
	require.NoError(t, order.Confirmed.ValidateNegotiable())

	for _, s := range []order.Status{order.InTransit, order.Delivered, order.Completed, order.Disputed, order.Cancelled} {
		require.ErrorIs(t, s.ValidateNegotiable(), errs.ErrConflict, "status %s", s.String())
	}
}
