package kernel_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_NewWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should create window when start is before end", func(t *testing.T) {
		w, err := kernel.NewWindow(now, now.Add(2*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, now, w.Start())
		assert.Equal(t, now.Add(2*time.Hour), w.End())
	})

	t.Run("should reject start equal to end", func(t *testing.T) {
		_, err := kernel.NewWindow(now, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject start after end", func(t *testing.T) {
		_, err := kernel.NewWindow(now.Add(time.Hour), now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero instants", func(t *testing.T) {
		_, err := kernel.NewWindow(time.Time{}, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should normalize to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		w, err := kernel.NewWindow(now.In(loc), now.Add(time.Hour).In(loc))

		require.NoError(t, err)
		assert.Equal(t, time.UTC, w.Start().Location())
	})
}

func TestWindow_NotBefore(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("should accept future window", func(t *testing.T) {
		w, err := kernel.NewWindow(now.Add(time.Hour), now.Add(3*time.Hour))
		require.NoError(t, err)
		require.NoError(t, w.NotBefore(now))
	})

	t.Run("should reject window starting in the past", func(t *testing.T) {
		w, err := kernel.NewWindow(now.Add(-time.Hour), now.Add(time.Hour))
		require.NoError(t, err)
		require.ErrorIs(t, w.NotBefore(now), errs.ErrValueIsInvalid)
	})
}

func TestWindow_IsEqual(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	w1, err := kernel.NewWindow(now, now.Add(time.Hour))
	require.NoError(t, err)
	w2, err := kernel.NewWindow(now, now.Add(time.Hour))
	require.NoError(t, err)
	w3, err := kernel.NewWindow(now, now.Add(2*time.Hour))
	require.NoError(t, err)

	assert.True(t, w1.IsEqual(w2))
	assert.False(t, w1.IsEqual(w3))
}

func TestWindow_Validate(t *testing.T) {
	t.Run("should reject zero value", func(t *testing.T) {
		var w kernel.Window
		require.ErrorIs(t, w.Validate(), kernel.ErrWindowIsNotConstructed)
	})
}
