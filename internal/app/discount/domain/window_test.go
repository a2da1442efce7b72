package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := NewDateWindow(day(2025, 1, 10), day(2025, 2, 10))
		require.NoError(t, err)
		assert.Equal(t, day(2025, 1, 10), w.ValidFrom())
		assert.Equal(t, day(2025, 2, 10), w.ValidTo())
	})

	t.Run("time of day is stripped from both bounds", func(t *testing.T) {
		w, err := NewDateWindow(
			time.Date(2025, 1, 10, 14, 30, 12, 0, time.UTC),
			time.Date(2025, 2, 10, 23, 59, 59, 0, time.UTC),
		)
		require.NoError(t, err)
		assert.Equal(t, day(2025, 1, 10), w.ValidFrom())
		assert.Equal(t, day(2025, 2, 10), w.ValidTo())
	})

	t.Run("end before start returns error", func(t *testing.T) {
		_, err := NewDateWindow(day(2025, 2, 10), day(2025, 1, 10))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("end equal to start returns error", func(t *testing.T) {
		_, err := NewDateWindow(day(2025, 1, 10), day(2025, 1, 10))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("same day different times collapses to equal bounds", func(t *testing.T) {
		_, err := NewDateWindow(
			time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC),
		)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestNewFutureDateWindow(t *testing.T) {
	now := day(2025, 1, 1)

	t.Run("starts tomorrow is accepted", func(t *testing.T) {
		_, err := NewFutureDateWindow(day(2025, 1, 2), day(2025, 1, 10), now)
		assert.NoError(t, err)
	})

	t.Run("starts today is rejected", func(t *testing.T) {
		_, err := NewFutureDateWindow(day(2025, 1, 1), day(2025, 1, 10), now)
		assert.ErrorIs(t, err, ErrWindowNotFuture)
	})

	t.Run("starts in the past is rejected", func(t *testing.T) {
		_, err := NewFutureDateWindow(day(2024, 12, 20), day(2025, 1, 10), now)
		assert.ErrorIs(t, err, ErrWindowNotFuture)
	})

	t.Run("late in the day still counts as today", func(t *testing.T) {
		lateNow := time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC)
		_, err := NewFutureDateWindow(day(2025, 1, 1), day(2025, 1, 10), lateNow)
		assert.ErrorIs(t, err, ErrWindowNotFuture)
	})
}

func TestDateWindow_Status(t *testing.T) {
	w, err := NewDateWindow(day(2025, 1, 10), day(2025, 2, 10))
	require.NoError(t, err)

	t.Run("before start", func(t *testing.T) {
		assert.Equal(t, StatusNotStarted, w.Status(day(2025, 1, 9)))
	})

	t.Run("on start day", func(t *testing.T) {
		assert.Equal(t, StatusValid, w.Status(day(2025, 1, 10)))
	})

	t.Run("mid window", func(t *testing.T) {
		assert.Equal(t, StatusValid, w.Status(day(2025, 1, 15)))
	})

	t.Run("on end day", func(t *testing.T) {
		assert.Equal(t, StatusValid, w.Status(day(2025, 2, 10)))
	})

	t.Run("after end", func(t *testing.T) {
		assert.Equal(t, StatusExpired, w.Status(day(2025, 2, 11)))
	})

	t.Run("time of day on now does not shift the boundary", func(t *testing.T) {
		assert.Equal(t, StatusNotStarted, w.Status(time.Date(2025, 1, 9, 23, 59, 59, 0, time.UTC)))
		assert.Equal(t, StatusValid, w.Status(time.Date(2025, 1, 10, 0, 0, 1, 0, time.UTC)))
		assert.Equal(t, StatusValid, w.Status(time.Date(2025, 2, 10, 23, 59, 59, 0, time.UTC)))
	})

	t.Run("single day window is valid only on its start boundary day", func(t *testing.T) {
		single, err := NewDateWindow(day(2025, 3, 1), day(2025, 3, 2))
		require.NoError(t, err)
		assert.Equal(t, StatusValid, single.Status(day(2025, 3, 1)))
	})
}

// Status must only ever advance NotStarted -> Valid -> Expired as time passes.
func TestDateWindow_StatusMonotonic(t *testing.T) {
	w, err := NewDateWindow(day(2025, 1, 10), day(2025, 2, 10))
	require.NoError(t, err)

	rank := map[Status]int{StatusNotStarted: 0, StatusValid: 1, StatusExpired: 2}

	prev := -1
	for d := day(2025, 1, 1); d.Before(day(2025, 3, 1)); d = d.AddDate(0, 0, 1) {
		cur := rank[w.Status(d)]
		assert.GreaterOrEqual(t, cur, prev, "status regressed at %s", d)
		prev = cur
	}
}

func TestDateWindow_Lapsed(t *testing.T) {
	w, err := NewDateWindow(day(2025, 1, 10), day(2025, 2, 10))
	require.NoError(t, err)

	assert.False(t, w.Lapsed(day(2025, 1, 1)))
	assert.False(t, w.Lapsed(day(2025, 2, 10)))
	assert.True(t, w.Lapsed(day(2025, 2, 11)))
}
