package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

func newTestDiscount(t *testing.T, clk clock.Clock) *Discount {
	t.Helper()
	value, _, err := NormalizeValue("25", KindPercentage)
	require.NoError(t, err)
	window := mustWindow(t, "2025-01-10", "2025-02-10")

	d, err := NewDiscount("d1", "New Year Sale", "January promotion", KindPercentage, value, window, []string{"p1", "p2"}, clk.Now(), clk)
	require.NoError(t, err)
	return d
}

func TestNewDiscount(t *testing.T) {
	now := day(2025, 1, 1)
	clk := clock.NewMockClock(now)
	value, _, _ := NormalizeValue("25", KindPercentage)
	window := mustWindow(t, "2025-01-10", "2025-02-10")

	t.Run("valid discount creation", func(t *testing.T) {
		d, err := NewDiscount("d1", "New Year Sale", "January promotion", KindPercentage, value, window, []string{"p1"}, now, clk)
		require.NoError(t, err)
		assert.Equal(t, "d1", d.ID())
		assert.True(t, d.Active())
		assert.Equal(t, StatusNotStarted, d.Status(now))
		assert.True(t, d.Changes().HasChanges())
		assert.Len(t, d.DomainEvents(), 1)
	})

	t.Run("name is trimmed and must be non-empty", func(t *testing.T) {
		_, err := NewDiscount("d1", "   ", "desc", KindPercentage, value, window, []string{"p1"}, now, clk)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("description must be non-empty", func(t *testing.T) {
		_, err := NewDiscount("d1", "Sale", " ", KindPercentage, value, window, []string{"p1"}, now, clk)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("window must start after today", func(t *testing.T) {
		startedWindow := mustWindow(t, "2025-01-01", "2025-02-10")
		_, err := NewDiscount("d1", "Sale", "desc", KindPercentage, value, startedWindow, []string{"p1"}, now, clk)
		assert.ErrorIs(t, err, ErrWindowNotFuture)
	})

	t.Run("product set must be non-empty", func(t *testing.T) {
		_, err := NewDiscount("d1", "Sale", "desc", KindPercentage, value, window, nil, now, clk)
		assert.ErrorIs(t, err, ErrNoProducts)
	})

	t.Run("duplicate and blank product ids are dropped", func(t *testing.T) {
		d, err := NewDiscount("d1", "Sale", "desc", KindPercentage, value, window, []string{"p1", "p1", " ", "p2"}, now, clk)
		require.NoError(t, err)
		assert.Len(t, d.ProductIDs(), 2)
	})

	t.Run("value is validated for its kind", func(t *testing.T) {
		tooBig, _ := NewMagnitude(120, 1)
		_, err := NewDiscount("d1", "Sale", "desc", KindPercentage, tooBig, window, []string{"p1"}, now, clk)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})
}

func TestDiscount_Lifecycle(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	assert.Equal(t, StatusNotStarted, d.Status(clk.Now()))

	clk.Set(day(2025, 1, 15))
	assert.Equal(t, StatusValid, d.Status(clk.Now()))

	clk.Set(day(2025, 2, 11))
	assert.Equal(t, StatusExpired, d.Status(clk.Now()))
}

func TestDiscount_Rename(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	t.Run("rename before expiry", func(t *testing.T) {
		err := d.Rename("Lunar Sale", clk.Now())
		require.NoError(t, err)
		assert.Equal(t, "Lunar Sale", d.Name())
		assert.True(t, d.Changes().Dirty(FieldName))
	})

	t.Run("unchanged name is a no-op", func(t *testing.T) {
		events := len(d.DomainEvents())
		require.NoError(t, d.Rename("Lunar Sale", clk.Now()))
		assert.Len(t, d.DomainEvents(), events)
	})

	t.Run("rename after expiry is rejected", func(t *testing.T) {
		err := d.Rename("Too Late", day(2025, 3, 1))
		assert.ErrorIs(t, err, ErrDiscountExpired)
	})
}

func TestDiscount_SetValue(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	t.Run("switch kind and value together", func(t *testing.T) {
		fixed, _, err := NormalizeValue("50000", KindFixed)
		require.NoError(t, err)

		require.NoError(t, d.SetValue(KindFixed, fixed, clk.Now()))
		assert.Equal(t, KindFixed, d.Kind())
		assert.True(t, d.Changes().Dirty(FieldValue))
		assert.True(t, d.Changes().Dirty(FieldKind))
	})

	t.Run("value invalid for new kind is rejected", func(t *testing.T) {
		tooBig, _ := NewMagnitude(500, 1)
		err := d.SetValue(KindPercentage, tooBig, clk.Now())
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})
}

func TestDiscount_Reschedule(t *testing.T) {
	t.Run("free reschedule before the window starts", func(t *testing.T) {
		clk := clock.NewMockClock(day(2025, 1, 1))
		d := newTestDiscount(t, clk)

		submitted := mustWindow(t, "2025-01-20", "2025-03-01")
		require.NoError(t, d.Reschedule(submitted, clk.Now()))
		assert.True(t, d.Window().Equal(submitted))
		assert.True(t, d.Changes().Dirty(FieldWindow))
	})

	t.Run("started discount keeps its original valid-from", func(t *testing.T) {
		clk := clock.NewMockClock(day(2025, 1, 15))
		d := newTestDiscount(t, clock.NewMockClock(day(2025, 1, 1)))

		submitted := mustWindow(t, "2025-01-20", "2025-03-01")
		require.NoError(t, d.Reschedule(submitted, clk.Now()))
		assert.Equal(t, day(2025, 1, 10), d.Window().ValidFrom())
		assert.Equal(t, day(2025, 3, 1), d.Window().ValidTo())
	})

	t.Run("expired discount cannot be rescheduled", func(t *testing.T) {
		d := newTestDiscount(t, clock.NewMockClock(day(2025, 1, 1)))

		submitted := mustWindow(t, "2025-03-01", "2025-04-01")
		err := d.Reschedule(submitted, day(2025, 2, 11))
		assert.ErrorIs(t, err, ErrDiscountExpired)
	})
}

func TestDiscount_AssignProducts(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	t.Run("replaces the set", func(t *testing.T) {
		require.NoError(t, d.AssignProducts([]string{"p3"}, clk.Now()))
		assert.Equal(t, []string{"p3"}, d.ProductIDs())
		assert.True(t, d.Changes().Dirty(FieldProducts))
	})

	t.Run("empty set is rejected", func(t *testing.T) {
		err := d.AssignProducts([]string{" "}, clk.Now())
		assert.ErrorIs(t, err, ErrNoProducts)
	})

	t.Run("same set is a no-op", func(t *testing.T) {
		events := len(d.DomainEvents())
		require.NoError(t, d.AssignProducts([]string{"p3"}, clk.Now()))
		assert.Len(t, d.DomainEvents(), events)
	})
}

func TestDiscount_ActiveToggle(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	t.Run("deactivate then reactivate", func(t *testing.T) {
		require.NoError(t, d.Deactivate(clk.Now()))
		assert.False(t, d.Active())

		require.NoError(t, d.Activate(clk.Now()))
		assert.True(t, d.Active())
	})

	t.Run("double activate fails", func(t *testing.T) {
		assert.ErrorIs(t, d.Activate(clk.Now()), ErrAlreadyActive)
	})

	t.Run("toggle works on an expired discount", func(t *testing.T) {
		err := d.Deactivate(day(2025, 3, 1))
		assert.NoError(t, err)
	})
}

func TestDiscount_Claim(t *testing.T) {
	clk := clock.NewMockClock(day(2025, 1, 1))
	d := newTestDiscount(t, clk)

	claim := d.Claim()
	assert.Equal(t, "d1", claim.DiscountID)
	assert.ElementsMatch(t, []string{"p1", "p2"}, claim.ProductIDs)
	assert.True(t, claim.Active)
}

// Scenario walkthroughs for the full lifecycle.
func TestDiscount_Scenarios(t *testing.T) {
	t.Run("running discount reserves its product and later frees it", func(t *testing.T) {
		clk := clock.NewMockClock(day(2025, 1, 1))
		d := newTestDiscount(t, clk)

		products := []ProductRef{{ID: "p1", Name: "Espresso Beans", Active: true}}

		// Mid-window: valid and reserving.
		now := day(2025, 1, 15)
		assert.Equal(t, StatusValid, d.Status(now))
		assert.Empty(t, AvailableProducts(products, []ProductClaim{d.Claim()}, "", now))

		// Day after the window: expired, read-only, product freed.
		now = day(2025, 2, 11)
		assert.Equal(t, StatusExpired, d.Status(now))
		assert.False(t, d.Locks(now).Editable)
		assert.Len(t, AvailableProducts(products, []ProductClaim{d.Claim()}, "", now), 1)
	})

	t.Run("created before start, valid-from locks the day after start", func(t *testing.T) {
		clk := clock.NewMockClock(day(2025, 1, 1))
		value, _, _ := NormalizeValue("10", KindPercentage)
		window := mustWindow(t, "2025-01-05", "2025-02-05")

		d, err := NewDiscount("d2", "Flash Sale", "desc", KindPercentage, value, window, []string{"p1"}, clk.Now(), clk)
		require.NoError(t, err)

		locks := d.Locks(day(2025, 1, 6))
		assert.Equal(t, FieldLocks{ValidFrom: true, ValidTo: false, Editable: true}, locks)
	})
}
