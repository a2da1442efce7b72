package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, from, to string) DateWindow {
	t.Helper()
	fromT, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	toT, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	w, err := NewDateWindow(fromT, toT)
	require.NoError(t, err)
	return w
}

func TestAvailableProducts(t *testing.T) {
	products := []ProductRef{
		{ID: "p1", Name: "Espresso Beans", Active: true},
		{ID: "p2", Name: "Grinder", Active: true},
		{ID: "p3", Name: "French Press", Active: true},
	}

	t.Run("products held by a running discount are excluded", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
		}

		got := AvailableProducts(products, claims, "", day(2025, 1, 15))
		require.Len(t, got, 2)
		assert.Equal(t, "p2", got[0].ID)
		assert.Equal(t, "p3", got[1].ID)
	})

	t.Run("not-yet-started discount still reserves", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-03-01", "2025-04-01"), Active: true},
		}

		got := AvailableProducts(products, claims, "", day(2025, 1, 15))
		assert.Len(t, got, 2)
	})

	t.Run("lapsed discount frees its products", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
		}

		got := AvailableProducts(products, claims, "", day(2025, 2, 11))
		assert.Len(t, got, 3)
	})

	t.Run("discount ending today still reserves", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
		}

		got := AvailableProducts(products, claims, "", day(2025, 2, 10))
		assert.Len(t, got, 2)
	})

	t.Run("inactive discount does not reserve", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: false},
		}

		got := AvailableProducts(products, claims, "", day(2025, 1, 15))
		assert.Len(t, got, 3)
	})

	t.Run("editing sees own products as available", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
			{DiscountID: "d2", ProductIDs: []string{"p2"}, Window: mustWindow(t, "2025-01-20", "2025-02-20"), Active: true},
		}

		got := AvailableProducts(products, claims, "d1", day(2025, 1, 15))
		require.Len(t, got, 2)
		assert.Equal(t, "p1", got[0].ID)
		assert.Equal(t, "p3", got[1].ID)
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1", "p2"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
		}

		_ = AvailableProducts(products, claims, "", day(2025, 1, 15))
		assert.Len(t, products, 3)
		assert.Equal(t, []string{"p1", "p2"}, claims[0].ProductIDs)
	})

	// No product reserved by a non-excluded, non-lapsed, active discount
	// may ever appear in the output.
	t.Run("exclusivity invariant", func(t *testing.T) {
		claims := []ProductClaim{
			{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
			{DiscountID: "d2", ProductIDs: []string{"p2"}, Window: mustWindow(t, "2025-01-05", "2025-03-05"), Active: true},
		}

		now := day(2025, 1, 15)
		reserved := ReservedProducts(claims, "", now)
		for _, p := range AvailableProducts(products, claims, "", now) {
			_, taken := reserved[p.ID]
			assert.False(t, taken, "reserved product %s returned as available", p.ID)
		}
	})
}

func TestCheckUnreserved(t *testing.T) {
	claims := []ProductClaim{
		{DiscountID: "d1", ProductIDs: []string{"p1"}, Window: mustWindow(t, "2025-01-10", "2025-02-10"), Active: true},
	}
	now := day(2025, 1, 15)

	t.Run("free products pass", func(t *testing.T) {
		assert.NoError(t, CheckUnreserved([]string{"p2", "p3"}, claims, "", now))
	})

	t.Run("reserved product fails", func(t *testing.T) {
		err := CheckUnreserved([]string{"p1", "p2"}, claims, "", now)
		assert.ErrorIs(t, err, ErrProductReserved)
	})

	t.Run("own products pass when excluded", func(t *testing.T) {
		assert.NoError(t, CheckUnreserved([]string{"p1"}, claims, "d1", now))
	})
}
