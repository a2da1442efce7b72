//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/app/discount/repo"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/create_discount"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/set_discount_active"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/update_discount"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
	"github.com/light-bringer/promo-console-service/tests/testutil"
)

func setupServices(t *testing.T) (*create_discount.Interactor, *update_discount.Interactor, *set_discount_active.Interactor, *clock.MockClock, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	clk := testutil.NewFixedClock(testutil.Day("2025-06-01"))
	comm := committer.NewCommitter(client)

	discountRepo := repo.NewDiscountRepo(client, clk)
	revisionRepo := repo.NewRevisionRepo(client, clk)
	outboxRepo := repo.NewOutboxRepo(client)
	readModel := repo.NewReadModel(client, clk)

	createUC := create_discount.NewInteractor(discountRepo, revisionRepo, outboxRepo, readModel, comm, clk)
	updateUC := update_discount.NewInteractor(discountRepo, revisionRepo, outboxRepo, readModel, comm, clk)
	setActiveUC := set_discount_active.NewInteractor(discountRepo, outboxRepo, readModel, comm, clk)

	return createUC, updateUC, setActiveUC, clk, cleanup
}

func TestDiscountLifecycle(t *testing.T) {
	createUC, updateUC, setActiveUC, clk, cleanup := setupServices(t)
	defer cleanup()

	ctx := context.Background()

	resp, err := createUC.Execute(ctx, &create_discount.Request{
		Name:        "Summer Sale",
		Description: "June promotion",
		Kind:        "percentage",
		RawValue:    "25",
		ValidFrom:   testutil.Day("2025-06-10"),
		ValidTo:     testutil.Day("2025-06-20"),
		ProductIDs:  []string{"p1", "p2"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.DiscountID)
	assert.False(t, resp.ValueClamped)

	// Same product while the first claim is live.
	_, err = createUC.Execute(ctx, &create_discount.Request{
		Name:        "Competing Sale",
		Description: "overlap",
		Kind:        "fixed",
		RawValue:    "5000",
		ValidFrom:   testutil.Day("2025-07-01"),
		ValidTo:     testutil.Day("2025-07-10"),
		ProductIDs:  []string{"p2"},
	})
	assert.ErrorIs(t, err, domain.ErrProductReserved)

	// Rename before the window starts.
	newName := "Summer Sale v2"
	updResp, err := updateUC.Execute(ctx, &update_discount.Request{
		DiscountID: resp.DiscountID,
		Name:       &newName,
		Version:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updResp.NewVersion)

	// Stale version is rejected.
	_, err = updateUC.Execute(ctx, &update_discount.Request{
		DiscountID: resp.DiscountID,
		Name:       &newName,
		Version:    1,
	})
	assert.ErrorIs(t, err, committer.ErrVersionConflict)

	// After expiry only the active toggle works.
	clk.Set(testutil.Day("2025-07-01"))

	_, err = updateUC.Execute(ctx, &update_discount.Request{
		DiscountID: resp.DiscountID,
		Name:       &newName,
		Version:    2,
	})
	assert.ErrorIs(t, err, domain.ErrDiscountExpired)

	newVersion, err := setActiveUC.Execute(ctx, &set_discount_active.Request{
		DiscountID: resp.DiscountID,
		Active:     false,
		Version:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), newVersion)

	// The expired claim released p2, a new discount can take it.
	_, err = createUC.Execute(ctx, &create_discount.Request{
		Name:        "Autumn Sale",
		Description: "next season",
		Kind:        "percentage",
		RawValue:    "30",
		ValidFrom:   testutil.Day("2025-09-01"),
		ValidTo:     testutil.Day("2025-09-30"),
		ProductIDs:  []string{"p2"},
	})
	require.NoError(t, err)
}

func TestDiscountValueClamping(t *testing.T) {
	createUC, _, _, _, cleanup := setupServices(t)
	defer cleanup()

	resp, err := createUC.Execute(context.Background(), &create_discount.Request{
		Name:        "Typo Sale",
		Description: "percentage over the limit",
		Kind:        "percentage",
		RawValue:    "250",
		ValidFrom:   testutil.Day("2025-06-10"),
		ValidTo:     testutil.Day("2025-06-20"),
		ProductIDs:  []string{"p9"},
	})
	require.NoError(t, err)
	assert.True(t, resp.ValueClamped)
}
