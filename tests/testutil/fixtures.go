package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/promo-console-service/internal/models/m_discount"
	"github.com/light-bringer/promo-console-service/internal/models/m_product"
)

// CreateTestProduct inserts a product row directly and returns its ID.
func CreateTestProduct(t *testing.T, client *spanner.Client, name string) string {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New().String()

	model := m_product.NewModel()
	mutation := model.InsertMut(&m_product.Data{
		ProductID: productID,
		Name:      name,
		Active:    true,
	})

	_, err := client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test product")

	return productID
}

// CreateTestDiscount inserts a discount row directly, bypassing the domain
// layer, for read-model and reservation fixtures.
func CreateTestDiscount(t *testing.T, client *spanner.Client, name string, validFrom, validTo time.Time, productIDs []string, active bool) string {
	t.Helper()

	ctx := context.Background()
	discountID := uuid.New().String()

	model := m_discount.NewModel()
	mutation := model.InsertMut(&m_discount.Data{
		DiscountID:       discountID,
		Name:             name,
		Description:      "test discount",
		Kind:             "percentage",
		ValueNumerator:   10,
		ValueDenominator: 1,
		ValidFrom:        validFrom,
		ValidTo:          validTo,
		ProductIDs:       productIDs,
		Active:           active,
		Version:          1,
	})

	_, err := client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test discount")

	return discountID
}
