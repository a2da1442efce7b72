package available_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// Request contains parameters for the available-products picker.
// ExcludeDiscountID is set when the picker backs an edit form, so the
// discount's own products stay selectable.
type Request struct {
	ExcludeDiscountID string
}

// Query handles the available products query use case.
type Query struct {
	catalog   contracts.ProductCatalog
	readModel contracts.ReadModel
	clock     clock.Clock
}

// NewQuery creates a new available products query.
func NewQuery(catalog contracts.ProductCatalog, readModel contracts.ReadModel, clk clock.Clock) *Query {
	return &Query{
		catalog:   catalog,
		readModel: readModel,
		clock:     clk,
	}
}

// Execute returns the active products not reserved by another live discount.
func (q *Query) Execute(ctx context.Context, req *Request) ([]domain.ProductRef, error) {
	now := q.clock.Now()

	products, err := q.catalog.ListProducts(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	claims, err := q.readModel.ListClaims(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load product claims: %w", err)
	}

	return domain.AvailableProducts(products, claims, req.ExcludeDiscountID, now), nil
}
