package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
)

// DiscountDTO is a data transfer object for discount queries.
type DiscountDTO struct {
	DiscountID  string
	Name        string
	Description string
	Kind        string
	Value       float64 // Approximate representation for display
	ValidFrom   time.Time
	ValidTo     time.Time
	ProductIDs  []string
	Active      bool
	Status      string // Derived temporal status, never stored
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter defines filtering options for listing discounts.
type ListFilter struct {
	Kind      string
	Active    *bool
	Status    string // Temporal status filter: not_started, valid, expired
	Search    string // Case-insensitive name substring
	PageSize  int
	Offset    int
}

// ListResult contains paginated discount list results.
type ListResult struct {
	Discounts  []*DiscountDTO
	TotalCount int64
}

// ReadModel defines the interface for discount queries. Read models bypass
// the domain layer; derived status is computed per-row against the query's
// reference instant.
type ReadModel interface {
	// GetDiscountByID retrieves a discount DTO by ID.
	GetDiscountByID(ctx context.Context, discountID string) (*DiscountDTO, error)

	// ListDiscounts retrieves a paginated list with filtering.
	ListDiscounts(ctx context.Context, filter *ListFilter) (*ListResult, error)

	// ListClaims retrieves the exclusivity snapshot: every active discount
	// whose window has not lapsed as of now, reduced to its product claim.
	ListClaims(ctx context.Context, now time.Time) ([]domain.ProductClaim, error)
}

// ProductCatalog exposes the catalog subsystem's product list. This service
// never mutates it outside dev seeding.
type ProductCatalog interface {
	// ListProducts returns products, optionally restricted to active ones,
	// in stable catalog order.
	ListProducts(ctx context.Context, activeOnly bool) ([]domain.ProductRef, error)
}
