package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
)

// DiscountRepository defines the interface for discount persistence.
// Repositories return mutations, they don't apply them; the usecase
// collects them into a commit plan.
type DiscountRepository interface {
	// InsertMut creates a mutation for inserting a new discount.
	// Returns an error if the value does not fit int64 storage columns.
	InsertMut(discount *domain.Discount) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a discount (only dirty fields).
	UpdateMut(discount *domain.Discount) (*spanner.Mutation, error)

	// GetByID retrieves a discount by ID, reconstructing the domain aggregate.
	GetByID(ctx context.Context, discountID string) (*domain.Discount, error)

	// Exists checks if a discount exists.
	Exists(ctx context.Context, discountID string) (bool, error)
}

// RevisionRepository records the before/after state of discount edits for
// the audit trail.
type RevisionRepository interface {
	// CreationMut records the initial value and window of a new discount.
	CreationMut(discount *domain.Discount) *spanner.Mutation

	// ChangeMut records an update; the caller snapshots the pre-edit value
	// and window before calling domain methods.
	ChangeMut(discount *domain.Discount, oldValue *domain.Magnitude, oldWindow domain.DateWindow) *spanner.Mutation
}
