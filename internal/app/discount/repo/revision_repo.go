package repo

import (
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_revision"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// RevisionRepo implements RevisionRepository for Spanner.
type RevisionRepo struct {
	client *spanner.Client
	model  *m_revision.Model
	clock  clock.Clock
}

// NewRevisionRepo creates a new RevisionRepo.
func NewRevisionRepo(client *spanner.Client, clk clock.Clock) contracts.RevisionRepository {
	return &RevisionRepo{
		client: client,
		model:  m_revision.NewModel(),
		clock:  clk,
	}
}

// CreationMut records the initial value and window of a new discount. Old
// columns stay null: there is no prior state.
func (r *RevisionRepo) CreationMut(discount *domain.Discount) *spanner.Mutation {
	num, ok := discount.Value().Numerator()
	if !ok {
		return nil
	}
	denom, _ := discount.Value().Denominator()
	window := discount.Window()

	return r.model.InsertMut(&m_revision.Data{
		RevisionID:          uuid.New().String(),
		DiscountID:          discount.ID(),
		NewValueNumerator:   num,
		NewValueDenominator: denom,
		NewValidFrom:        window.ValidFrom(),
		NewValidTo:          window.ValidTo(),
		ChangedAt:           r.clock.Now().UTC(),
	})
}

// ChangeMut records an update against the pre-edit state. Returns nil when
// neither the value nor the window actually changed; untouched edits leave
// no audit row.
func (r *RevisionRepo) ChangeMut(discount *domain.Discount, oldValue *domain.Magnitude, oldWindow domain.DateWindow) *spanner.Mutation {
	valueChanged := !discount.Value().Equals(oldValue)
	windowChanged := !discount.Window().Equal(oldWindow)
	if !valueChanged && !windowChanged {
		return nil
	}

	newNum, ok := discount.Value().Numerator()
	if !ok {
		return nil
	}
	newDenom, _ := discount.Value().Denominator()

	oldNum, _ := oldValue.Numerator()
	oldDenom, _ := oldValue.Denominator()

	window := discount.Window()

	return r.model.InsertMut(&m_revision.Data{
		RevisionID:          uuid.New().String(),
		DiscountID:          discount.ID(),
		OldValueNumerator:   spanner.NullInt64{Int64: oldNum, Valid: true},
		OldValueDenominator: spanner.NullInt64{Int64: oldDenom, Valid: true},
		NewValueNumerator:   newNum,
		NewValueDenominator: newDenom,
		OldValidFrom:        spanner.NullTime{Time: oldWindow.ValidFrom(), Valid: true},
		OldValidTo:          spanner.NullTime{Time: oldWindow.ValidTo(), Valid: true},
		NewValidFrom:        window.ValidFrom(),
		NewValidTo:          window.ValidTo(),
		ChangedAt:           r.clock.Now().UTC(),
	})
}
