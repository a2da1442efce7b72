package set_discount_active

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_discount"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
)

// Request contains the data to toggle a discount's active flag.
type Request struct {
	DiscountID string
	Active     bool
	Version    int64 // expected version for optimistic locking
}

// Interactor handles the set discount active use case. The toggle is the
// one mutation allowed on an expired discount, so the archive screen can
// still tidy up old entries.
type Interactor struct {
	repo       contracts.DiscountRepository
	outboxRepo contracts.OutboxRepository
	readModel  contracts.ReadModel
	committer  *committer.Committer
	clock      clock.Clock
}

// NewInteractor creates a new set discount active interactor.
func NewInteractor(
	repo contracts.DiscountRepository,
	outboxRepo contracts.OutboxRepository,
	readModel contracts.ReadModel,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		readModel:  readModel,
		committer:  committer,
		clock:      clock,
	}
}

// Execute toggles the active flag following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (int64, error) {
	now := i.clock.Now()

	discount, err := i.repo.GetByID(ctx, req.DiscountID)
	if err != nil {
		return 0, err
	}

	defer discount.ClearEvents()

	if req.Active {
		// Re-activation revives the discount's product claims, so the
		// exclusivity check runs again unless the window already lapsed.
		if !discount.Window().Lapsed(now) {
			claims, err := i.readModel.ListClaims(ctx, now)
			if err != nil {
				return 0, fmt.Errorf("failed to load product claims: %w", err)
			}
			if err := domain.CheckUnreserved(discount.ProductIDs(), claims, discount.ID(), now); err != nil {
				return 0, err
			}
		}
		if err := discount.Activate(now); err != nil {
			return 0, err
		}
	} else {
		if err := discount.Deactivate(now); err != nil {
			return 0, err
		}
	}

	plan := committer.NewPlan()

	updateMut, err := i.repo.UpdateMut(discount)
	if err != nil {
		return 0, fmt.Errorf("failed to build update mutation: %w", err)
	}
	plan.Add(updateMut)

	for _, event := range discount.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	err = i.committer.ApplyWithVersionCheck(
		ctx,
		m_discount.TableName,
		spanner.Key{discount.ID()},
		req.Version,
		plan,
	)
	if err != nil {
		return 0, err
	}

	return req.Version + 1, nil
}
