package create_discount

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
)

// Request contains the data needed to create a discount. Value arrives as
// the raw admin-form string and goes through normalization, so separators
// and stray characters are tolerated.
type Request struct {
	Name        string
	Description string
	Kind        string
	RawValue    string
	ValidFrom   time.Time
	ValidTo     time.Time
	ProductIDs  []string
}

// Response reports the created discount and whether its value was clamped
// during normalization.
type Response struct {
	DiscountID   string
	ValueClamped bool
}

// Interactor handles the create discount use case.
type Interactor struct {
	repo         contracts.DiscountRepository
	revisionRepo contracts.RevisionRepository
	outboxRepo   contracts.OutboxRepository
	readModel    contracts.ReadModel
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new create discount interactor.
func NewInteractor(
	repo contracts.DiscountRepository,
	revisionRepo contracts.RevisionRepository,
	outboxRepo contracts.OutboxRepository,
	readModel contracts.ReadModel,
	committer *committer.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:         repo,
		revisionRepo: revisionRepo,
		outboxRepo:   outboxRepo,
		readModel:    readModel,
		committer:    committer,
		clock:        clock,
	}
}

// Execute creates a new discount following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := i.clock.Now()

	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}

	value, clamped, err := domain.NormalizeValue(req.RawValue, kind)
	if err != nil {
		return nil, err
	}

	window, err := domain.NewFutureDateWindow(req.ValidFrom, req.ValidTo, now)
	if err != nil {
		return nil, err
	}

	// Exclusivity check against the current claim snapshot. The snapshot
	// holds every active claim whose window has not lapsed, so overlap with
	// a not-yet-started discount is rejected too.
	claims, err := i.readModel.ListClaims(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load product claims: %w", err)
	}
	if err := domain.CheckUnreserved(req.ProductIDs, claims, "", now); err != nil {
		return nil, err
	}

	discountID := uuid.New().String()
	discount, err := domain.NewDiscount(
		discountID,
		req.Name,
		req.Description,
		kind,
		value,
		window,
		req.ProductIDs,
		now,
		i.clock,
	)
	if err != nil {
		return nil, err
	}

	plan := committer.NewPlan()

	insertMut, err := i.repo.InsertMut(discount)
	if err != nil {
		return nil, fmt.Errorf("failed to build insert mutation: %w", err)
	}
	plan.Add(insertMut)
	plan.Add(i.revisionRepo.CreationMut(discount))

	for _, event := range discount.DomainEvents() {
		payload, err := serializeEvent(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
	}

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Response{
		DiscountID:   discount.ID(),
		ValueClamped: clamped,
	}, nil
}

// serializeEvent converts a domain event to JSON payload.
func serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
