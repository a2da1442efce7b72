package update_discount

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_discount"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
)

// Request contains the data to update a discount. Nil pointer fields mean
// no change. Window fields travel together: submitting either bound
// resubmits the whole window, which the edit-lock policy then sanitizes.
type Request struct {
	DiscountID  string
	Name        *string
	Description *string
	Kind        *string // must accompany RawValue
	RawValue    *string
	ValidFrom   *time.Time
	ValidTo     *time.Time
	ProductIDs  []string // nil = no change
	Version     int64    // expected version for optimistic locking
}

// Response reports normalization outcomes alongside the updated state.
type Response struct {
	ValueClamped bool
	NewVersion   int64
}

// Interactor handles the update discount use case.
type Interactor struct {
	repo         contracts.DiscountRepository
	revisionRepo contracts.RevisionRepository
	outboxRepo   contracts.OutboxRepository
	readModel    contracts.ReadModel
	committer    *committer.Committer
	clock        clock.Clock
}

// NewInteractor creates a new update discount interactor.
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

// Execute updates a discount following the Golden Mutation Pattern. An
// expired discount rejects every edit; a started one silently retains its
// original start date via window sanitization.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := i.clock.Now()

	discount, err := i.repo.GetByID(ctx, req.DiscountID)
	if err != nil {
		return nil, err
	}

	defer discount.ClearEvents()

	if discount.Status(now) == domain.StatusExpired {
		return nil, domain.ErrDiscountExpired
	}

	// Snapshot pre-edit state for the revision record before any domain
	// method mutates the aggregate.
	oldValue := discount.Value()
	oldWindow := discount.Window()

	clamped := false

	if req.Name != nil {
		if err := discount.Rename(*req.Name, now); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		if err := discount.SetDescription(*req.Description, now); err != nil {
			return nil, err
		}
	}

	if req.RawValue != nil {
		kind := discount.Kind()
		if req.Kind != nil {
			kind, err = domain.ParseKind(*req.Kind)
			if err != nil {
				return nil, err
			}
		}

		value, wasClamped, err := domain.NormalizeValue(*req.RawValue, kind)
		if err != nil {
			return nil, err
		}
		clamped = wasClamped

		if err := discount.SetValue(kind, value, now); err != nil {
			return nil, err
		}
	}

	if req.ValidFrom != nil || req.ValidTo != nil {
		submitted, err := submittedWindow(discount.Window(), req.ValidFrom, req.ValidTo)
		if err != nil {
			return nil, err
		}
		if err := discount.Reschedule(submitted, now); err != nil {
			return nil, err
		}
	}

	if req.ProductIDs != nil {
		claims, err := i.readModel.ListClaims(ctx, now)
		if err != nil {
			return nil, fmt.Errorf("failed to load product claims: %w", err)
		}
		if err := domain.CheckUnreserved(req.ProductIDs, claims, discount.ID(), now); err != nil {
			return nil, err
		}
		if err := discount.AssignProducts(req.ProductIDs, now); err != nil {
			return nil, err
		}
	}

	plan := committer.NewPlan()

	updateMut, err := i.repo.UpdateMut(discount)
	if err != nil {
		return nil, fmt.Errorf("failed to build update mutation: %w", err)
	}
	plan.Add(updateMut)
	plan.Add(i.revisionRepo.ChangeMut(discount, oldValue, oldWindow))

	for _, event := range discount.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize event: %w", err)
		}
		plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if plan.IsEmpty() {
		return &Response{ValueClamped: clamped, NewVersion: discount.Version()}, nil
	}

	err = i.committer.ApplyWithVersionCheck(
		ctx,
		m_discount.TableName,
		spanner.Key{discount.ID()},
		req.Version,
		plan,
	)
	if err != nil {
		return nil, err
	}

	return &Response{
		ValueClamped: clamped,
		NewVersion:   req.Version + 1,
	}, nil
}

// submittedWindow merges resubmitted bounds over the current window. A
// partial submission keeps the other bound as stored.
func submittedWindow(current domain.DateWindow, validFrom, validTo *time.Time) (domain.DateWindow, error) {
	from := current.ValidFrom()
	to := current.ValidTo()
	if validFrom != nil {
		from = *validFrom
	}
	if validTo != nil {
		to = *validTo
	}
	return domain.NewDateWindow(from, to)
}
