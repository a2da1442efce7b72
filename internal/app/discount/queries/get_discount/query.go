package get_discount

import (
	"context"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// Request contains the discount ID to retrieve.
type Request struct {
	DiscountID string
}

// Response bundles the discount with its current field locks, so the edit
// form can disable inputs without a second round trip.
type Response struct {
	Discount *contracts.DiscountDTO
	Locks    domain.FieldLocks
}

// Query handles the get discount query use case.
type Query struct {
	readModel contracts.ReadModel
	clock     clock.Clock
}

// NewQuery creates a new get discount query.
func NewQuery(readModel contracts.ReadModel, clk clock.Clock) *Query {
	return &Query{
		readModel: readModel,
		clock:     clk,
	}
}

// Execute retrieves a discount by ID together with its field locks.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	dto, err := q.readModel.GetDiscountByID(ctx, req.DiscountID)
	if err != nil {
		return nil, err
	}

	window, err := domain.NewDateWindow(dto.ValidFrom, dto.ValidTo)
	if err != nil {
		return nil, err
	}

	return &Response{
		Discount: dto,
		Locks:    domain.LockedFields(window, q.clock.Now()),
	}, nil
}
