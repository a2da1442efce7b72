package list_discounts

import (
	"context"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
)

// Request contains filtering and pagination parameters.
type Request struct {
	Kind     string
	Active   *bool
	Status   string
	Search   string
	PageSize int
	Offset   int
}

// Query handles the list discounts query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list discounts query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a paginated discount list with filtering.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	return q.readModel.ListDiscounts(ctx, &contracts.ListFilter{
		Kind:     req.Kind,
		Active:   req.Active,
		Status:   req.Status,
		Search:   req.Search,
		PageSize: req.PageSize,
		Offset:   req.Offset,
	})
}
