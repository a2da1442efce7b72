package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_discount"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
	model  *m_discount.Model
	clock  clock.Clock
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client, clk clock.Clock) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
		model:  m_discount.NewModel(),
		clock:  clk,
	}
}

// GetDiscountByID retrieves a discount DTO by ID.
func (rm *ReadModelImpl) GetDiscountByID(ctx context.Context, discountID string) (*contracts.DiscountDTO, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_discount.TableName, spanner.Key{discountID}, rm.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("failed to read discount: %w", err)
	}

	var data m_discount.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse discount: %w", err)
	}

	return rm.dataToDTO(&data, rm.clock.Now())
}

// ListDiscounts retrieves a paginated list of discounts with filtering.
func (rm *ReadModelImpl) ListDiscounts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	today := clock.Today(rm.clock)

	builder := query.From(m_discount.TableName).Select(rm.model.ReadColumns()...)

	if filter.Kind != "" {
		builder = builder.Where(query.Eq(m_discount.Kind, filter.Kind))
	}

	if filter.Active != nil {
		builder = builder.Where(query.Eq(m_discount.Active, *filter.Active))
	}

	if filter.Search != "" {
		builder = builder.Where(query.Like(m_discount.Name, strings.ToLower(filter.Search)))
	}

	// Temporal status is derived, not stored; translate the filter into
	// window bounds against today.
	switch domain.Status(filter.Status) {
	case domain.StatusNotStarted:
		builder = builder.Where(query.Gt(m_discount.ValidFrom, today))
	case domain.StatusValid:
		builder = builder.Where(query.Lte(m_discount.ValidFrom, today)).Where(query.Gte(m_discount.ValidTo, today))
	case domain.StatusExpired:
		builder = builder.Where(query.Lt(m_discount.ValidTo, today))
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 100 {
		pageSize = 100
	}

	paged := builder.
		OrderBy(m_discount.CreatedAt, query.Desc).
		Limit(int64(pageSize)).
		Offset(int64(filter.Offset))

	now := rm.clock.Now()
	discounts := make([]*contracts.DiscountDTO, 0, pageSize)

	iter := rm.client.Single().Query(ctx, paged.Build())
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate discounts: %w", err)
		}

		var data m_discount.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse discount: %w", err)
		}

		dto, err := rm.dataToDTO(&data, now)
		if err != nil {
			return nil, err
		}

		discounts = append(discounts, dto)
	}

	total, err := rm.countDiscounts(ctx, builder)
	if err != nil {
		return nil, err
	}

	return &contracts.ListResult{
		Discounts:  discounts,
		TotalCount: total,
	}, nil
}

// ListClaims retrieves the exclusivity snapshot: active discounts whose
// window has not fully lapsed as of now.
func (rm *ReadModelImpl) ListClaims(ctx context.Context, now time.Time) ([]domain.ProductClaim, error) {
	stmt := query.From(m_discount.TableName).
		Select(m_discount.DiscountID, m_discount.ProductIDs, m_discount.ValidFrom, m_discount.ValidTo, m_discount.Active).
		Where(query.Eq(m_discount.Active, true)).
		Where(query.Gte(m_discount.ValidTo, clock.TruncateToDay(now))).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var claims []domain.ProductClaim
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate claims: %w", err)
		}

		var (
			discountID string
			productIDs []string
			validFrom  time.Time
			validTo    time.Time
			active     bool
		)
		if err := row.Columns(&discountID, &productIDs, &validFrom, &validTo, &active); err != nil {
			return nil, fmt.Errorf("failed to parse claim: %w", err)
		}

		window, err := domain.NewDateWindow(validFrom, validTo)
		if err != nil {
			return nil, fmt.Errorf("stored window invalid for discount %s: %w", discountID, err)
		}

		claims = append(claims, domain.ProductClaim{
			DiscountID: discountID,
			ProductIDs: productIDs,
			Window:     window,
			Active:     active,
		})
	}

	return claims, nil
}

func (rm *ReadModelImpl) countDiscounts(ctx context.Context, builder *query.Builder) (int64, error) {
	iter := rm.client.Single().Query(ctx, builder.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count discounts: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}

	return count, nil
}

// dataToDTO converts database Data to a DiscountDTO.
func (rm *ReadModelImpl) dataToDTO(data *m_discount.Data, now time.Time) (*contracts.DiscountDTO, error) {
	value, err := domain.NewMagnitude(data.ValueNumerator, data.ValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid stored value: %w", err)
	}

	window, err := domain.NewDateWindow(data.ValidFrom, data.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("invalid stored window: %w", err)
	}

	return &contracts.DiscountDTO{
		DiscountID:  data.DiscountID,
		Name:        data.Name,
		Description: data.Description,
		Kind:        data.Kind,
		Value:       value.Float64(),
		ValidFrom:   window.ValidFrom(),
		ValidTo:     window.ValidTo(),
		ProductIDs:  data.ProductIDs,
		Active:      data.Active,
		Status:      string(window.Status(now)),
		Version:     data.Version,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}, nil
}
