package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_discount"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// DiscountRepo implements DiscountRepository for Spanner.
type DiscountRepo struct {
	client *spanner.Client
	model  *m_discount.Model
	clock  clock.Clock
}

// NewDiscountRepo creates a new DiscountRepo.
func NewDiscountRepo(client *spanner.Client, clk clock.Clock) contracts.DiscountRepository {
	return &DiscountRepo{
		client: client,
		model:  m_discount.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new discount.
func (r *DiscountRepo) InsertMut(discount *domain.Discount) (*spanner.Mutation, error) {
	data, err := r.domainToData(discount)
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a discount (only dirty fields).
func (r *DiscountRepo) UpdateMut(discount *domain.Discount) (*spanner.Mutation, error) {
	changes := discount.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_discount.Name] = discount.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_discount.Description] = discount.Description()
	}

	if changes.Dirty(domain.FieldKind) {
		updates[m_discount.Kind] = string(discount.Kind())
	}

	if changes.Dirty(domain.FieldValue) {
		num, denom, err := storageValue(discount.Value())
		if err != nil {
			return nil, err
		}
		updates[m_discount.ValueNumerator] = num
		updates[m_discount.ValueDenominator] = denom
	}

	if changes.Dirty(domain.FieldWindow) {
		window := discount.Window()
		updates[m_discount.ValidFrom] = window.ValidFrom()
		updates[m_discount.ValidTo] = window.ValidTo()
	}

	if changes.Dirty(domain.FieldProducts) {
		updates[m_discount.ProductIDs] = discount.ProductIDs()
	}

	if changes.Dirty(domain.FieldActive) {
		updates[m_discount.Active] = discount.Active()
	}

	if len(updates) == 0 {
		return nil, nil
	}

	// Increment version for optimistic locking
	updates[m_discount.Version] = discount.Version() + 1

	return r.model.UpdateMut(discount.ID(), updates), nil
}

// GetByID retrieves a discount by ID, reconstructing the domain aggregate.
func (r *DiscountRepo) GetByID(ctx context.Context, discountID string) (*domain.Discount, error) {
	row, err := r.client.Single().ReadRow(ctx, m_discount.TableName, spanner.Key{discountID}, r.model.ReadColumns())
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

	return r.dataToDomain(&data)
}

// Exists checks if a discount exists.
func (r *DiscountRepo) Exists(ctx context.Context, discountID string) (bool, error) {
	_, err := r.client.Single().ReadRow(ctx, m_discount.TableName, spanner.Key{discountID}, []string{m_discount.DiscountID})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check discount existence: %w", err)
	}
	return true, nil
}

// domainToData converts a domain Discount to database Data.
func (r *DiscountRepo) domainToData(discount *domain.Discount) (*m_discount.Data, error) {
	num, denom, err := storageValue(discount.Value())
	if err != nil {
		return nil, err
	}

	window := discount.Window()

	return &m_discount.Data{
		DiscountID:       discount.ID(),
		Name:             discount.Name(),
		Description:      discount.Description(),
		Kind:             string(discount.Kind()),
		ValueNumerator:   num,
		ValueDenominator: denom,
		ValidFrom:        window.ValidFrom(),
		ValidTo:          window.ValidTo(),
		ProductIDs:       discount.ProductIDs(),
		Active:           discount.Active(),
		Version:          discount.Version(),
		CreatedAt:        discount.CreatedAt(),
		UpdatedAt:        discount.UpdatedAt(),
	}, nil
}

// dataToDomain converts database Data to a domain Discount.
func (r *DiscountRepo) dataToDomain(data *m_discount.Data) (*domain.Discount, error) {
	value, err := domain.NewMagnitude(data.ValueNumerator, data.ValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid discount value: %w", err)
	}

	window, err := domain.NewDateWindow(data.ValidFrom, data.ValidTo)
	if err != nil {
		return nil, fmt.Errorf("invalid discount window: %w", err)
	}

	return domain.ReconstructDiscount(
		data.DiscountID,
		data.Name,
		data.Description,
		domain.DiscountKind(data.Kind),
		value,
		window,
		data.ProductIDs,
		data.Active,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}

// storageValue extracts int64 storage components from a magnitude.
func storageValue(value *domain.Magnitude) (int64, int64, error) {
	if !value.IsSafeForStorage() {
		return 0, 0, fmt.Errorf("discount value exceeds storage capacity: %w", domain.ErrInvalidMagnitude)
	}
	num, _ := value.Numerator()
	denom, _ := value.Denominator()
	return num, denom, nil
}
