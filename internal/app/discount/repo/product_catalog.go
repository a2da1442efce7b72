package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/promo-console-service/internal/app/discount/contracts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/models/m_product"
	"github.com/light-bringer/promo-console-service/internal/pkg/cache"
	"github.com/light-bringer/promo-console-service/internal/pkg/query"
)

const (
	productCacheKeyAll    = "catalog:products:all"
	productCacheKeyActive = "catalog:products:active"
)

// ProductCatalogRepo reads the catalog subsystem's products table through a
// snapshot cache. Cache failures degrade to a direct read, never to an
// error surfaced to the caller.
type ProductCatalogRepo struct {
	client   *spanner.Client
	snapshot cache.Snapshot
	ttl      time.Duration
}

// NewProductCatalog creates a new ProductCatalog implementation.
func NewProductCatalog(client *spanner.Client, snapshot cache.Snapshot, ttl time.Duration) contracts.ProductCatalog {
	if snapshot == nil {
		snapshot = cache.Noop{}
	}
	return &ProductCatalogRepo{
		client:   client,
		snapshot: snapshot,
		ttl:      ttl,
	}
}

// ListProducts returns products in stable catalog order, optionally
// restricted to active ones.
func (pc *ProductCatalogRepo) ListProducts(ctx context.Context, activeOnly bool) ([]domain.ProductRef, error) {
	key := productCacheKeyAll
	if activeOnly {
		key = productCacheKeyActive
	}

	if raw, hit, err := pc.snapshot.Get(ctx, key); err == nil && hit {
		var products []domain.ProductRef
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
		// Corrupt entry, drop it and fall through to the source read.
		_ = pc.snapshot.Invalidate(ctx, key)
	}

	products, err := pc.readProducts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(products); err == nil {
		_ = pc.snapshot.Set(ctx, key, raw, pc.ttl)
	}

	return products, nil
}

func (pc *ProductCatalogRepo) readProducts(ctx context.Context, activeOnly bool) ([]domain.ProductRef, error) {
	builder := query.From(m_product.TableName).
		Select(m_product.ProductID, m_product.Name, m_product.Active).
		OrderBy(m_product.Name, query.Asc)

	if activeOnly {
		builder = builder.Where(query.Eq(m_product.Active, true))
	}

	iter := pc.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var products []domain.ProductRef
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var ref domain.ProductRef
		if err := row.Columns(&ref.ID, &ref.Name, &ref.Active); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		products = append(products, ref)
	}

	return products, nil
}
