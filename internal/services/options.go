package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/available_products"
	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/get_discount"
	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/list_discounts"
	"github.com/light-bringer/promo-console-service/internal/app/discount/queries/list_events"
	"github.com/light-bringer/promo-console-service/internal/app/discount/repo"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/create_discount"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/set_discount_active"
	"github.com/light-bringer/promo-console-service/internal/app/discount/usecases/update_discount"
	"github.com/light-bringer/promo-console-service/internal/config"
	"github.com/light-bringer/promo-console-service/internal/pkg/cache"
	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
	transport "github.com/light-bringer/promo-console-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient   *spanner.Client
	Cache           *cache.Redis
	DiscountHandler *transport.DiscountHandler
	ProductHandler  *transport.ProductHandler
	EventsHandler   *transport.EventsHandler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Configuration, logger *zap.Logger) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)

	var snapshot cache.Snapshot = cache.Noop{}
	var redisCache *cache.Redis
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			// Degraded but functional: every catalog read goes to Spanner.
			logger.Warn("redis unreachable, snapshot cache disabled", zap.Error(err))
			redisCache = nil
		} else {
			snapshot = redisCache
		}
	}

	discountRepo := repo.NewDiscountRepo(spannerClient, clk)
	revisionRepo := repo.NewRevisionRepo(spannerClient, clk)
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	readModel := repo.NewReadModel(spannerClient, clk)
	catalog := repo.NewProductCatalog(spannerClient, snapshot, cfg.CacheTTL)
	eventsReadModel := repo.NewEventsReadModel(spannerClient)

	createUC := create_discount.NewInteractor(discountRepo, revisionRepo, outboxRepo, readModel, comm, clk)
	updateUC := update_discount.NewInteractor(discountRepo, revisionRepo, outboxRepo, readModel, comm, clk)
	setActiveUC := set_discount_active.NewInteractor(discountRepo, outboxRepo, readModel, comm, clk)

	getQuery := get_discount.NewQuery(readModel, clk)
	listQuery := list_discounts.NewQuery(readModel)
	availableQuery := available_products.NewQuery(catalog, readModel, clk)
	eventsQuery := list_events.NewQuery(eventsReadModel)

	return &ServiceOptions{
		SpannerClient:   spannerClient,
		Cache:           redisCache,
		DiscountHandler: transport.NewDiscountHandler(createUC, updateUC, setActiveUC, getQuery, listQuery, logger),
		ProductHandler:  transport.NewProductHandler(availableQuery, logger),
		EventsHandler:   transport.NewEventsHandler(eventsQuery, logger),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.Cache != nil {
		_ = s.Cache.Close()
	}
}
