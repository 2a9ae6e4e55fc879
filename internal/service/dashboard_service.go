package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/cache"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// DashboardService computes the back-office aggregate counters.
type DashboardService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	orders   repository.OrderRepository
	stats    cache.StatsCache
	logger   *zap.Logger
}

// DashboardDependencies bundles requirements for the dashboard service.
type DashboardDependencies struct {
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	OrderRepo   repository.OrderRepository
	StatsCache  cache.StatsCache
	Logger      *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		products: deps.ProductRepo,
		users:    deps.UserRepo,
		orders:   deps.OrderRepo,
		stats:    deps.StatsCache,
		logger:   deps.Logger,
	}
}

// GetStats returns total counts plus the per-status order histogram. The
// histogram always carries every known status: a zero-filled map is built
// first, then observed counts overwrite it, so the key set is stable no
// matter what data exists. Results are cached; a cache failure only costs
// the recomputation.
func (s *DashboardService) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if cached, err := s.stats.Get(ctx); err != nil {
		s.logger.Warn("stats cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	observed, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	histogram := make(map[domain.OrderStatus]int64, len(domain.AllOrderStatuses()))
	for _, status := range domain.AllOrderStatuses() {
		histogram[status] = 0
	}
	for status, count := range observed {
		if _, known := histogram[status]; known {
			histogram[status] = count
		}
	}

	stats := &domain.DashboardStats{
		Products:          products,
		Users:             users,
		Orders:            orders,
		OrderStatusCounts: histogram,
	}
	if err := s.stats.Set(ctx, stats); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
	return stats, nil
}

// RegisterInvalidation drops the cached aggregate whenever an order changes,
// so the dashboard never serves a stale count past the TTL on mutation.
func (s *DashboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		if err := s.stats.Invalidate(ctx); err != nil {
			s.logger.Warn("stats cache invalidation failed", zap.Error(err))
		}
		return nil
	}
	dispatcher.Subscribe(events.EventOrderPlaced, invalidate)
	dispatcher.Subscribe(events.EventOrderCancelled, invalidate)
}
