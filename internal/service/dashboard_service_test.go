package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
)

type fakeUserRepo struct {
	count int64
}

func (f *fakeUserRepo) Create(_ context.Context, _ *domain.User) error        { return nil }
func (f *fakeUserRepo) Update(_ context.Context, _ *domain.User) error        { return nil }
func (f *fakeUserRepo) GetByID(context.Context, string) (*domain.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(context.Context) (int64, error) { return f.count, nil }

type fakeProductRepo struct {
	count int64
}

func (f *fakeProductRepo) Create(_ context.Context, _ *domain.Product) error { return nil }
func (f *fakeProductRepo) List(context.Context) ([]domain.Product, error)    { return nil, nil }
func (f *fakeProductRepo) SetActive(context.Context, string, bool) error     { return nil }
func (f *fakeProductRepo) Count(context.Context) (int64, error)              { return f.count, nil }

type memStatsCache struct {
	stored      *domain.DashboardStats
	gets        int
	invalidated int
}

func (c *memStatsCache) Get(context.Context) (*domain.DashboardStats, error) {
	c.gets++
	return c.stored, nil
}

func (c *memStatsCache) Set(_ context.Context, stats *domain.DashboardStats) error {
	c.stored = stats
	return nil
}

func (c *memStatsCache) Invalidate(context.Context) error {
	c.stored = nil
	c.invalidated++
	return nil
}

func seedOrders(t *testing.T, repo *fakeOrderRepo, statuses ...domain.OrderStatus) {
	t.Helper()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})
	for _, status := range statuses {
		order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
			Items:       someItems(),
			TotalAmount: 10,
			PaymentType: domain.PaymentTypePost,
		})
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, status))
	}
}

func TestGetStatsZeroFillsHistogram(t *testing.T) {
	orders := newFakeOrderRepo()
	seedOrders(t, orders, domain.OrderStatusPending, domain.OrderStatusPending, domain.OrderStatusCompleted)

	cacheStore := &memStatsCache{}
	svc := NewDashboardService(DashboardDependencies{
		ProductRepo: &fakeProductRepo{count: 4},
		UserRepo:    &fakeUserRepo{count: 7},
		OrderRepo:   orders,
		StatsCache:  cacheStore,
		Logger:      zap.NewNop(),
	})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.Products)
	assert.Equal(t, int64(7), stats.Users)
	assert.Equal(t, int64(3), stats.Orders)

	// Every known status is present even with no matching orders.
	require.Len(t, stats.OrderStatusCounts, len(domain.AllOrderStatuses()))
	assert.Equal(t, int64(2), stats.OrderStatusCounts[domain.OrderStatusPending])
	assert.Equal(t, int64(1), stats.OrderStatusCounts[domain.OrderStatusCompleted])
	assert.Equal(t, int64(0), stats.OrderStatusCounts[domain.OrderStatusDeclined])

	var total int64
	for _, count := range stats.OrderStatusCounts {
		total += count
	}
	assert.Equal(t, stats.Orders, total)
}

func TestGetStatsServesCachedValue(t *testing.T) {
	cached := &domain.DashboardStats{Products: 99}
	cacheStore := &memStatsCache{stored: cached}
	svc := NewDashboardService(DashboardDependencies{
		ProductRepo: &fakeProductRepo{count: 1},
		UserRepo:    &fakeUserRepo{count: 1},
		OrderRepo:   newFakeOrderRepo(),
		StatsCache:  cacheStore,
		Logger:      zap.NewNop(),
	})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), stats.Products)
}

func TestOrderEventsInvalidateStats(t *testing.T) {
	cacheStore := &memStatsCache{stored: &domain.DashboardStats{}}
	dispatcher := events.NewInMemoryDispatcher()

	svc := NewDashboardService(DashboardDependencies{
		ProductRepo: &fakeProductRepo{},
		UserRepo:    &fakeUserRepo{},
		OrderRepo:   newFakeOrderRepo(),
		StatsCache:  cacheStore,
		Logger:      zap.NewNop(),
	})
	svc.RegisterInvalidation(dispatcher)

	orderSvc := NewOrderService(OrderDependencies{OrderRepo: newFakeOrderRepo(), Dispatcher: dispatcher})
	order, err := orderSvc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 10,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cacheStore.invalidated)

	require.NoError(t, orderSvc.CancelOrder(context.Background(), order.ID, "user-1"))
	assert.Equal(t, 2, cacheStore.invalidated)
}
