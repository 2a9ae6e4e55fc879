package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

type fakeOrderRepo struct {
	orders        map[string]*domain.Order
	created       []*domain.Order
	statusUpdates map[string]domain.OrderStatus
	timeSlots     map[string]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:        map[string]*domain.Order{},
		statusUpdates: map[string]domain.OrderStatus{},
		timeSlots:     map[string]string{},
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = "order-" + strconv.Itoa(len(f.created)+1)
	f.created = append(f.created, order)
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.created {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ListAllWithUser(_ context.Context) ([]domain.OrderWithUser, error) {
	var result []domain.OrderWithUser
	for _, order := range f.created {
		result = append(result, domain.OrderWithUser{Order: *order})
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeOrderRepo) UpdateTimeSlot(_ context.Context, id, timeSlot string) error {
	order, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Address.TimeSlot = timeSlot
	f.timeSlots[id] = timeSlot
	return nil
}

func (f *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) CountByStatus(_ context.Context) (map[domain.OrderStatus]int64, error) {
	result := map[domain.OrderStatus]int64{}
	for _, order := range f.orders {
		result[order.Status]++
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func someItems() []domain.OrderItem {
	return []domain.OrderItem{{Title: "Deep cleaning", Price: 120, Quantity: 1}}
}

func TestPlaceOrderPostPayment(t *testing.T) {
	repo := newFakeOrderRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(OrderDependencies{OrderRepo: repo, Dispatcher: dispatcher})

	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 120,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Nil(t, order.PaymentID)
	assert.Equal(t, domain.PaymentTypePost, order.PaymentType)
	assert.Equal(t, domain.RequestStatusPending, order.RequestStatus)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderPlaced, dispatcher.published[0].Type)
}

func TestPlaceOrderUpfrontRequiresPaymentReference(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	_, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 120,
		PaymentType: domain.PaymentTypeUpfront,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, repo.created)
}

func TestPlaceOrderUpfrontConfirmed(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	paymentID := "pay_123"
	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 120,
		PaymentID:   &paymentID,
		PaymentType: domain.PaymentTypeUpfront,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.PaymentID)
	assert.Equal(t, paymentID, *order.PaymentID)
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	svc := NewOrderService(OrderDependencies{OrderRepo: newFakeOrderRepo()})

	_, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		PaymentType: domain.PaymentTypePost,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestPlaceOrderVerificationCodes(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	for i := 0; i < 200; i++ {
		order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
			Items:       someItems(),
			TotalAmount: 50,
			PaymentType: domain.PaymentTypePost,
		})
		require.NoError(t, err)

		happy, err := strconv.Atoi(order.HappyCode)
		require.NoError(t, err)
		complete, err := strconv.Atoi(order.CompleteCode)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, happy, 1000)
		assert.LessOrEqual(t, happy, 9999)
		assert.GreaterOrEqual(t, complete, 1000)
		assert.LessOrEqual(t, complete, 9999)
		assert.NotEqual(t, happy, complete)
	}
}

func TestCancelOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(OrderDependencies{OrderRepo: repo, Dispatcher: dispatcher})

	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 50,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), order.ID, "user-1"))
	assert.Equal(t, domain.OrderStatusCancelled, repo.statusUpdates[order.ID])

	var cancelled bool
	for _, event := range dispatcher.published {
		if event.Type == events.EventOrderCancelled {
			cancelled = true
		}
	}
	assert.True(t, cancelled)
}

func TestCancelOrderOwnershipAndExistence(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 50,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	err = svc.CancelOrder(context.Background(), order.ID, "someone-else")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	err = svc.CancelOrder(context.Background(), "missing", "user-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// Cancelling twice succeeds both times: cancellation is a plain overwrite
// with no state gate, so concurrent cancels cannot deadlock or error.
func TestCancelOrderIsIdempotent(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 50,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(context.Background(), order.ID, "user-1"))
	require.NoError(t, svc.CancelOrder(context.Background(), order.ID, "user-1"))
	assert.Equal(t, domain.OrderStatusCancelled, repo.orders[order.ID].Status)
}

func TestChangeTimeSlot(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 50,
		Address:     domain.DeliveryAddress{FullAddress: "12 High St", TimeSlot: "9-11"},
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	updated, err := svc.ChangeTimeSlot(context.Background(), order.ID, "14-16", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "14-16", updated.Address.TimeSlot)
	assert.Equal(t, "12 High St", updated.Address.FullAddress)
	assert.Equal(t, "14-16", repo.timeSlots[order.ID])
}

func TestChangeTimeSlotMissingOrderOrAddress(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(OrderDependencies{OrderRepo: repo})

	_, err := svc.ChangeTimeSlot(context.Background(), "missing", "14-16", "user-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	// Order without a delivery address cannot take a time slot.
	order, err := svc.PlaceOrder(context.Background(), "user-1", PlaceOrderInput{
		Items:       someItems(),
		TotalAmount: 50,
		PaymentType: domain.PaymentTypePost,
	})
	require.NoError(t, err)

	_, err = svc.ChangeTimeSlot(context.Background(), order.ID, "14-16", "user-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
