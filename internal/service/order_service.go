package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// OrderService coordinates the order lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	Dispatcher events.Dispatcher
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
	}
}

// PlaceOrderInput describes the checkout payload.
type PlaceOrderInput struct {
	Items       []domain.OrderItem
	TotalAmount float64
	Address     domain.DeliveryAddress
	PaymentID   *string
	PaymentType domain.PaymentType
}

// PlaceOrder creates an order for a customer. Pay-after-service orders start
// Pending without a payment reference; upfront orders require one and start
// Confirmed. Both verification codes are generated here.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, input PlaceOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("no items to place order", nil)
	}

	happyCode, completeCode, err := generateCodePair()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	order := &domain.Order{
		UserID:        userID,
		Items:         input.Items,
		TotalAmount:   input.TotalAmount,
		Address:       input.Address,
		RequestStatus: domain.RequestStatusPending,
		HappyCode:     happyCode,
		CompleteCode:  completeCode,
	}

	if input.PaymentType == domain.PaymentTypePost {
		order.Status = domain.OrderStatusPending
		order.PaymentType = domain.PaymentTypePost
	} else {
		if input.PaymentID == nil || *input.PaymentID == "" {
			return nil, apperrors.NewValidationError("payment reference required", nil)
		}
		order.Status = domain.OrderStatusConfirmed
		order.PaymentType = domain.PaymentTypeUpfront
		order.PaymentID = input.PaymentID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderPlaced,
		EntityID: order.ID,
		Actor:    customerActor(userID),
		Payload: events.OrderPlacedPayload{
			Status:      order.Status,
			PaymentType: order.PaymentType,
			TotalAmount: order.TotalAmount,
		},
	})
	return order, nil
}

// GetUserOrders returns every order owned by the caller in insertion order.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// CancelOrder sets the order status to Cancelled after an ownership check.
// No payment or code reversal happens here; reconciliation is external.
// Concurrent cancellations are not serialized: last write wins.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, callerID string) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("order", map[string]any{"id": orderID})
		}
		return err
	}
	if order.UserID != callerID {
		return apperrors.NewForbidden("order does not belong to caller")
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderCancelled,
		EntityID: orderID,
		Actor:    customerActor(callerID),
		Payload: events.OrderCancelledPayload{
			PreviousStatus: order.Status,
		},
	})
	return nil
}

// GetAllOrders returns every order with the owner's name and email resolved.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.OrderWithUser, error) {
	return s.orders.ListAllWithUser(ctx)
}

// ChangeTimeSlot overwrites the requested time slot on the order's delivery
// address, leaving every other field untouched.
func (s *OrderService) ChangeTimeSlot(ctx context.Context, orderID, timeSlot, callerID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": orderID})
		}
		return nil, err
	}
	if order.UserID != callerID {
		return nil, apperrors.NewForbidden("order does not belong to caller")
	}
	if order.Address == (domain.DeliveryAddress{}) {
		return nil, apperrors.NewNotFound("order address", map[string]any{"id": orderID})
	}

	if err := s.orders.UpdateTimeSlot(ctx, orderID, timeSlot); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order address", map[string]any{"id": orderID})
		}
		return nil, err
	}
	order.Address.TimeSlot = timeSlot

	s.publishEvent(ctx, events.Event{
		Type:     events.EventOrderTimeSlotChanged,
		EntityID: orderID,
		Actor:    customerActor(callerID),
		Payload: events.OrderTimeSlotChangedPayload{
			TimeSlot: timeSlot,
		},
	})
	return order, nil
}

func (s *OrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func customerActor(userID string) events.Actor {
	return events.Actor{
		Type:   domain.SubjectTypeCustomer,
		UserID: &userID,
	}
}

func staffActor(staffID string) events.Actor {
	return events.Actor{
		Type:    domain.SubjectTypeCallCentre,
		StaffID: &staffID,
	}
}
