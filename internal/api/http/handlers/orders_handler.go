package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// OrdersHandler manages storefront and back-office order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// Place POST /orders/place.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	order, err := h.service.PlaceOrder(c.Context(), principal.User.ID, service.PlaceOrderInput{
		Items:       items,
		TotalAmount: req.TotalAmount,
		Address:     addressFromPayload(req.Address),
		PaymentID:   req.PaymentID,
		PaymentType: domain.PaymentType(strings.TrimSpace(req.PaymentType)),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order placed successfully. Admin will process it shortly.",
		"order":   orderResponse(order),
	})
}

// MyOrders GET /orders/my-orders.
func (h *OrdersHandler) MyOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	orders, err := h.service.GetUserOrders(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Cancel DELETE /orders/:id.
func (h *OrdersHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	if err := h.service.CancelOrder(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}

// ChangeTimeSlot PUT /orders/:id/change-timeslot.
func (h *OrdersHandler) ChangeTimeSlot(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.ChangeTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.ChangeTimeSlot(c.Context(), c.Params("id"), req.TimeSlot, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Time slot updated.",
		"order":   orderResponse(order),
	})
}

// AllOrders GET /orders/AllOrders.
func (h *OrdersHandler) AllOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AdminOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.AdminOrderResponse{
			OrderResponse: orderResponse(&orders[i].Order),
			User: dto.AdminOrderUser{
				Name:  orders[i].UserName,
				Email: orders[i].UserEmail,
			},
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func orderResponse(order *domain.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}
	return dto.OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		Items:         items,
		TotalAmount:   order.TotalAmount,
		Address:       addressPayload(order.Address),
		Status:        order.Status,
		RequestStatus: order.RequestStatus,
		PaymentID:     order.PaymentID,
		PaymentType:   order.PaymentType,
		HappyCode:     order.HappyCode,
		CompleteCode:  order.CompleteCode,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func addressPayload(address domain.DeliveryAddress) dto.AddressPayload {
	return dto.AddressPayload{
		HouseNo:     address.HouseNo,
		Street:      address.Street,
		Landmark:    address.Landmark,
		AddressType: address.AddressType,
		FullAddress: address.FullAddress,
		TimeSlot:    address.TimeSlot,
	}
}

func addressFromPayload(payload dto.AddressPayload) domain.DeliveryAddress {
	return domain.DeliveryAddress{
		HouseNo:     payload.HouseNo,
		Street:      payload.Street,
		Landmark:    payload.Landmark,
		AddressType: payload.AddressType,
		FullAddress: payload.FullAddress,
		TimeSlot:    payload.TimeSlot,
	}
}
