package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// OrderItemPayload is one purchased line on the wire.
type OrderItemPayload struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// AddressPayload is the structured delivery address on the wire.
type AddressPayload struct {
	HouseNo     string `json:"houseNo"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark,omitempty"`
	AddressType string `json:"addressType,omitempty"`
	FullAddress string `json:"fullAddress"`
	TimeSlot    string `json:"timeSlot,omitempty"`
}

// PlaceOrderRequest payload.
type PlaceOrderRequest struct {
	Items       []OrderItemPayload `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	Address     AddressPayload     `json:"address"`
	PaymentID   *string            `json:"paymentId"`
	PaymentType string             `json:"paymentType"`
}

// ChangeTimeSlotRequest payload.
type ChangeTimeSlotRequest struct {
	TimeSlot string `json:"timeSlot"`
}

// OrderResponse is the full order representation.
type OrderResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"userId"`
	Items         []OrderItemPayload `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
	Address       AddressPayload     `json:"address"`
	Status        domain.OrderStatus `json:"status"`
	RequestStatus string             `json:"requestStatus"`
	PaymentID     *string            `json:"paymentId,omitempty"`
	PaymentType   domain.PaymentType `json:"paymentType"`
	HappyCode     string             `json:"happyCode"`
	CompleteCode  string             `json:"completeCode"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// AdminOrderResponse adds the resolved owner contact fields.
type AdminOrderResponse struct {
	OrderResponse
	User AdminOrderUser `json:"user"`
}

// AdminOrderUser carries the owning user's name and email.
type AdminOrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
