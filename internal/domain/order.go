package domain

import "time"

// OrderStatus enumerates order lifecycle states. This is the single shared
// definition consumed by validation, persistence and dashboard aggregation.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusDeclined   OrderStatus = "Declined"
)

// AllOrderStatuses returns every known status in presentation order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
		OrderStatusDeclined,
	}
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled, OrderStatusDeclined},
	OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
	OrderStatusDeclined:   {},
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are permitted.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// PaymentType distinguishes upfront payment from pay-after-service.
type PaymentType string

const (
	PaymentTypeUpfront PaymentType = "upfront"
	PaymentTypePost    PaymentType = "post"
)

// RequestStatusPending is the initial internal request-status for new orders.
const RequestStatusPending = "Pending"

// OrderItem is one purchased service line.
type OrderItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// DeliveryAddress is the structured address an order is fulfilled at.
type DeliveryAddress struct {
	HouseNo     string `json:"house_no"`
	Street      string `json:"street"`
	Landmark    string `json:"landmark,omitempty"`
	AddressType string `json:"address_type,omitempty"`
	FullAddress string `json:"full_address"`
	TimeSlot    string `json:"time_slot,omitempty"`
}

// Order is the aggregate for one purchase. HappyCode and CompleteCode are the
// two out-of-band verification codes; they are always distinct for an order.
type Order struct {
	ID            string
	UserID        string
	Items         []OrderItem
	TotalAmount   float64
	Address       DeliveryAddress
	Status        OrderStatus
	RequestStatus string
	PaymentID     *string
	PaymentType   PaymentType
	HappyCode     string
	CompleteCode  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderWithUser carries the owning user's contact fields resolved at read
// time for the back-office listing.
type OrderWithUser struct {
	Order
	UserName  string
	UserEmail string
}
