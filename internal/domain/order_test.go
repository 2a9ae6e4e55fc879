package domain

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from  OrderStatus
		to    OrderStatus
		valid bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusConfirmed, OrderStatusCompleted, true},
		{OrderStatusConfirmed, OrderStatusDeclined, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusConfirmed, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusDeclined, OrderStatusConfirmed, false},
	}

	for _, tt := range cases {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Fatalf("CanTransitionTo(%q -> %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := map[OrderStatus]bool{
		OrderStatusCompleted: true,
		OrderStatusCancelled: true,
		OrderStatusDeclined:  true,
	}
	for _, status := range AllOrderStatuses() {
		if got := status.Terminal(); got != terminal[status] {
			t.Fatalf("Terminal(%q)=%v, want %v", status, got, terminal[status])
		}
	}
}
