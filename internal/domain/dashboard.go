package domain

// DashboardStats aggregates the back-office counters. OrderStatusCounts
// always contains every known order status, zero-filled before observed
// counts are merged in, so the key set is stable for presentation.
type DashboardStats struct {
	Products          int64                 `json:"products"`
	Users             int64                 `json:"users"`
	Orders            int64                 `json:"orders"`
	OrderStatusCounts map[OrderStatus]int64 `json:"orderStatusCounts"`
}
