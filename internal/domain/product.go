package domain

import "time"

// Product is a service offering listed on the storefront.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
