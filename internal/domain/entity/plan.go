package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a subscription plan offered to fleet owners, managed by the
// super-admin.
type Plan struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	DurationDays int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
