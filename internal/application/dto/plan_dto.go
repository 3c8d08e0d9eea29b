package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest input to create a subscription plan.
type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=120"`
	Description  string          `json:"description" validate:"max=500"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	DurationDays int             `json:"duration_days" validate:"required,min=1"`
}

// UpdatePlanRequest input to update a plan.
type UpdatePlanRequest struct {
	Name         string           `json:"name" validate:"omitempty,min=1,max=120"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays int              `json:"duration_days" validate:"omitempty,min=1"`
	Active       *bool            `json:"active"`
}

// PlanResponse plan output.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
