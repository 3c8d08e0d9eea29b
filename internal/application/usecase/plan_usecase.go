package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/domain"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/domain/repository"
)

// PlanUseCase applies business rules for subscription plans.
type PlanUseCase struct {
	repo repository.PlanRepository
}

// NewPlanUseCase builds the use case with its persistence port.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// Create adds a plan. Price must be non-negative.
func (uc *PlanUseCase) Create(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	plan := &entity.Plan{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// GetByID fetches a plan.
func (uc *PlanUseCase) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return toPlanResponse(plan), nil
}

// Update applies the provided fields to a plan.
func (uc *PlanUseCase) Update(ctx context.Context, id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		plan.Name = in.Name
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		plan.Price = *in.Price
	}
	if in.DurationDays > 0 {
		plan.DurationDays = in.DurationDays
	}
	if in.Active != nil {
		plan.Active = *in.Active
	}
	plan.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// List returns plans, optionally only active ones.
func (uc *PlanUseCase) List(ctx context.Context, onlyActive bool, page dto.PageRequest) ([]*dto.PlanResponse, error) {
	page.DefaultPage()
	plans, err := uc.repo.List(ctx, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return out, nil
}

func toPlanResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
