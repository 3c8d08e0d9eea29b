package repository

import (
	"context"

	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// PlanRepository is the persistence port for Plan.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Plan, error)
	Delete(ctx context.Context, id string) error
}
