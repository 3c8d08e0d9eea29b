package repository

import (
	"context"

	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// OperatorRepository is the persistence port for gateway staff accounts.
type OperatorRepository interface {
	Create(ctx context.Context, op *entity.Operator) error
	GetByID(ctx context.Context, id string) (*entity.Operator, error)
	GetByEmail(ctx context.Context, email string) (*entity.Operator, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Operator, error)
	Delete(ctx context.Context, id string) error
}
