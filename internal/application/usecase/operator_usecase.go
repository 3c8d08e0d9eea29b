package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/domain"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// OperatorUseCase manages gateway staff accounts.
type OperatorUseCase struct {
	repo repository.OperatorRepository
}

// NewOperatorUseCase builds the use case with its persistence port.
func NewOperatorUseCase(repo repository.OperatorRepository) *OperatorUseCase {
	return &OperatorUseCase{repo: repo}
}

// Register creates a staff account: hashes the password with bcrypt and
// persists. Returns ErrEmailAlreadyExists when the email is taken.
func (uc *OperatorUseCase) Register(ctx context.Context, in dto.RegisterOperatorRequest) (*dto.OperatorResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	op := &entity.Operator{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, op); err != nil {
		return nil, err
	}
	return toOperatorResponse(op), nil
}

// List returns staff accounts, paginated.
func (uc *OperatorUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.OperatorResponse, error) {
	page.DefaultPage()
	ops, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OperatorResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, toOperatorResponse(op))
	}
	return out, nil
}

func toOperatorResponse(op *entity.Operator) *dto.OperatorResponse {
	if op == nil {
		return nil
	}
	return &dto.OperatorResponse{
		ID:        op.ID,
		Email:     op.Email,
		Name:      op.Name,
		Role:      op.Role,
		Active:    op.Active,
		CreatedAt: op.CreatedAt,
		UpdatedAt: op.UpdatedAt,
	}
}
