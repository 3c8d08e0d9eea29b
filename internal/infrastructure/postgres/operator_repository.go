package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trackassure/compliance-api/internal/domain"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/domain/repository"
)

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo implements the OperatorRepository port over PostgreSQL.
type OperatorRepo struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository builds the persistence adapter for staff accounts.
func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepo {
	return &OperatorRepo{pool: pool}
}

// Create persists a new staff account.
func (r *OperatorRepo) Create(ctx context.Context, op *entity.Operator) error {
	query := `
		INSERT INTO operators (id, email, password_hash, name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		op.ID, op.Email, op.PasswordHash, op.Name, op.Role, op.Active, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}

// GetByID fetches a staff account by id.
func (r *OperatorRepo) GetByID(ctx context.Context, id string) (*entity.Operator, error) {
	query := `
		SELECT id, email, password_hash, name, role, active, created_at, updated_at
		FROM operators WHERE id = $1`
	return scanOperator(r.pool.QueryRow(ctx, query, id), "get operator by id")
}

// GetByEmail fetches a staff account by email.
func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	query := `
		SELECT id, email, password_hash, name, role, active, created_at, updated_at
		FROM operators WHERE email = $1 LIMIT 1`
	return scanOperator(r.pool.QueryRow(ctx, query, email), "get operator by email")
}

// List returns staff accounts with pagination.
func (r *OperatorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Operator, error) {
	query := `
		SELECT id, email, password_hash, name, role, active, created_at, updated_at
		FROM operators ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list operators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operator
	for rows.Next() {
		var op entity.Operator
		if err := rows.Scan(&op.ID, &op.Email, &op.PasswordHash, &op.Name, &op.Role, &op.Active, &op.CreatedAt, &op.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan operator: %w", err)
		}
		list = append(list, &op)
	}
	return list, rows.Err()
}

// Delete removes a staff account by id.
func (r *OperatorRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM operators WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete operator: %w", err)
	}
	return nil
}

func scanOperator(row pgx.Row, opName string) (*entity.Operator, error) {
	var op entity.Operator
	err := row.Scan(&op.ID, &op.Email, &op.PasswordHash, &op.Name, &op.Role, &op.Active, &op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", opName, err)
	}
	return &op, nil
}
