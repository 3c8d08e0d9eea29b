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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implements the PlanRepository port over PostgreSQL. Price maps
// to NUMERIC through the decimal codec registered on the pool.
type PlanRepo struct {
	pool *pgxpool.Pool
}

// NewPlanRepository builds the persistence adapter for plans.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

// Create persists a new plan.
func (r *PlanRepo) Create(ctx context.Context, p *entity.Plan) error {
	query := `
		INSERT INTO plans (id, name, description, price, duration_days, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.DurationDays, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID fetches a plan by id.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	query := `
		SELECT id, name, description, price, duration_days, active, created_at, updated_at
		FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by id: %w", err)
	}
	return &p, nil
}

// Update persists a plan's mutable fields.
func (r *PlanRepo) Update(ctx context.Context, p *entity.Plan) error {
	query := `
		UPDATE plans SET name = $2, description = $3, price = $4, duration_days = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.DurationDays, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// List returns plans with pagination, optionally only active ones.
func (r *PlanRepo) List(ctx context.Context, onlyActive bool, limit, offset int) ([]*entity.Plan, error) {
	query := `
		SELECT id, name, description, price, duration_days, active, created_at, updated_at
		FROM plans WHERE ($1 = false OR active) ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete removes a plan by id.
func (r *PlanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}
