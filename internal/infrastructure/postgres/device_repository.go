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

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo implements the DeviceRepository port over PostgreSQL.
type DeviceRepo struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository builds the persistence adapter for devices.
func NewDeviceRepository(pool *pgxpool.Pool) *DeviceRepo {
	return &DeviceRepo{pool: pool}
}

// Create persists a new device.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.Device) error {
	query := `
		INSERT INTO devices (id, manufacturer_id, serial_number, model, imei, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		d.ID, d.ManufacturerID, d.SerialNumber, d.Model, d.IMEI, d.State, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID fetches a device by id.
func (r *DeviceRepo) GetByID(ctx context.Context, id string) (*entity.Device, error) {
	query := `
		SELECT id, manufacturer_id, serial_number, model, imei, state, created_at, updated_at
		FROM devices WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get device by id")
}

// GetBySerial fetches a device by manufacturer and serial number.
func (r *DeviceRepo) GetBySerial(ctx context.Context, manufacturerID, serial string) (*entity.Device, error) {
	query := `
		SELECT id, manufacturer_id, serial_number, model, imei, state, created_at, updated_at
		FROM devices WHERE manufacturer_id = $1 AND serial_number = $2`
	return r.scanOne(r.pool.QueryRow(ctx, query, manufacturerID, serial), "get device by serial")
}

// Update persists a device's mutable fields.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.Device) error {
	query := `
		UPDATE devices SET model = $2, imei = $3, state = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, d.ID, d.Model, d.IMEI, d.State, d.UpdatedAt); err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// ListByManufacturer lists a manufacturer's devices with pagination.
func (r *DeviceRepo) ListByManufacturer(ctx context.Context, manufacturerID string, limit, offset int) ([]*entity.Device, error) {
	query := `
		SELECT id, manufacturer_id, serial_number, model, imei, state, created_at, updated_at
		FROM devices WHERE manufacturer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, manufacturerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := rows.Scan(&d.ID, &d.ManufacturerID, &d.SerialNumber, &d.Model, &d.IMEI, &d.State, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete removes a device by id.
func (r *DeviceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

func (r *DeviceRepo) scanOne(row pgx.Row, op string) (*entity.Device, error) {
	var d entity.Device
	err := row.Scan(&d.ID, &d.ManufacturerID, &d.SerialNumber, &d.Model, &d.IMEI, &d.State, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}
