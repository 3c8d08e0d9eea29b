package repository

import (
	"context"

	"github.com/trackassure/compliance-api/internal/domain/entity"
)

// DeviceRepository is the persistence port for Device.
type DeviceRepository interface {
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id string) (*entity.Device, error)
	GetBySerial(ctx context.Context, manufacturerID, serial string) (*entity.Device, error)
	Update(ctx context.Context, device *entity.Device) error
	ListByManufacturer(ctx context.Context, manufacturerID string, limit, offset int) ([]*entity.Device, error)
	Delete(ctx context.Context, id string) error
}
