package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/domain"
	"github.com/trackassure/compliance-api/internal/domain/entity"
	"github.com/trackassure/compliance-api/internal/domain/repository"
)

// DeviceUseCase applies business rules for the device registry.
type DeviceUseCase struct {
	repo repository.DeviceRepository
}

// NewDeviceUseCase builds the use case with its persistence port.
func NewDeviceUseCase(repo repository.DeviceRepository) *DeviceUseCase {
	return &DeviceUseCase{repo: repo}
}

// Register creates a device for the manufacturer. Serial numbers are unique
// per manufacturer; a duplicate returns ErrDuplicate.
func (uc *DeviceUseCase) Register(ctx context.Context, manufacturerID string, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	existing, err := uc.repo.GetBySerial(ctx, manufacturerID, in.SerialNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	device := &entity.Device{
		ID:             uuid.New().String(),
		ManufacturerID: manufacturerID,
		SerialNumber:   in.SerialNumber,
		Model:          in.Model,
		IMEI:           in.IMEI,
		State:          entity.DeviceStateRegistered,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// GetByID fetches a device, scoped to the requesting manufacturer.
func (uc *DeviceUseCase) GetByID(ctx context.Context, manufacturerID, id string) (*dto.DeviceResponse, error) {
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil || device.ManufacturerID != manufacturerID {
		return nil, domain.ErrNotFound
	}
	return toDeviceResponse(device), nil
}

// Update mutates model and compliance state. Retired devices are immutable.
func (uc *DeviceUseCase) Update(ctx context.Context, manufacturerID, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil || device.ManufacturerID != manufacturerID {
		return nil, domain.ErrNotFound
	}
	if device.State == entity.DeviceStateRetired {
		return nil, domain.ErrConflict
	}
	if in.Model != "" {
		device.Model = in.Model
	}
	if in.State != "" {
		device.State = in.State
	}
	device.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// List returns the manufacturer's devices, paginated.
func (uc *DeviceUseCase) List(ctx context.Context, manufacturerID string, page dto.PageRequest) ([]*dto.DeviceResponse, error) {
	page.DefaultPage()
	devices, err := uc.repo.ListByManufacturer(ctx, manufacturerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, toDeviceResponse(d))
	}
	return out, nil
}

func toDeviceResponse(d *entity.Device) *dto.DeviceResponse {
	if d == nil {
		return nil
	}
	return &dto.DeviceResponse{
		ID:             d.ID,
		ManufacturerID: d.ManufacturerID,
		SerialNumber:   d.SerialNumber,
		Model:          d.Model,
		IMEI:           d.IMEI,
		State:          d.State,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
