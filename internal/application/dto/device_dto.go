package dto

import "time"

// CreateDeviceRequest input to register a device.
type CreateDeviceRequest struct {
	SerialNumber string `json:"serial_number" validate:"required,min=4,max=64"`
	Model        string `json:"model" validate:"required,min=1,max=120"`
	IMEI         string `json:"imei" validate:"omitempty,len=15"`
}

// UpdateDeviceRequest input to update a device's mutable fields.
type UpdateDeviceRequest struct {
	Model string `json:"model" validate:"omitempty,min=1,max=120"`
	State string `json:"state" validate:"omitempty,oneof=registered activated retired"`
}

// DeviceResponse device output.
type DeviceResponse struct {
	ID             string    `json:"id"`
	ManufacturerID string    `json:"manufacturer_id"`
	SerialNumber   string    `json:"serial_number"`
	Model          string    `json:"model"`
	IMEI           string    `json:"imei,omitempty"`
	State          string    `json:"state"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
