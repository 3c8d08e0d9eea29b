package entity

import "time"

// Device compliance states.
const (
	DeviceStateRegistered = "registered"
	DeviceStateActivated  = "activated"
	DeviceStateRetired    = "retired"
)

// Device is a tracked unit registered by a manufacturer and moved through
// the distribution chain.
type Device struct {
	ID             string
	ManufacturerID string
	SerialNumber   string
	Model          string
	IMEI           string
	State          string // registered, activated, retired
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
