package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/application/usecase"
	"github.com/trackassure/compliance-api/internal/domain"
)

// DeviceHandler exposes the manufacturer device registry.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler builds the device handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// manufacturerID scopes device operations to the authenticated
// manufacturer.
func manufacturerID(c *fiber.Ctx) string {
	sess := SessionFromCtx(c)
	if sess.User == nil {
		return ""
	}
	return sess.User.ID
}

// Create godoc
// @Summary      Register a device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "serial_number, model, imei"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.SerialNumber == "" || in.Model == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "serial_number and model are required"})
	}
	device, err := h.uc.Register(c.Context(), manufacturerID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SERIAL_EXISTS", Message: "serial number already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(device)
}

// List godoc
// @Summary      List the manufacturer's devices
// @Tags         devices
// @Produce      json
// @Success      200  {array}  dto.DeviceResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	devices, err := h.uc.List(c.Context(), manufacturerID(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(devices)
}

// GetByID godoc
// @Summary      Get one device
// @Tags         devices
// @Produce      json
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	device, err := h.uc.GetByID(c.Context(), manufacturerID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "device not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(device)
}

// Update godoc
// @Summary      Update a device's model or compliance state
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateDeviceRequest  true  "model, state"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	device, err := h.uc.Update(c.Context(), manufacturerID(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "device not found"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETIRED", Message: "retired devices cannot be updated"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(device)
}
