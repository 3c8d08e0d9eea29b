package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/trackassure/compliance-api/internal/application/dto"
	"github.com/trackassure/compliance-api/internal/application/usecase"
	"github.com/trackassure/compliance-api/internal/domain"
)

// OperatorHandler exposes gateway staff account management.
type OperatorHandler struct {
	uc *usecase.OperatorUseCase
}

// NewOperatorHandler builds the operator handler.
func NewOperatorHandler(uc *usecase.OperatorUseCase) *OperatorHandler {
	return &OperatorHandler{uc: uc}
}

// Register godoc
// @Summary      Register a staff account
// @Tags         operators
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterOperatorRequest  true  "email, password, role"
// @Success      201   {object}  dto.OperatorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operators [post]
func (h *OperatorHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterOperatorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password and role are required"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password must be at least 8 characters"})
	}
	op, err := h.uc.Register(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email already registered"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown role"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(op)
}

// List godoc
// @Summary      List staff accounts
// @Tags         operators
// @Produce      json
// @Success      200  {array}  dto.OperatorResponse
// @Router       /api/operators [get]
func (h *OperatorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	ops, err := h.uc.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(ops)
}
