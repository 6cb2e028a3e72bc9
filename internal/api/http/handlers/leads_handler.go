package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/service"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const leadFieldsRequired = "Nombre, email y teléfono son requeridos"

// LeadsHandler exposes the contact form and its inbox.
type LeadsHandler struct {
	leads     *service.LeadService
	validator *dto.Validator
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leads *service.LeadService, validator *dto.Validator) *LeadsHandler {
	return &LeadsHandler{leads: leads, validator: validator}
}

// Create handles POST /api/interesados.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	var req dto.LeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(leadFieldsRequired, nil)
	}
	if err := h.validator.Validate(&req, leadFieldsRequired); err != nil {
		return err
	}
	lead, err := h.leads.Create(c.UserContext(), service.LeadInput{
		Name:    req.Nombre,
		Email:   req.Email,
		Phone:   req.Telefono,
		Subject: req.Asunto,
		Message: req.Mensaje,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, dto.NewLeadResponse(lead), "Interesado creado exitosamente")
}

// List handles GET /api/interesados.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	leads, err := h.leads.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewLeadListResponse(leads), "")
}

// Get handles GET /api/interesados/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	lead, err := h.leads.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewLeadResponse(lead), "")
}
