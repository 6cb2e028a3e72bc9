package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/service"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const clientFieldsRequired = "Nombre de empresa, tipo de negocio, contacto y email son requeridos"

// ClientsHandler exposes wholesale client management.
type ClientsHandler struct {
	clients   *service.ClientService
	validator *dto.Validator
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clients *service.ClientService, validator *dto.Validator) *ClientsHandler {
	return &ClientsHandler{clients: clients, validator: validator}
}

// List handles GET /api/clientes.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	clients, err := h.clients.List(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewClientListResponse(clients), "")
}

// Get handles GET /api/clientes/:id.
func (h *ClientsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewClientResponse(client), "")
}

// Create handles POST /api/clientes.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseClient(c)
	if err != nil {
		return err
	}
	client, err := h.clients.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, dto.NewClientResponse(client), "Cliente creado exitosamente")
}

// Update handles PUT /api/clientes/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	input, err := h.parseClient(c)
	if err != nil {
		return err
	}
	client, err := h.clients.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewClientResponse(client), "Cliente actualizado exitosamente")
}

// Delete handles DELETE /api/clientes/:id as a soft delete.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	return h.setStatus(c, domain.StatusInactive, "Cliente desactivado exitosamente")
}

// Reactivate handles PUT /api/clientes/:id/reactivar.
func (h *ClientsHandler) Reactivate(c *fiber.Ctx) error {
	return h.setStatus(c, domain.StatusActive, "Cliente reactivado exitosamente")
}

// Stats handles GET /api/clientes/stats.
func (h *ClientsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.clients.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewClientStatsResponse(stats), "")
}

func (h *ClientsHandler) setStatus(c *fiber.Ctx, status domain.Status, message string) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.clients.SetStatus(c.UserContext(), id, status); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, nil, message)
}

func (h *ClientsHandler) parseClient(c *fiber.Ctx) (service.ClientInput, error) {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ClientInput{}, apperrors.NewValidationError(clientFieldsRequired, nil)
	}
	if err := h.validator.Validate(&req, clientFieldsRequired); err != nil {
		return service.ClientInput{}, err
	}
	return service.ClientInput{
		CompanyName:  req.NombreEmpresa,
		BusinessType: req.TipoNegocio,
		ContactName:  req.ContactoNombre,
		Email:        req.Email,
		Phone:        req.Telefono,
		Address:      req.Direccion,
		TaxID:        req.RUC,
		ClientType:   req.TipoCliente,
		CreditLimit:  req.LimiteCredito,
		Status:       req.Estado,
	}, nil
}
