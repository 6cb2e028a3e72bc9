package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/service"
	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

const (
	productFieldsRequired       = "Nombre, precio y categoría son requeridos"
	productUpdateFieldsRequired = "Nombre, precio y categoría son requeridos para actualización completa"
)

// ProductsHandler exposes the catalogue.
type ProductsHandler struct {
	products  *service.ProductService
	validator *dto.Validator
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService, validator *dto.Validator) *ProductsHandler {
	return &ProductsHandler{products: products, validator: validator}
}

// ListActive handles GET /api/productos.
func (h *ProductsHandler) ListActive(c *fiber.Ctx) error {
	status := domain.StatusActive
	return h.list(c, &status)
}

// ListAll handles GET /api/productos/all.
func (h *ProductsHandler) ListAll(c *fiber.Ctx) error {
	return h.list(c, nil)
}

// ListInactive handles GET /api/productos/inactivos.
func (h *ProductsHandler) ListInactive(c *fiber.Ctx) error {
	status := domain.StatusInactive
	return h.list(c, &status)
}

func (h *ProductsHandler) list(c *fiber.Ctx, status *domain.Status) error {
	products, err := h.products.List(c.UserContext(), status)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewProductListResponse(products), "")
}

// Get handles GET /api/productos/:id; only active products are visible.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.products.GetActive(c.UserContext(), id)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewProductResponse(product), "")
}

// Create handles POST /api/productos.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseProduct(c, productFieldsRequired)
	if err != nil {
		return err
	}
	product, err := h.products.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, dto.NewProductResponse(product), "Producto creado exitosamente")
}

// Update handles PUT /api/productos/:id. A body holding only "estado"
// changes the status and leaves every other field untouched.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if statusOnly(c.Body()) {
		var req dto.ProductStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("Estado inválido", nil)
		}
		if err := h.validator.Validate(&req, "Estado inválido"); err != nil {
			return err
		}
		product, err := h.products.SetStatus(c.UserContext(), id, req.Estado)
		if err != nil {
			return err
		}
		return success(c, fiber.StatusOK, dto.NewProductResponse(product), "Producto actualizado exitosamente")
	}

	input, err := h.parseProduct(c, productUpdateFieldsRequired)
	if err != nil {
		return err
	}
	product, err := h.products.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewProductResponse(product), "Producto actualizado exitosamente")
}

// Delete handles DELETE /api/productos/:id as a soft delete.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if _, err := h.products.SetStatus(c.UserContext(), id, domain.StatusInactive); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, nil, "Producto eliminado exitosamente")
}

// Reactivate handles PATCH /api/productos/:id/reactivar.
func (h *ProductsHandler) Reactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.products.SetStatus(c.UserContext(), id, domain.StatusActive)
	if err != nil {
		return err
	}
	return success(c, fiber.StatusOK, dto.NewProductResponse(product), "Producto reactivado exitosamente")
}

func (h *ProductsHandler) parseProduct(c *fiber.Ctx, message string) (service.ProductInput, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProductInput{}, apperrors.NewValidationError(message, nil)
	}
	if err := h.validator.Validate(&req, message); err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{
		Name:        req.Nombre,
		Description: req.Descripcion,
		Price:       req.Precio,
		Category:    req.Categoria,
		Image:       req.Imagen,
		Stock:       req.Stock,
		Status:      req.Estado,
		Features:    req.Caracteristicas,
	}, nil
}

func statusOnly(body []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	_, ok := fields["estado"]
	return ok && len(fields) == 1
}
