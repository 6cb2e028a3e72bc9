package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/huevos-organicos/backend/pkg/util"
)

func success(c *fiber.Ctx, status int, data any, message string) error {
	body := fiber.Map{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("ID inválido", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
