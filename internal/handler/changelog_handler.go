package handler

import (
	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/service/changelog"
)

type ChangeLogHandler struct {
	changeLogService changelog.Service
}

func NewChangeLogHandler(changeLogService changelog.Service) *ChangeLogHandler {
	return &ChangeLogHandler{changeLogService: changeLogService}
}

func (h *ChangeLogHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.changeLogService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ChangeLogHandler) ListByChassis(c *fiber.Ctx) error {
	chassis := c.Params("chassis")
	params := getPaginationParams(c)

	result, err := h.changeLogService.ListByChassis(c.Context(), chassis, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
