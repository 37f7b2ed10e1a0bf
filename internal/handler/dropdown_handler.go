package handler

import (
	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/service/dropdown"
)

type DropdownHandler struct {
	dropdownService dropdown.Service
}

func NewDropdownHandler(dropdownService dropdown.Service) *DropdownHandler {
	return &DropdownHandler{dropdownService: dropdownService}
}

func (h *DropdownHandler) List(c *fiber.Ctx) error {
	options, err := h.dropdownService.List(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(options)
}
