package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/middleware"
	"fleet-registry/internal/service/expiry"
)

type SweepHandler struct {
	expiryService expiry.Service
}

func NewSweepHandler(expiryService expiry.Service) *SweepHandler {
	return &SweepHandler{expiryService: expiryService}
}

// Run triggers an expiry sweep manually. The scheduler normally drives
// sweeps; this endpoint exists for operators. An optional ?date=YYYY-MM-DD
// overrides the reference day.
func (h *SweepHandler) Run(c *fiber.Ctx) error {
	today := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return middleware.BadRequest("Invalid date, expected YYYY-MM-DD")
		}
		today = parsed
	}

	report, err := h.expiryService.RunSweep(c.Context(), today)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(report)
}
