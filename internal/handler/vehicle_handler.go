package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/middleware"
	"fleet-registry/internal/service/export"
	"fleet-registry/internal/service/vehicle"
)

type VehicleHandler struct {
	vehicleService vehicle.Service
	exportService  export.Service
}

func NewVehicleHandler(vehicleService vehicle.Service, exportService export.Service) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		exportService:  exportService,
	}
}

func (h *VehicleHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	search := strings.TrimSpace(c.Query("search"))

	result, err := h.vehicleService.List(c.Context(), search, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	chassis := c.Params("chassis")

	v, err := h.vehicleService.Get(c.Context(), chassis)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return middleware.NotFound("Vehicle not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	v, err := h.vehicleService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, vehicle.ErrDuplicate) {
			return middleware.Conflict(err.Error())
		}
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	chassis := c.Params("chassis")

	var input domain.UpdateVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	actor := middleware.GetCurrentUser(c)

	v, err := h.vehicleService.Update(c.Context(), chassis, input, actor)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return middleware.NotFound("Vehicle not found")
		}
		if errors.Is(err, vehicle.ErrDuplicate) {
			return middleware.Conflict(err.Error())
		}
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(v)
}

func (h *VehicleHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.exportService.ExportVehiclesCSV(c.Context())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="vehicle_master.csv"`)
	return c.Status(fiber.StatusOK).Send(data)
}
