package handler

import (
	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Vehicle      *VehicleHandler
	Dropdown     *DropdownHandler
	ChangeLog    *ChangeLogHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
	Sweep        *SweepHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Vehicle:      NewVehicleHandler(services.Vehicle, services.Export),
		Dropdown:     NewDropdownHandler(services.Dropdown),
		ChangeLog:    NewChangeLogHandler(services.ChangeLog),
		Document:     NewDocumentHandler(services.Document),
		Notification: NewNotificationHandler(services.Notification, services.Preference),
		Sweep:        NewSweepHandler(services.Expiry),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if page := c.QueryInt("page"); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size"); pageSize > 0 && pageSize <= 100 {
		params.PageSize = pageSize
	}
	return params
}
