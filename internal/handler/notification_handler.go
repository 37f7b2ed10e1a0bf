package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fleet-registry/internal/domain"
	"fleet-registry/internal/middleware"
	"fleet-registry/internal/service/notification"
	"fleet-registry/internal/service/preference"
)

type NotificationHandler struct {
	notifService notification.Service
	prefService  preference.Service
}

func NewNotificationHandler(notifService notification.Service, prefService preference.Service) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		prefService:  prefService,
	}
}

// Feed returns the group-wide unread feed, newest first.
func (h *NotificationHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.notifService.UnreadFeed(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(feed)
}

func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	var status *domain.NotificationStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.NotificationStatus(raw)
		if !s.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		status = &s
	}

	result, err := h.notifService.ListMine(c.Context(), userID, status, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	return h.setStatus(c, h.notifService.MarkRead)
}

func (h *NotificationHandler) MarkUnread(c *fiber.Ctx) error {
	return h.setStatus(c, h.notifService.MarkUnread)
}

func (h *NotificationHandler) Snooze(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}
	userID := middleware.GetCurrentUserID(c)

	// Days may arrive as a query param or JSON body; anything missing or
	// malformed falls back to the default snooze window.
	days := c.QueryInt("days")
	if days == 0 {
		var body struct {
			Days int `json:"days"`
		}
		_ = c.BodyParser(&body)
		days = body.Days
	}

	result, err := h.notifService.Snooze(c.Context(), notifID, userID, days)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetSettings(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	prefs, err := h.prefService.Effective(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *NotificationHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdatePreferencesInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	prefs, err := h.prefService.Set(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *NotificationHandler) setStatus(c *fiber.Ctx, op func(ctx context.Context, id, userID uuid.UUID) error) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}
	userID := middleware.GetCurrentUserID(c)

	if err := op(c.Context(), notifID, userID); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
