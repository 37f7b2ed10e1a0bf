package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fleet-registry/internal/middleware"
	"fleet-registry/internal/service/document"
)

type DocumentHandler struct {
	documentService document.Service
}

func NewDocumentHandler(documentService document.Service) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload stores a document image for one vehicle. Multipart form with a
// "file" part and a "type" field (insurance, mulkia, permit, truck_photo).
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	chassis := c.Params("chassis")
	docType := strings.TrimSpace(c.FormValue("type"))
	if docType == "" {
		return middleware.BadRequest("type is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("failed to read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	upload, err := h.documentService.Upload(c.Context(), chassis, docType, fileHeader.Filename, fileHeader.Size, mimeType, file)
	if err != nil {
		if errors.Is(err, document.ErrUnknownDocumentType) {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, document.ErrVehicleNotFound) {
			return middleware.NotFound(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(upload)
}
