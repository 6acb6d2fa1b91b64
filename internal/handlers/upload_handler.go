package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rahularya002/make-songs/internal/media"
	"github.com/rahularya002/make-songs/internal/middleware"
	"github.com/rahularya002/make-songs/internal/services"
	"github.com/rahularya002/make-songs/internal/utils"
)

// UploadHandler serves the per-kind upload endpoints and the upload listing.
type UploadHandler struct {
	svc    *services.UploadService
	logger *zap.SugaredLogger
}

func NewUploadHandler(svc *services.UploadService, logger *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{svc: svc, logger: logger}
}

// Upload handles POST /api/upload/:kind (multipart field "file"). Gates run in
// order; the first failure short-circuits the request.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	kind, err := media.ParseKind(c.Params("kind"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "Unknown upload kind")
	}

	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "No file provided")
	}

	if fileHeader.Size > kind.MaxSize() {
		return utils.JSONError(c, fiber.StatusBadRequest, "File size exceeds the 10MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorf("cannot open multipart file: %v", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error while processing upload")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Errorf("cannot read multipart file: %v", err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error while processing upload")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !kind.Allows(contentType) {
		return utils.JSONError(c, fiber.StatusBadRequest, kind.TypeErrorMessage())
	}

	identity := claims.Email
	if identity == "" {
		identity = "unknown"
	}

	result, err := h.svc.Upload(c.Context(), identity, kind, fileHeader.Filename, contentType, data)
	if err != nil {
		// Storage details stay in the server log.
		if !errors.Is(err, services.ErrStorageWrite) && !errors.Is(err, services.ErrURLResolution) {
			h.logger.Errorf("upload failed: %v", err)
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "Server error while processing upload")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"fileName": result.FileName,
		"fileSize": result.FileSize,
		"url":      result.URL,
	})
}

// List handles GET /api/uploads for the signed-in user's dashboard.
func (h *UploadHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	identity := claims.Email
	if identity == "" {
		identity = "unknown"
	}

	uploads, err := h.svc.ListUploads(c.Context(), identity)
	if err != nil {
		h.logger.Errorf("upload listing failed for %s: %v", identity, err)
		return utils.JSONError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"uploads": uploads})
}
