package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/pkg/utils"
)

type PhotosHandler struct {
	Photos *services.PhotoService
}

func NewPhotosHandler(photos *services.PhotoService) *PhotosHandler {
	return &PhotosHandler{Photos: photos}
}

func (h *PhotosHandler) List(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	photos, err := h.Photos.List(c.Context(), owner)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, photos)
}

func (h *PhotosHandler) Upload(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed reading uploaded file")
	}

	photo, err := h.Photos.Upload(c.Context(), owner, data, fileHeader.Filename)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, photo)
}

// View serves the image inline. The thumbnail route is the same handler; no
// derivative is generated.
func (h *PhotosHandler) View(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	photoID, err := parseUUID(c.Params("photoId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid photo id")
	}

	content, err := h.Photos.Open(c.Context(), owner, photoID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, content.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", content.Name))
	return c.Send(content.Data)
}

// Delete removes the photo permanently, record and file both.
func (h *PhotosHandler) Delete(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	photoID, err := parseUUID(c.Params("photoId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid photo id")
	}

	if err := h.Photos.Delete(c.Context(), owner, photoID); err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "photo deleted"})
}
