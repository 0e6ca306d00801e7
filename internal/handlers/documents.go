package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/pkg/utils"
)

type DocumentsHandler struct {
	Documents *services.DocumentService
}

func NewDocumentsHandler(documents *services.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{Documents: documents}
}

// List returns the live documents in folder_id (root when omitted), newest
// first.
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	folderID, ok := optionalUUID(c.Query("folder_id"))
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder_id")
	}

	documents, err := h.Documents.List(c.Context(), owner, folderID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, documents)
}

// Upload accepts a multipart `file` plus an optional `folder_id` form field.
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	folderID, ok := optionalUUID(c.FormValue("folder_id"))
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder_id")
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed reading uploaded file")
	}

	document, err := h.Documents.Upload(c.Context(), owner, services.DocumentUpload{
		Data:     data,
		Name:     fileHeader.Filename,
		FolderID: folderID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, document)
}

// View streams the document inline; only pdf and image types qualify.
func (h *DocumentsHandler) View(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	documentID, err := parseUUID(c.Params("docId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid document id")
	}

	content, err := h.Documents.OpenForView(c.Context(), owner, documentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, content.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", content.Name))
	return c.Send(content.Data)
}

// Download streams the document as an attachment, any type.
func (h *DocumentsHandler) Download(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	documentID, err := parseUUID(c.Params("docId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid document id")
	}

	content, err := h.Documents.OpenForDownload(c.Context(), owner, documentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, content.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", content.Name))
	return c.Send(content.Data)
}

func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	documentID, err := parseUUID(c.Params("docId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid document id")
	}

	if err := h.Documents.Delete(c.Context(), owner, documentID); err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "document deleted"})
}
