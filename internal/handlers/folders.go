package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/pkg/utils"
)

type FoldersHandler struct {
	Folders *services.FolderService
}

func NewFoldersHandler(folders *services.FolderService) *FoldersHandler {
	return &FoldersHandler{Folders: folders}
}

// List returns the folders directly under parent_id (root when omitted) with
// their child counts.
func (h *FoldersHandler) List(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	parentID, ok := optionalUUID(c.Query("parent_id"))
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "invalid parent_id")
	}

	folders, err := h.Folders.List(c.Context(), owner, parentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, folders)
}

type createFolderRequest struct {
	Name           string  `json:"name"`
	ParentFolderID *string `json:"parent_folder_id"`
}

func (h *FoldersHandler) Create(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	var raw string
	if req.ParentFolderID != nil {
		raw = *req.ParentFolderID
	}
	parentID, ok := optionalUUID(raw)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "invalid parent_folder_id")
	}

	folder, err := h.Folders.Create(c.Context(), owner, strings.TrimSpace(req.Name), parentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusCreated, folder)
}

// Delete soft-deletes the folder together with its whole subtree and every
// document inside it.
func (h *FoldersHandler) Delete(c *fiber.Ctx) error {
	owner, err := scopedOwner(c)
	if err != nil {
		return err
	}

	folderID, err := parseUUID(c.Params("folderId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid folder id")
	}

	if err := h.Folders.Delete(c.Context(), owner, folderID); err != nil {
		return respondServiceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "folder deleted"})
}
