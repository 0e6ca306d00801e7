package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/middleware"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/internal/storage"
	"github.com/rentfolio/backend/pkg/logger"
	"github.com/rentfolio/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// optionalUUID parses an id that may legitimately be absent (folder_id,
// parent_folder_id). Empty means nil, anything else must parse.
func optionalUUID(raw string) (*uuid.UUID, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// scopedOwner pulls the owner resolved by the OwnerScope middleware.
func scopedOwner(c *fiber.Ctx) (services.Owner, error) {
	owner, ok := middleware.GetScopedOwner(c)
	if !ok {
		return services.Owner{}, utils.Error(c, fiber.StatusInternalServerError, "owner scope missing")
	}
	return owner, nil
}

// respondServiceError is the single mapping from the service error taxonomy
// to HTTP. Storage and unexpected errors log the cause and answer with a
// generic message only; raw error text never reaches the client.
func respondServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return utils.ValidationFailed(c, map[string]string{
			validationErr.Field: validationErr.Message,
		})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.Error(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		return utils.Error(c, fiber.StatusForbidden, "access denied")
	case errors.Is(err, services.ErrUnsupportedForView):
		return utils.Error(c, fiber.StatusBadRequest, "document type cannot be viewed inline")
	}

	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		logger.Error("storage_operation_failed", storageErr, map[string]interface{}{
			"op":   storageErr.Op,
			"path": storageErr.Path,
		})
		return utils.Error(c, fiber.StatusInternalServerError, "storage operation failed")
	}

	logger.Error("request_failed", err, map[string]interface{}{
		"path": c.Path(),
	})
	return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
}

// readMultipartFile buffers the uploaded file. Uploads are capped at 10 MB by
// validation, so buffering is fine.
func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	stream, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return io.ReadAll(stream)
}
