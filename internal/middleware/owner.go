package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/rentfolio/backend/internal/services"
	"github.com/rentfolio/backend/pkg/logger"
	"github.com/rentfolio/backend/pkg/utils"
)

const scopedOwnerKey = "scopedOwner"

// OwnerScope resolves the {ownerKind}/{ownerID} pair every storage route is
// namespaced under and stores the authoritative owner on the request. An
// unknown kind or a missing owner is a 404 before any handler runs.
type OwnerScope struct {
	Resolver *services.OwnerResolver
}

func NewOwnerScope(resolver *services.OwnerResolver) *OwnerScope {
	return &OwnerScope{Resolver: resolver}
}

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3001,http://127.0.0.1:3001",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func (o *OwnerScope) Resolve(c *fiber.Ctx) error {
	slug := strings.ToLower(c.Params("ownerKind"))
	if !services.IsOwnerKindSlug(slug) {
		return utils.Error(c, fiber.StatusNotFound, "unknown owner kind")
	}

	ownerID, err := uuid.Parse(c.Params("ownerID"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid owner id")
	}

	owner, err := o.Resolver.Resolve(c.Context(), slug, ownerID)
	if err != nil {
		if err == services.ErrNotFound {
			return utils.Error(c, fiber.StatusNotFound, "owner not found")
		}
		logger.Error("owner_resolve_failed", err, map[string]interface{}{
			"owner_kind": slug,
			"owner_id":   ownerID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed resolving owner")
	}

	c.Locals(scopedOwnerKey, owner)
	c.Locals("ownerRef", owner.Ref())
	return c.Next()
}

// GetScopedOwner returns the owner resolved for this request. The zero-value
// second return only happens on routes mounted without the Resolve middleware.
func GetScopedOwner(c *fiber.Ctx) (services.Owner, bool) {
	value := c.Locals(scopedOwnerKey)
	if value == nil {
		return services.Owner{}, false
	}
	owner, ok := value.(services.Owner)
	return owner, ok
}
