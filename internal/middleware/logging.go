package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/backend/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"ip":          c.IP(),
			"request_id":  requestID,
		}

		ownerRef := logger.GetOwnerRefFromContext(c)
		if ownerRef != nil {
			if statusCode >= 400 {
				logger.ErrorWithOwner(*ownerRef, "http_request", err, details)
			} else {
				logger.InfoWithOwner(*ownerRef, "http_request", details)
			}
		} else {
			if statusCode >= 400 {
				logger.Error("http_request", err, details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

// SecurityLogger records cross-owner denials and probes separately from the
// request log so they can be alerted on.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode != fiber.StatusForbidden && statusCode != fiber.StatusNotFound {
			return err
		}

		details := map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"ip":     c.IP(),
		}

		ownerRef := logger.GetOwnerRefFromContext(c)
		if statusCode == fiber.StatusForbidden {
			details["reason"] = "cross_owner_access_denied"
			if ownerRef != nil {
				logger.WarnWithOwner(*ownerRef, "access_denied", details)
			} else {
				logger.Warn("access_denied", details)
			}
		}

		return err
	}
}
