package utils

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with the same envelope: {success, data} on 2xx,
// {success, message} otherwise. Validation failures additionally carry a
// field-scoped errors map.

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func ValidationFailed(c *fiber.Ctx, fieldErrors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "validation failed",
		"errors":  fieldErrors,
	})
}
