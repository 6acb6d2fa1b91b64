package utils

import "github.com/gofiber/fiber/v2"

// JSONError writes the flat error shape the web client expects.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// JSONMessage writes a flat informational message.
func JSONMessage(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
