package handlers

import (
	"github.com/gofiber/fiber/v3"

	"wordnest/internal/models"
)

// jsonError returns a failure response with a single human-readable
// message. Internal details are logged by callers, never sent.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// jsonMessage returns a 200 response carrying only a confirmation message.
func jsonMessage(c fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"message": message,
	})
}

// currentUser returns the authenticated user placed in the request
// context by the auth middleware.
func currentUser(c fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}
