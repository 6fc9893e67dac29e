package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"wordnest/internal/db"
)

// UserHandler exposes the minimal directory view used by the
// share-with-friend picker. Read-only: this service never mutates user
// records beyond the login upsert.
type UserHandler struct {
	db *db.DB
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB) *UserHandler {
	return &UserHandler{db: database}
}

// ListFriends returns display fields for every other known user.
func (h *UserHandler) ListFriends(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	users, err := h.db.ListUsers(c.Context(), user.ID)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(users)
}
