package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"wordnest/internal/db"
	"wordnest/internal/models"
	"wordnest/internal/validation"
)

// SharedListHandler handles collaborative word list operations.
type SharedListHandler struct {
	db *db.DB
}

// NewSharedListHandler creates a new shared list handler.
func NewSharedListHandler(database *db.DB) *SharedListHandler {
	return &SharedListHandler{db: database}
}

// Create creates a new shared list owned by the current user.
func (h *SharedListHandler) Create(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !validation.HasText(body.Name) {
		return jsonError(c, fiber.StatusBadRequest, "List name is required")
	}

	list := &models.SharedList{
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     user.ID,
		Owner:       user.Ref(),
	}
	if err := h.db.CreateSharedList(c.Context(), list); err != nil {
		slog.Error("failed to create shared list", "owner", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(fiber.StatusCreated).JSON(list)
}

// MyLists returns the lists the current user owns, most recently
// updated first.
func (h *SharedListHandler) MyLists(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	lists, err := h.db.GetSharedListsByOwner(c.Context(), user.ID)
	if err != nil {
		slog.Error("failed to fetch owned lists", "user", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(lists)
}

// SharedWithMe returns the lists where the current user is a
// collaborator. Disjoint from MyLists.
func (h *SharedListHandler) SharedWithMe(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	lists, err := h.db.GetSharedListsSharedWith(c.Context(), user.ID)
	if err != nil {
		slog.Error("failed to fetch shared lists", "user", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(lists)
}

// Get returns a single list with display fields resolved. Only the
// owner and collaborators may view it.
func (h *SharedListHandler) Get(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	list, status, msg := h.loadList(c, user.ID)
	if list == nil {
		return jsonError(c, status, msg)
	}

	return c.JSON(list)
}

// AddCollaborator shares the list with another user. Owner only; the
// target must exist and not already be a member.
func (h *SharedListHandler) AddCollaborator(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}

	var body struct {
		FriendID string `json:"friendId"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	friendID, err := uuid.Parse(body.FriendID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}

	list, err := h.db.GetSharedListByID(c.Context(), listID)
	if err != nil {
		if errors.Is(err, db.ErrListNotFound) {
			return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
		}
		slog.Error("failed to fetch list", "list", listID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	// Sharing is a management action; non-owners see the same reply as
	// a missing list.
	if !list.CanManage(user.ID) {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}

	if _, err := h.db.GetUserByID(c.Context(), friendID); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "User not found")
		}
		slog.Error("failed to fetch user", "user", friendID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := h.db.AddCollaborator(c.Context(), listID, friendID); err != nil {
		switch {
		case errors.Is(err, db.ErrAlreadyCollaborator):
			return jsonError(c, fiber.StatusBadRequest, "User is already a collaborator")
		case errors.Is(err, db.ErrOwnerAsCollaborator):
			return jsonError(c, fiber.StatusBadRequest, "The owner cannot be added as a collaborator")
		case errors.Is(err, db.ErrListNotFound):
			return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
		}
		slog.Error("failed to add collaborator", "list", listID, "user", friendID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	updated, err := h.db.GetSharedListByID(c.Context(), listID)
	if err != nil {
		slog.Error("failed to reload list", "list", listID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(updated)
}

// RemoveCollaborator revokes a user's membership. Owner only.
// Removing a non-member succeeds silently, mirroring set semantics.
func (h *SharedListHandler) RemoveCollaborator(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}
	friendID, err := uuid.Parse(c.Params("friendId"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}

	list, err := h.db.GetSharedListByID(c.Context(), listID)
	if err != nil {
		if errors.Is(err, db.ErrListNotFound) {
			return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
		}
		slog.Error("failed to fetch list", "list", listID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !list.CanManage(user.ID) {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}

	if err := h.db.RemoveCollaborator(c.Context(), listID, friendID); err != nil {
		slog.Error("failed to remove collaborator", "list", listID, "user", friendID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return jsonMessage(c, "Collaborator removed successfully")
}

// AddWord appends a word entry to the list as the current user. Owner
// and current collaborators only. Body validation runs before the
// access check: a malformed body gets 400 even when the caller cannot
// view the list.
func (h *SharedListHandler) AddWord(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
		Example     string `json:"example"`
		Language    string `json:"language"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !validation.HasText(body.Word) || !validation.HasText(body.Translation) {
		return jsonError(c, fiber.StatusBadRequest, "Word and translation are required")
	}

	list, status, msg := h.loadList(c, user.ID)
	if list == nil {
		return jsonError(c, status, msg)
	}

	word := &models.SharedWord{
		ListID:        list.ID,
		Word:          body.Word,
		Translation:   body.Translation,
		Example:       body.Example,
		Language:      body.Language,
		ContributorID: user.ID,
		Contributor:   user.Ref(),
	}
	if err := h.db.AddSharedWord(c.Context(), word); err != nil {
		slog.Error("failed to add word", "list", list.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(fiber.StatusCreated).JSON(word)
}

// RemoveWord deletes a word entry. Allowed for the list owner or the
// entry's original contributor; other collaborators are denied.
func (h *SharedListHandler) RemoveWord(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	wordID, err := uuid.Parse(c.Params("wordId"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Word not found")
	}

	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "List not found")
	}

	list, err := h.db.GetSharedListByID(c.Context(), listID)
	if err != nil {
		if errors.Is(err, db.ErrListNotFound) {
			return jsonError(c, fiber.StatusNotFound, "List not found")
		}
		slog.Error("failed to fetch list", "list", listID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	word := list.FindWord(wordID)
	if word == nil {
		return jsonError(c, fiber.StatusNotFound, "Word not found")
	}
	if !list.CanRemoveWord(user.ID, word) {
		return jsonError(c, fiber.StatusForbidden, "Access denied")
	}

	if err := h.db.DeleteSharedWord(c.Context(), listID, wordID); err != nil {
		if errors.Is(err, db.ErrWordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Word not found")
		}
		slog.Error("failed to remove word", "list", listID, "word", wordID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return jsonMessage(c, "Word removed successfully")
}

// Delete removes an entire list and all its words. Owner only; a
// non-owner attempt is indistinguishable from a missing list.
func (h *SharedListHandler) Delete(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
	}

	if err := h.db.DeleteSharedList(c.Context(), listID, user.ID); err != nil {
		if errors.Is(err, db.ErrListNotFound) {
			return jsonError(c, fiber.StatusNotFound, "List not found or access denied")
		}
		slog.Error("failed to delete list", "list", listID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return jsonMessage(c, "List deleted successfully")
}

// loadList fetches the list from the :id route parameter and checks
// view access for the user. Returns (nil, status, message) on failure.
func (h *SharedListHandler) loadList(c fiber.Ctx, userID uuid.UUID) (*models.SharedList, int, string) {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusNotFound, "List not found"
	}

	list, err := h.db.GetSharedListByID(c.Context(), listID)
	if err != nil {
		if errors.Is(err, db.ErrListNotFound) {
			return nil, fiber.StatusNotFound, "List not found"
		}
		slog.Error("failed to fetch list", "list", listID, "error", err)
		return nil, fiber.StatusInternalServerError, "Internal Server Error"
	}

	if !list.CanAccess(userID) {
		return nil, fiber.StatusForbidden, "Access denied"
	}

	return list, 0, ""
}
