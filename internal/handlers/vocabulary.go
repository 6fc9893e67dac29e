package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"wordnest/internal/db"
	"wordnest/internal/models"
	"wordnest/internal/validation"
)

// VocabularyHandler handles personal vocabulary notebook operations.
type VocabularyHandler struct {
	db *db.DB
}

// NewVocabularyHandler creates a new vocabulary handler.
func NewVocabularyHandler(database *db.DB) *VocabularyHandler {
	return &VocabularyHandler{db: database}
}

// List returns one page of the user's vocabulary with page metadata.
// Query parameters: page, limit, search, sort (createdAt|word), order
// (asc|desc). Unknown or out-of-range values fall back to defaults.
func (h *VocabularyHandler) List(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	params := validation.NormalizeListParams(
		page,
		limit,
		c.Query("search"),
		c.Query("sort"),
		c.Query("order"),
	)

	entries, pagination, err := h.db.ListVocabulary(c.Context(), user.ID, params)
	if err != nil {
		slog.Error("failed to list vocabulary", "user", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(models.VocabularyPage{
		Vocab:      entries,
		Pagination: pagination,
	})
}

// Create adds a new vocabulary entry.
func (h *VocabularyHandler) Create(c fiber.Ctx) error {
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

	entry := &models.VocabularyEntry{
		UserID:      user.ID,
		Word:        body.Word,
		Translation: body.Translation,
		Example:     body.Example,
		Language:    body.Language,
	}
	if err := h.db.CreateVocabulary(c.Context(), entry); err != nil {
		slog.Error("failed to create vocabulary entry", "user", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// vocabularyUpdateRequest carries the editable fields of an entry.
// Pointer fields distinguish "omitted" from "explicitly empty".
type vocabularyUpdateRequest struct {
	Word        *string `json:"word"`
	Translation *string `json:"translation"`
	Example     *string `json:"example"`
	Language    *string `json:"language"`
}

// applyVocabularyUpdate merges supplied fields into the entry. Omitted
// fields keep their prior value. An explicit empty example or language
// overwrites to empty; word and translation are only replaced by
// non-blank values.
func applyVocabularyUpdate(entry *models.VocabularyEntry, req vocabularyUpdateRequest) {
	if req.Word != nil && validation.HasText(*req.Word) {
		entry.Word = *req.Word
	}
	if req.Translation != nil && validation.HasText(*req.Translation) {
		entry.Translation = *req.Translation
	}
	if req.Example != nil {
		entry.Example = *req.Example
	}
	if req.Language != nil {
		entry.Language = *req.Language
	}
}

// Update modifies an entry's fields. Only supplied fields change; see
// applyVocabularyUpdate for the merge rules.
func (h *VocabularyHandler) Update(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Vocabulary item not found")
	}

	var body vocabularyUpdateRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	entry, err := h.db.GetVocabularyByID(c.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrVocabularyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Vocabulary item not found")
		}
		slog.Error("failed to fetch vocabulary entry", "id", id, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	applyVocabularyUpdate(entry, body)

	if err := h.db.UpdateVocabulary(c.Context(), entry); err != nil {
		if errors.Is(err, db.ErrVocabularyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Vocabulary item not found")
		}
		slog.Error("failed to update vocabulary entry", "id", id, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(entry)
}

// Delete removes an entry owned by the user.
func (h *VocabularyHandler) Delete(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "Vocabulary item not found")
	}

	if err := h.db.DeleteVocabulary(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, db.ErrVocabularyNotFound) {
			return jsonError(c, fiber.StatusNotFound, "Vocabulary item not found")
		}
		slog.Error("failed to delete vocabulary entry", "id", id, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return jsonMessage(c, "Vocabulary item deleted successfully")
}

// Export returns every entry owned by the user, newest first. The
// client-side CSV/PDF renderers consume this output verbatim.
func (h *VocabularyHandler) Export(c fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	entries, err := h.db.ExportVocabulary(c.Context(), user.ID)
	if err != nil {
		slog.Error("failed to export vocabulary", "user", user.ID, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(entries)
}
