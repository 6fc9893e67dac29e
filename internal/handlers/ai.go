package handlers

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"wordnest/internal/ai"
	"wordnest/internal/validation"
)

// AIHandler handles AI-assisted word lookups.
type AIHandler struct {
	client *ai.Client // nil when GEMINI_API_KEY is not configured
}

// NewAIHandler creates a new AI handler. A nil client is allowed; the
// routes then respond with a configuration error.
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// WordDetails asks the AI service for translation, example, and
// language of a word. Upstream replies are never forwarded raw: parse
// failures are logged and answered with a generic message.
func (h *AIHandler) WordDetails(c fiber.Ctx) error {
	var body struct {
		Word           string `json:"word"`
		TargetLanguage string `json:"targetLanguage"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if !validation.HasText(body.Word) {
		return jsonError(c, fiber.StatusBadRequest, "Word is required")
	}

	if h.client == nil {
		return jsonError(c, fiber.StatusInternalServerError, "AI service not configured")
	}

	details, err := h.client.WordDetails(c.Context(), body.Word, body.TargetLanguage)
	if err != nil {
		slog.Error("word lookup failed", "word", body.Word, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate word details")
	}

	return c.JSON(details)
}
