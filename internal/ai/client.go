// Package ai wraps the Gemini API for single-shot word lookups.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"wordnest/internal/models"
)

// ErrUnparseableReply is returned when the model does not produce the
// requested JSON shape. The raw reply is logged, never surfaced.
var ErrUnparseableReply = errors.New("failed to parse AI response")

// Client generates word details via the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// New creates an AI client. The API key is required; the model
// defaults to gemini-3-flash-preview.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-3-flash-preview"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// WordDetails asks the model for translation, example sentence, and
// detected language of a word. targetLanguage is an optional hint.
func (c *Client) WordDetails(ctx context.Context, word, targetLanguage string) (*models.WordDetails, error) {
	prompt := buildPrompt(word, targetLanguage)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("Gemini request failed: %w", err)
	}

	raw := strings.TrimSpace(resp.Text())

	var details models.WordDetails
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &details); err != nil {
		slog.Error("unparseable AI reply", "word", word, "reply", raw)
		return nil, ErrUnparseableReply
	}

	return &details, nil
}

func buildPrompt(word, targetLanguage string) string {
	var b strings.Builder
	b.WriteString(`You are a language learning assistant. Given the following word or phrase, provide:
1. The English translation (if the word is not in English) OR the most common meaning (if it's an English word)
2. An example sentence using this word in its original language
3. Detect what language the word is in

Word: "` + word + `"
`)
	if targetLanguage != "" {
		b.WriteString("The user expects this word to be in: " + targetLanguage + "\n")
	}
	b.WriteString(`
Respond ONLY in this exact JSON format, no markdown, no code blocks:
{"translation": "the translation", "example": "example sentence using the word", "language": "detected language name"}

Rules:
- If the word appears to be English, provide a definition as the translation and still provide an example
- The example should be a practical, everyday sentence
- The language should be the full name (e.g., "Spanish", "French", "Japanese", "English")
- Keep responses concise and helpful for language learners`)
	return b.String()
}

// stripCodeFences removes markdown code fences that models emit around
// JSON despite instructions not to.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
