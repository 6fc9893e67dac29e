package handlers

import (
	"encoding/json"
	"testing"

	"wordnest/internal/models"
)

func TestApplyVocabularyUpdate(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantWord        string
		wantTranslation string
		wantExample     string
		wantLanguage    string
	}{
		{
			name:            "omitted fields keep prior values",
			body:            `{"word": "nuevo"}`,
			wantWord:        "nuevo",
			wantTranslation: "old translation",
			wantExample:     "old example",
			wantLanguage:    "Spanish",
		},
		{
			name:            "explicit empty example overwrites to empty",
			body:            `{"example": ""}`,
			wantWord:        "viejo",
			wantTranslation: "old translation",
			wantExample:     "",
			wantLanguage:    "Spanish",
		},
		{
			name:            "explicit empty language overwrites to empty",
			body:            `{"language": ""}`,
			wantWord:        "viejo",
			wantTranslation: "old translation",
			wantExample:     "old example",
			wantLanguage:    "",
		},
		{
			name:            "blank word keeps the old word",
			body:            `{"word": "", "example": "fresh example"}`,
			wantWord:        "viejo",
			wantTranslation: "old translation",
			wantExample:     "fresh example",
			wantLanguage:    "Spanish",
		},
		{
			name:            "whitespace-only translation keeps the old translation",
			body:            `{"translation": "   "}`,
			wantWord:        "viejo",
			wantTranslation: "old translation",
			wantExample:     "old example",
			wantLanguage:    "Spanish",
		},
		{
			name:            "empty body changes nothing",
			body:            `{}`,
			wantWord:        "viejo",
			wantTranslation: "old translation",
			wantExample:     "old example",
			wantLanguage:    "Spanish",
		},
		{
			name:            "all fields replaced",
			body:            `{"word": "nuevo", "translation": "new translation", "example": "new example", "language": "French"}`,
			wantWord:        "nuevo",
			wantTranslation: "new translation",
			wantExample:     "new example",
			wantLanguage:    "French",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &models.VocabularyEntry{
				Word:        "viejo",
				Translation: "old translation",
				Example:     "old example",
				Language:    "Spanish",
			}

			var req vocabularyUpdateRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("failed to unmarshal body: %v", err)
			}

			applyVocabularyUpdate(entry, req)

			if entry.Word != tt.wantWord {
				t.Errorf("word = %q, want %q", entry.Word, tt.wantWord)
			}
			if entry.Translation != tt.wantTranslation {
				t.Errorf("translation = %q, want %q", entry.Translation, tt.wantTranslation)
			}
			if entry.Example != tt.wantExample {
				t.Errorf("example = %q, want %q", entry.Example, tt.wantExample)
			}
			if entry.Language != tt.wantLanguage {
				t.Errorf("language = %q, want %q", entry.Language, tt.wantLanguage)
			}
		})
	}
}
