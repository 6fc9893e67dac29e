package models

import (
	"time"

	"github.com/google/uuid"
)

// VocabularyEntry is a personal word/translation record. Entries are
// only ever visible to their owner.
type VocabularyEntry struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Word        string    `json:"word"`
	Translation string    `json:"translation"`
	Example     string    `json:"example"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// VocabularyPage is the response shape for the paginated vocabulary listing.
type VocabularyPage struct {
	Vocab      []VocabularyEntry `json:"vocab"`
	Pagination Pagination        `json:"pagination"`
}

// WordDetails is the structured reply from the AI word lookup.
type WordDetails struct {
	Translation string `json:"translation"`
	Example     string `json:"example"`
	Language    string `json:"language"`
}
