package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"wordnest/internal/models"
	"wordnest/internal/validation"
)

func createTestEntry(t *testing.T, db *DB, userID uuid.UUID, word, translation string) *models.VocabularyEntry {
	t.Helper()

	entry := &models.VocabularyEntry{
		UserID:      userID,
		Word:        word,
		Translation: translation,
	}
	if err := db.CreateVocabulary(context.Background(), entry); err != nil {
		t.Fatalf("CreateVocabulary() error = %v", err)
	}

	return entry
}

func TestCreateVocabulary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-create")

	entry := &models.VocabularyEntry{
		UserID:      user.ID,
		Word:        "serendipity",
		Translation: "casualidad afortunada",
		Example:     "Finding that book was pure serendipity.",
		Language:    "Spanish",
	}
	if err := db.CreateVocabulary(ctx, entry); err != nil {
		t.Fatalf("CreateVocabulary() error = %v", err)
	}

	if entry.ID == uuid.Nil {
		t.Error("CreateVocabulary() did not set ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreateVocabulary() did not set CreatedAt")
	}

	fetched, err := db.GetVocabularyByID(ctx, entry.ID, user.ID)
	if err != nil {
		t.Fatalf("GetVocabularyByID() error = %v", err)
	}
	if fetched.Word != "serendipity" || fetched.Language != "Spanish" {
		t.Errorf("GetVocabularyByID() = %+v, fields do not match", fetched)
	}
}

func TestListVocabulary_Pagination(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-pages")

	for i := 0; i < 8; i++ {
		createTestEntry(t, db, user.ID, fmt.Sprintf("word%02d", i), "translation")
	}

	params := validation.NormalizeListParams(1, 6, "", "", "")
	page1, pg, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() page 1 error = %v", err)
	}
	if len(page1) != 6 {
		t.Errorf("ListVocabulary() page 1 returned %d entries, want 6", len(page1))
	}
	if pg.TotalItems != 8 {
		t.Errorf("ListVocabulary() totalItems = %d, want 8", pg.TotalItems)
	}
	if pg.TotalPages != 2 {
		t.Errorf("ListVocabulary() totalPages = %d, want 2", pg.TotalPages)
	}
	if pg.CurrentPage != 1 {
		t.Errorf("ListVocabulary() currentPage = %d, want 1", pg.CurrentPage)
	}

	params = validation.NormalizeListParams(2, 6, "", "", "")
	page2, _, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() page 2 error = %v", err)
	}
	if len(page2) != 2 {
		t.Errorf("ListVocabulary() page 2 returned %d entries, want 2", len(page2))
	}

	// No entry appears on both pages
	seen := make(map[uuid.UUID]bool)
	for _, e := range page1 {
		seen[e.ID] = true
	}
	for _, e := range page2 {
		if seen[e.ID] {
			t.Errorf("entry %v appears on both pages", e.ID)
		}
	}

	// Past the last page
	params = validation.NormalizeListParams(3, 6, "", "", "")
	page3, _, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() page 3 error = %v", err)
	}
	if len(page3) != 0 {
		t.Errorf("ListVocabulary() page 3 returned %d entries, want 0", len(page3))
	}
}

func TestListVocabulary_Search(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-search")
	other := createTestUser(t, db, "vocab-search-other")

	createTestEntry(t, db, user.ID, "Butterfly", "mariposa")
	createTestEntry(t, db, user.ID, "house", "casa")
	createTestEntry(t, db, user.ID, "tree", "mariquita butter")
	createTestEntry(t, db, other.ID, "butterscotch", "caramelo")

	params := validation.NormalizeListParams(1, 6, "butter", "", "")
	entries, pg, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() error = %v", err)
	}

	// Case-insensitive match on word or translation, never crossing
	// owner boundaries.
	if pg.TotalItems != 2 {
		t.Errorf("ListVocabulary() totalItems = %d, want 2", pg.TotalItems)
	}
	for _, e := range entries {
		if e.UserID != user.ID {
			t.Errorf("ListVocabulary() leaked entry owned by %v", e.UserID)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gato", "gato"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListVocabulary_SearchWildcardsLiteral(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-wildcard")

	createTestEntry(t, db, user.ID, "100% sure", "seguro")
	createTestEntry(t, db, user.ID, "1000 times", "mil veces")
	createTestEntry(t, db, user.ID, "a_b", "underscore")
	createTestEntry(t, db, user.ID, "axb", "no underscore")

	// % and _ in the search term match literally, not as wildcards
	_, pg, err := db.ListVocabulary(ctx, user.ID, validation.NormalizeListParams(1, 6, "100%", "", ""))
	if err != nil {
		t.Fatalf("ListVocabulary() error = %v", err)
	}
	if pg.TotalItems != 1 {
		t.Errorf("search %q totalItems = %d, want 1", "100%", pg.TotalItems)
	}

	_, pg, err = db.ListVocabulary(ctx, user.ID, validation.NormalizeListParams(1, 6, "a_b", "", ""))
	if err != nil {
		t.Fatalf("ListVocabulary() error = %v", err)
	}
	if pg.TotalItems != 1 {
		t.Errorf("search %q totalItems = %d, want 1", "a_b", pg.TotalItems)
	}
}

func TestListVocabulary_SortByWord(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-sort")

	createTestEntry(t, db, user.ID, "cherry", "cereza")
	createTestEntry(t, db, user.ID, "apple", "manzana")
	createTestEntry(t, db, user.ID, "banana", "platano")

	params := validation.NormalizeListParams(1, 6, "", "word", "asc")
	entries, _, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListVocabulary() returned %d entries, want 3", len(entries))
	}

	want := []string{"apple", "banana", "cherry"}
	for i, e := range entries {
		if e.Word != want[i] {
			t.Errorf("ListVocabulary() entry %d = %q, want %q", i, e.Word, want[i])
		}
	}
}

func TestListVocabulary_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-empty")

	params := validation.NormalizeListParams(1, 6, "", "", "")
	entries, pg, err := db.ListVocabulary(ctx, user.ID, params)
	if err != nil {
		t.Fatalf("ListVocabulary() error = %v", err)
	}
	if entries == nil {
		t.Error("ListVocabulary() returned nil slice for empty notebook")
	}
	if len(entries) != 0 || pg.TotalItems != 0 || pg.TotalPages != 0 {
		t.Errorf("ListVocabulary() = %d entries, pagination %+v, want empty", len(entries), pg)
	}
}

func TestUpdateVocabulary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-update")
	other := createTestUser(t, db, "vocab-update-other")

	entry := createTestEntry(t, db, user.ID, "old", "viejo")

	entry.Word = "new"
	entry.Translation = "nuevo"
	entry.Example = "A new example."
	if err := db.UpdateVocabulary(ctx, entry); err != nil {
		t.Fatalf("UpdateVocabulary() error = %v", err)
	}

	fetched, err := db.GetVocabularyByID(ctx, entry.ID, user.ID)
	if err != nil {
		t.Fatalf("GetVocabularyByID() error = %v", err)
	}
	if fetched.Word != "new" || fetched.Translation != "nuevo" || fetched.Example != "A new example." {
		t.Errorf("UpdateVocabulary() did not persist fields: %+v", fetched)
	}

	// Another user cannot update the entry
	stolen := *entry
	stolen.UserID = other.ID
	if err := db.UpdateVocabulary(ctx, &stolen); err != ErrVocabularyNotFound {
		t.Errorf("UpdateVocabulary() by non-owner error = %v, want ErrVocabularyNotFound", err)
	}
}

func TestDeleteVocabulary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-delete")
	other := createTestUser(t, db, "vocab-delete-other")

	entry := createTestEntry(t, db, user.ID, "ephemeral", "efimero")

	// Another user cannot delete the entry
	if err := db.DeleteVocabulary(ctx, entry.ID, other.ID); err != ErrVocabularyNotFound {
		t.Errorf("DeleteVocabulary() by non-owner error = %v, want ErrVocabularyNotFound", err)
	}

	if err := db.DeleteVocabulary(ctx, entry.ID, user.ID); err != nil {
		t.Fatalf("DeleteVocabulary() error = %v", err)
	}

	_, err := db.GetVocabularyByID(ctx, entry.ID, user.ID)
	if err != ErrVocabularyNotFound {
		t.Errorf("GetVocabularyByID() after delete error = %v, want ErrVocabularyNotFound", err)
	}

	// Deleting again reports not found
	if err := db.DeleteVocabulary(ctx, entry.ID, user.ID); err != ErrVocabularyNotFound {
		t.Errorf("DeleteVocabulary() repeat error = %v, want ErrVocabularyNotFound", err)
	}
}

func TestExportVocabulary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "vocab-export")
	other := createTestUser(t, db, "vocab-export-other")

	for i := 0; i < 10; i++ {
		createTestEntry(t, db, user.ID, fmt.Sprintf("word%02d", i), "translation")
	}
	createTestEntry(t, db, other.ID, "foreign", "ajeno")

	entries, err := db.ExportVocabulary(ctx, user.ID)
	if err != nil {
		t.Fatalf("ExportVocabulary() error = %v", err)
	}

	// Everything the user owns, unpaginated, and nothing else
	if len(entries) != 10 {
		t.Errorf("ExportVocabulary() returned %d entries, want 10", len(entries))
	}
	for _, e := range entries {
		if e.UserID != user.ID {
			t.Errorf("ExportVocabulary() leaked entry owned by %v", e.UserID)
		}
	}
}
