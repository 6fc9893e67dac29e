package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"wordnest/internal/models"
	"wordnest/internal/validation"
)

const vocabularyColumns = `id, user_id, word, translation, example, language, created_at, updated_at`

// escapeLike escapes ILIKE pattern characters so user-supplied search
// text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CreateVocabulary inserts a new personal vocabulary entry.
func (d *DB) CreateVocabulary(ctx context.Context, entry *models.VocabularyEntry) error {
	query := `
		INSERT INTO vocabulary_entries (user_id, word, translation, example, language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Word,
		entry.Translation,
		entry.Example,
		entry.Language,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

// ListVocabulary returns one page of the user's vocabulary plus page
// metadata. Search matches word or translation case-insensitively and
// never crosses owner boundaries. Ties in the sort key break by id
// ascending so repeated queries are stable.
func (d *DB) ListVocabulary(ctx context.Context, userID uuid.UUID, params validation.ListParams) ([]models.VocabularyEntry, models.Pagination, error) {
	var (
		total int
		args  []any
		where string
	)

	if params.Search == "" {
		where = `WHERE user_id = $1`
		args = []any{userID}
	} else {
		where = `WHERE user_id = $1 AND (word ILIKE $2 OR translation ILIKE $2)`
		args = []any{userID, "%" + escapeLike(params.Search) + "%"}
	}

	countQuery := `SELECT COUNT(*) FROM vocabulary_entries ` + where
	if err := d.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to count vocabulary: %w", err)
	}

	// SortBy and Order come from the validation whitelist, never from
	// raw client input.
	pageQuery := fmt.Sprintf(`
		SELECT %s FROM vocabulary_entries
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, vocabularyColumns, where, params.SortBy, params.Order, len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := d.Pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	defer rows.Close()

	entries := []models.VocabularyEntry{}
	for rows.Next() {
		var e models.VocabularyEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Word, &e.Translation, &e.Example, &e.Language, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("failed to scan vocabulary entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, err
	}

	pagination := models.Pagination{
		TotalItems:  total,
		TotalPages:  (total + params.Limit - 1) / params.Limit,
		CurrentPage: params.Page,
	}

	return entries, pagination, nil
}

// GetVocabularyByID retrieves an entry by ID, scoped to the owner.
func (d *DB) GetVocabularyByID(ctx context.Context, id, userID uuid.UUID) (*models.VocabularyEntry, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_entries WHERE id = $1 AND user_id = $2
	`

	var e models.VocabularyEntry
	err := d.Pool.QueryRow(ctx, query, id, userID).Scan(
		&e.ID, &e.UserID, &e.Word, &e.Translation, &e.Example, &e.Language, &e.CreatedAt, &e.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVocabularyNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// UpdateVocabulary writes the entry's editable fields, scoped to the owner.
func (d *DB) UpdateVocabulary(ctx context.Context, entry *models.VocabularyEntry) error {
	query := `
		UPDATE vocabulary_entries
		SET word = $1, translation = $2, example = $3, language = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		entry.Word,
		entry.Translation,
		entry.Example,
		entry.Language,
		entry.ID,
		entry.UserID,
	).Scan(&entry.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrVocabularyNotFound
	}
	return err
}

// DeleteVocabulary deletes an entry, scoped to the owner.
func (d *DB) DeleteVocabulary(ctx context.Context, id, userID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM vocabulary_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrVocabularyNotFound
	}
	return nil
}

// ExportVocabulary returns every entry owned by the user, newest first,
// with no pagination. Feeds the client-side CSV/PDF renderers.
func (d *DB) ExportVocabulary(ctx context.Context, userID uuid.UUID) ([]models.VocabularyEntry, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.VocabularyEntry{}
	for rows.Next() {
		var e models.VocabularyEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Word, &e.Translation, &e.Example, &e.Language, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountVocabulary returns the total number of vocabulary entries across
// all users. Used by the metrics collector.
func (d *DB) CountVocabulary(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vocabulary_entries`).Scan(&n)
	return n, err
}
