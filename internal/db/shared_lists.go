package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"wordnest/internal/models"
)

// CreateSharedList inserts a new list owned by list.OwnerID with empty
// collaborators and words.
func (d *DB) CreateSharedList(ctx context.Context, list *models.SharedList) error {
	query := `
		INSERT INTO shared_lists (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		list.Name,
		list.Description,
		list.OwnerID,
	).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create shared list: %w", err)
	}

	list.Collaborators = []models.UserRef{}
	list.Words = []models.SharedWord{}
	return nil
}

// GetSharedListsByOwner returns all lists the user owns, most recently
// updated first, with collaborators and words resolved.
func (d *DB) GetSharedListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.SharedList, error) {
	return d.getSharedLists(ctx, `WHERE l.owner_id = $1`, ownerID)
}

// GetSharedListsSharedWith returns all lists where the user is a
// collaborator, most recently updated first. Disjoint from the owned
// view: the owner is never part of the collaborator set.
func (d *DB) GetSharedListsSharedWith(ctx context.Context, userID uuid.UUID) ([]models.SharedList, error) {
	return d.getSharedLists(ctx, `
		WHERE l.id IN (SELECT list_id FROM shared_list_collaborators WHERE user_id = $1)
	`, userID)
}

func (d *DB) getSharedLists(ctx context.Context, where string, arg any) ([]models.SharedList, error) {
	query := `
		SELECT l.id, l.name, l.description, l.owner_id, l.created_at, l.updated_at,
		       u.name, u.picture
		FROM shared_lists l
		JOIN users u ON u.id = l.owner_id
		` + where + `
		ORDER BY l.updated_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query shared lists: %w", err)
	}
	defer rows.Close()

	lists := []models.SharedList{}
	var ids []uuid.UUID
	for rows.Next() {
		var l models.SharedList
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Description, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
			&l.Owner.Name, &l.Owner.Picture,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shared list: %w", err)
		}
		l.Owner.ID = l.OwnerID
		l.Collaborators = []models.UserRef{}
		l.Words = []models.SharedWord{}
		lists = append(lists, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return lists, nil
	}

	collaborators, err := d.loadCollaborators(ctx, ids)
	if err != nil {
		return nil, err
	}
	words, err := d.loadWords(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if c, ok := collaborators[lists[i].ID]; ok {
			lists[i].Collaborators = c
		}
		if w, ok := words[lists[i].ID]; ok {
			lists[i].Words = w
		}
	}

	return lists, nil
}

// GetSharedListByID retrieves a single list with owner, collaborator,
// and contributor display fields resolved. Access control is the
// caller's responsibility.
func (d *DB) GetSharedListByID(ctx context.Context, id uuid.UUID) (*models.SharedList, error) {
	query := `
		SELECT l.id, l.name, l.description, l.owner_id, l.created_at, l.updated_at,
		       u.name, u.picture
		FROM shared_lists l
		JOIN users u ON u.id = l.owner_id
		WHERE l.id = $1
	`

	var l models.SharedList
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Description, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt,
		&l.Owner.Name, &l.Owner.Picture,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, err
	}
	l.Owner.ID = l.OwnerID

	collaborators, err := d.loadCollaborators(ctx, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}
	words, err := d.loadWords(ctx, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}
	l.Collaborators = collaborators[l.ID]
	if l.Collaborators == nil {
		l.Collaborators = []models.UserRef{}
	}
	l.Words = words[l.ID]
	if l.Words == nil {
		l.Words = []models.SharedWord{}
	}

	return &l, nil
}

func (d *DB) loadCollaborators(ctx context.Context, listIDs []uuid.UUID) (map[uuid.UUID][]models.UserRef, error) {
	query := `
		SELECT c.list_id, u.id, u.name, u.picture
		FROM shared_list_collaborators c
		JOIN users u ON u.id = c.user_id
		WHERE c.list_id = ANY($1)
		ORDER BY c.added_at ASC
	`

	rows, err := d.Pool.Query(ctx, query, listIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]models.UserRef)
	for rows.Next() {
		var listID uuid.UUID
		var u models.UserRef
		if err := rows.Scan(&listID, &u.ID, &u.Name, &u.Picture); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		result[listID] = append(result[listID], u)
	}

	return result, rows.Err()
}

func (d *DB) loadWords(ctx context.Context, listIDs []uuid.UUID) (map[uuid.UUID][]models.SharedWord, error) {
	// Position preserves insertion order regardless of clock skew
	// between concurrent appends.
	query := `
		SELECT w.list_id, w.id, w.word, w.translation, w.example, w.language,
		       w.contributor_id, w.created_at, u.name, u.picture
		FROM shared_words w
		JOIN users u ON u.id = w.contributor_id
		WHERE w.list_id = ANY($1)
		ORDER BY w.position ASC
	`

	rows, err := d.Pool.Query(ctx, query, listIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared words: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]models.SharedWord)
	for rows.Next() {
		var w models.SharedWord
		if err := rows.Scan(
			&w.ListID, &w.ID, &w.Word, &w.Translation, &w.Example, &w.Language,
			&w.ContributorID, &w.CreatedAt, &w.Contributor.Name, &w.Contributor.Picture,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shared word: %w", err)
		}
		w.Contributor.ID = w.ContributorID
		result[w.ListID] = append(result[w.ListID], w)
	}

	return result, rows.Err()
}

// AddCollaborator adds a user to the list's collaborator set. The
// owner can never be added, and a duplicate add is rejected rather
// than silently ignored. Bumps the list's updated_at in the same
// transaction.
func (d *DB) AddCollaborator(ctx context.Context, listID, userID uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT owner_id FROM shared_lists WHERE id = $1`, listID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrListNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check list: %w", err)
	}
	if ownerID == userID {
		return ErrOwnerAsCollaborator
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO shared_list_collaborators (list_id, user_id)
		VALUES ($1, $2)
	`, listID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyCollaborator
		}
		return fmt.Errorf("failed to add collaborator: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE shared_lists SET updated_at = NOW() WHERE id = $1`, listID)
	if err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}

	return tx.Commit(ctx)
}

// RemoveCollaborator removes a user from the collaborator set.
// Removing a non-member is a no-op success, mirroring set semantics.
func (d *DB) RemoveCollaborator(ctx context.Context, listID, userID uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM shared_list_collaborators WHERE list_id = $1 AND user_id = $2
	`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE shared_lists SET updated_at = NOW() WHERE id = $1`, listID)
	if err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}

	return tx.Commit(ctx)
}

// AddSharedWord appends a word entry to the list. The append is a
// single insert, so two collaborators adding words concurrently never
// lose each other's entries. Bumps the list's updated_at in the same
// transaction.
func (d *DB) AddSharedWord(ctx context.Context, word *models.SharedWord) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO shared_words (list_id, word, translation, example, language, contributor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, query,
		word.ListID,
		word.Word,
		word.Translation,
		word.Example,
		word.Language,
		word.ContributorID,
	).Scan(&word.ID, &word.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add word: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE shared_lists SET updated_at = NOW() WHERE id = $1`, word.ListID)
	if err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteSharedWord removes a word entry by identity, preserving the
// order of remaining entries. Authorization is checked by the caller
// against the loaded list snapshot.
func (d *DB) DeleteSharedWord(ctx context.Context, listID, wordID uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM shared_words WHERE id = $1 AND list_id = $2`, wordID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrWordNotFound
	}

	_, err = tx.Exec(ctx, `UPDATE shared_lists SET updated_at = NOW() WHERE id = $1`, listID)
	if err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteSharedList deletes a list and, via ON DELETE CASCADE, all of
// its words and collaborator memberships. Owner-scoped: a miss and a
// non-owner attempt are indistinguishable.
func (d *DB) DeleteSharedList(ctx context.Context, listID, ownerID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM shared_lists WHERE id = $1 AND owner_id = $2`, listID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrListNotFound
	}
	return nil
}

// CountSharedLists returns the total number of shared lists.
// Used by the metrics collector.
func (d *DB) CountSharedLists(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM shared_lists`).Scan(&n)
	return n, err
}

// CountSharedWords returns the total number of words across all shared
// lists. Used by the metrics collector.
func (d *DB) CountSharedWords(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM shared_words`).Scan(&n)
	return n, err
}
