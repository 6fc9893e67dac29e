package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Vocabulary errors
	ErrVocabularyNotFound = errors.New("vocabulary item not found")

	// Shared list errors
	ErrListNotFound        = errors.New("list not found")
	ErrWordNotFound        = errors.New("word not found")
	ErrAlreadyCollaborator = errors.New("user is already a collaborator")
	ErrOwnerAsCollaborator = errors.New("the owner cannot be added as a collaborator")
)
