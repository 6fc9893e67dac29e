package models

import (
	"time"

	"github.com/google/uuid"
)

// SharedList is a named collection of word entries with one owner and a
// set of collaborators. Words keep insertion order.
type SharedList struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	OwnerID       uuid.UUID    `json:"owner_id"`
	Owner         UserRef      `json:"owner"`
	Collaborators []UserRef    `json:"collaborators"`
	Words         []SharedWord `json:"words"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SharedWord is a word entry inside a shared list, attributed to the
// user who contributed it.
type SharedWord struct {
	ID            uuid.UUID `json:"id"`
	ListID        uuid.UUID `json:"list_id"`
	Word          string    `json:"word"`
	Translation   string    `json:"translation"`
	Example       string    `json:"example"`
	Language      string    `json:"language"`
	ContributorID uuid.UUID `json:"contributor_id"`
	Contributor   UserRef   `json:"contributor"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsOwner reports whether the user owns the list.
func (l *SharedList) IsOwner(userID uuid.UUID) bool {
	return l.OwnerID == userID
}

// IsCollaborator reports whether the user is a current collaborator.
// The owner is never part of the collaborator set.
func (l *SharedList) IsCollaborator(userID uuid.UUID) bool {
	for _, c := range l.Collaborators {
		if c.ID == userID {
			return true
		}
	}
	return false
}

// CanAccess reports whether the user may view the list or contribute
// words to it: the owner or any current collaborator.
func (l *SharedList) CanAccess(userID uuid.UUID) bool {
	return l.IsOwner(userID) || l.IsCollaborator(userID)
}

// CanManage reports whether the user may change membership, share, or
// delete the list. Management is owner-only.
func (l *SharedList) CanManage(userID uuid.UUID) bool {
	return l.IsOwner(userID)
}

// CanRemoveWord reports whether the user may remove a word entry: the
// list owner or the entry's original contributor. Other collaborators
// may not remove someone else's word.
func (l *SharedList) CanRemoveWord(userID uuid.UUID, w *SharedWord) bool {
	return l.IsOwner(userID) || w.ContributorID == userID
}

// FindWord returns the word entry with the given id, or nil.
func (l *SharedList) FindWord(wordID uuid.UUID) *SharedWord {
	for i := range l.Words {
		if l.Words[i].ID == wordID {
			return &l.Words[i]
		}
	}
	return nil
}
