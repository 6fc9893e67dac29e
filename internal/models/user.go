package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a chat-app user authenticated via OIDC.
// User records belong to the chat application's directory; this service
// only reads them for display joins and existence checks.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRef carries the minimal display fields resolved for
// owner/collaborator/contributor presentation.
type UserRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Picture string    `json:"picture"`
}

// Ref returns the display projection of a user.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Picture: u.Picture}
}
