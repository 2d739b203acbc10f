package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the API.
// Emails are unique across all organisations.
type User struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
}
