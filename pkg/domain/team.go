package domain

import (
	"time"

	"github.com/google/uuid"
)

// Team is a named group of employees within an organisation.
type Team struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}
