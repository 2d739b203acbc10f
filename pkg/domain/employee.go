package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a staff record owned by an organisation.
type Employee struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Position       *string   `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName returns the display name used in team rosters.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
