package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organisation is the tenant root. Every other entity is scoped to one
// organisation through its organisation_id foreign key.
type Organisation struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
