package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit log actions.
const (
	ActionOrganisationCreated = "organisation_created"
	ActionUserLogin           = "user_login"
	ActionUserLogout          = "user_logout"
	ActionEmployeeCreated     = "employee_created"
	ActionEmployeeUpdated     = "employee_updated"
	ActionEmployeeDeleted     = "employee_deleted"
	ActionTeamCreated         = "team_created"
	ActionTeamUpdated         = "team_updated"
	ActionTeamDeleted         = "team_deleted"
	ActionEmployeeAssigned    = "employee_assigned"
	ActionEmployeeUnassigned  = "employee_unassigned"
)

// LogEntry is an append-only audit record. The application never updates
// or deletes these rows.
type LogEntry struct {
	ID             uuid.UUID `json:"id"`
	OrganisationID uuid.UUID `json:"organisation_id"`
	UserID         uuid.UUID `json:"user_id"`
	Action         string    `json:"action"`
	Details        string    `json:"details"`
	CreatedAt      time.Time `json:"created_at"`
}
