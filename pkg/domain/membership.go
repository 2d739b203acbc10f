package domain

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the many-to-many edge between a team and an employee.
// A (team_id, employee_id) pair exists at most once; the store's primary
// key enforces this.
type Membership struct {
	TeamID     uuid.UUID `json:"team_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
