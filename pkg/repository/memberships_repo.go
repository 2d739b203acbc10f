package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

// MembershipsRepository handles the team-employee edge table.
type MembershipsRepository struct {
	db *sql.DB
}

// NewMembershipsRepository creates a new memberships repository.
func NewMembershipsRepository(db *sql.DB) *MembershipsRepository {
	return &MembershipsRepository{db: db}
}

// Create inserts a membership edge. Uniqueness is enforced by the table's
// primary key; the resulting unique violation is the sole source of
// domain.ErrMembershipExists - there is no separate existence check to
// race against.
func (r *MembershipsRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO employee_teams (team_id, employee_id, assigned_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, m.TeamID, m.EmployeeID, m.AssignedAt)
	if isUniqueViolation(err) {
		return domain.ErrMembershipExists
	}
	return err
}

// Delete removes a membership edge.
func (r *MembershipsRepository) Delete(ctx context.Context, teamID, employeeID uuid.UUID) error {
	query := `DELETE FROM employee_teams WHERE team_id = $1 AND employee_id = $2`
	result, err := r.db.ExecContext(ctx, query, teamID, employeeID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

// DeleteByTeamTx removes all memberships of a team within a transaction.
func (r *MembershipsRepository) DeleteByTeamTx(ctx context.Context, q Querier, teamID uuid.UUID) error {
	query := `DELETE FROM employee_teams WHERE team_id = $1`
	_, err := q.ExecContext(ctx, query, teamID)
	return err
}

// EmployeesByTeam retrieves a team's employees, alphabetical by name.
func (r *MembershipsRepository) EmployeesByTeam(ctx context.Context, teamID uuid.UUID) ([]*domain.Employee, error) {
	query := `
		SELECT e.id, e.organisation_id, e.first_name, e.last_name, e.email, e.phone, e.position, e.created_at
		FROM employees e
		INNER JOIN employee_teams et ON et.employee_id = e.id
		WHERE et.team_id = $1
		ORDER BY e.first_name, e.last_name
	`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e := &domain.Employee{}
		err := rows.Scan(&e.ID, &e.OrganisationID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
