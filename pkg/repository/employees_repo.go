package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/orgware/staffd/pkg/domain"
)

// EmployeesRepository handles employee persistence.
type EmployeesRepository struct {
	db *sql.DB
}

// NewEmployeesRepository creates a new employees repository.
func NewEmployeesRepository(db *sql.DB) *EmployeesRepository {
	return &EmployeesRepository{db: db}
}

// EmployeeWithTeams is an employee row with its team aggregation, as
// returned by the list endpoint.
type EmployeeWithTeams struct {
	domain.Employee
	TeamNames []string    `json:"team_names"`
	TeamIDs   []uuid.UUID `json:"team_ids"`
}

// TeamAssignment is a team an employee belongs to, with the time the
// membership was created.
type TeamAssignment struct {
	domain.Team
	AssignedAt time.Time `json:"assigned_at"`
}

// ListByOrg retrieves all employees of an organisation with their team
// names (alphabetical) aggregated, newest employee first.
func (r *EmployeesRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]*EmployeeWithTeams, error) {
	query := `
		SELECT e.id, e.organisation_id, e.first_name, e.last_name, e.email, e.phone, e.position, e.created_at,
		       COALESCE(ARRAY_AGG(t.name ORDER BY t.name) FILTER (WHERE t.id IS NOT NULL), '{}'),
		       COALESCE(ARRAY_AGG(t.id::text ORDER BY t.name) FILTER (WHERE t.id IS NOT NULL), '{}')
		FROM employees e
		LEFT JOIN employee_teams et ON et.employee_id = e.id
		LEFT JOIN teams t ON t.id = et.team_id
		WHERE e.organisation_id = $1
		GROUP BY e.id
		ORDER BY e.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*EmployeeWithTeams
	for rows.Next() {
		var e EmployeeWithTeams
		var names, ids pq.StringArray
		err := rows.Scan(
			&e.ID, &e.OrganisationID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.CreatedAt,
			&names, &ids,
		)
		if err != nil {
			return nil, err
		}
		e.TeamNames = names
		e.TeamIDs = make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			teamID, err := uuid.Parse(id)
			if err != nil {
				return nil, err
			}
			e.TeamIDs = append(e.TeamIDs, teamID)
		}
		employees = append(employees, &e)
	}

	return employees, rows.Err()
}

// Get retrieves an employee scoped to an organisation. A row owned by a
// different organisation yields the same not-found error as a missing row.
func (r *EmployeesRepository) Get(ctx context.Context, id, orgID uuid.UUID) (*domain.Employee, error) {
	query := `
		SELECT id, organisation_id, first_name, last_name, email, phone, position, created_at
		FROM employees
		WHERE id = $1 AND organisation_id = $2
	`
	e := &domain.Employee{}
	err := r.db.QueryRowContext(ctx, query, id, orgID).Scan(
		&e.ID, &e.OrganisationID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetTeams retrieves the teams an employee is assigned to, alphabetical
// by team name.
func (r *EmployeesRepository) GetTeams(ctx context.Context, employeeID uuid.UUID) ([]*TeamAssignment, error) {
	query := `
		SELECT t.id, t.organisation_id, t.name, t.description, t.created_at, et.assigned_at
		FROM teams t
		INNER JOIN employee_teams et ON et.team_id = t.id
		WHERE et.employee_id = $1
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*TeamAssignment
	for rows.Next() {
		var t TeamAssignment
		err := rows.Scan(&t.ID, &t.OrganisationID, &t.Name, &t.Description, &t.CreatedAt, &t.AssignedAt)
		if err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}

	return teams, rows.Err()
}

// Create creates a new employee.
func (r *EmployeesRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `
		INSERT INTO employees (id, organisation_id, first_name, last_name, email, phone, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.OrganisationID, e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.CreatedAt,
	)
	return err
}

// Update updates an employee scoped to an organisation.
func (r *EmployeesRepository) Update(ctx context.Context, e *domain.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $3, last_name = $4, email = $5, phone = $6, position = $7
		WHERE id = $1 AND organisation_id = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		e.ID, e.OrganisationID, e.FirstName, e.LastName, e.Email, e.Phone, e.Position,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete deletes an employee scoped to an organisation. Memberships go
// with it via the store's cascade rule.
func (r *EmployeesRepository) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1 AND organisation_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// CountByOrg counts all employees of an organisation.
func (r *EmployeesRepository) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM employees WHERE organisation_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(&count)
	return count, err
}

// CountUnassigned counts the organisation's employees with no team
// membership.
func (r *EmployeesRepository) CountUnassigned(ctx context.Context, orgID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM employees e
		WHERE e.organisation_id = $1
		  AND NOT EXISTS (SELECT 1 FROM employee_teams et WHERE et.employee_id = e.id)
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(&count)
	return count, err
}
