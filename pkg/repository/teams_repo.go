package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/orgware/staffd/pkg/domain"
)

// TeamsRepository handles team persistence.
type TeamsRepository struct {
	db *sql.DB
}

// NewTeamsRepository creates a new teams repository.
func NewTeamsRepository(db *sql.DB) *TeamsRepository {
	return &TeamsRepository{db: db}
}

// TeamWithMembers is a team row with its membership aggregation, as
// returned by the list endpoint.
type TeamWithMembers struct {
	domain.Team
	EmployeeCount int      `json:"employee_count"`
	EmployeeNames []string `json:"employee_names"`
}

// TeamMemberCount is a per-team membership count used by analytics.
type TeamMemberCount struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"team"`
	Count  int       `json:"count"`
}

// ListByOrg retrieves all teams of an organisation with member counts and
// member names (alphabetical), newest team first.
func (r *TeamsRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]*TeamWithMembers, error) {
	query := `
		SELECT t.id, t.organisation_id, t.name, t.description, t.created_at,
		       COUNT(et.employee_id),
		       COALESCE(ARRAY_AGG(e.first_name || ' ' || e.last_name ORDER BY e.first_name || ' ' || e.last_name)
		                FILTER (WHERE e.id IS NOT NULL), '{}')
		FROM teams t
		LEFT JOIN employee_teams et ON et.team_id = t.id
		LEFT JOIN employees e ON e.id = et.employee_id
		WHERE t.organisation_id = $1
		GROUP BY t.id
		ORDER BY t.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*TeamWithMembers
	for rows.Next() {
		var t TeamWithMembers
		var names pq.StringArray
		err := rows.Scan(&t.ID, &t.OrganisationID, &t.Name, &t.Description, &t.CreatedAt, &t.EmployeeCount, &names)
		if err != nil {
			return nil, err
		}
		t.EmployeeNames = names
		teams = append(teams, &t)
	}

	return teams, rows.Err()
}

// Get retrieves a team scoped to an organisation. Cross-tenant access
// yields the same not-found error as a missing row.
func (r *TeamsRepository) Get(ctx context.Context, id, orgID uuid.UUID) (*domain.Team, error) {
	query := `
		SELECT id, organisation_id, name, description, created_at
		FROM teams
		WHERE id = $1 AND organisation_id = $2
	`
	t := &domain.Team{}
	err := r.db.QueryRowContext(ctx, query, id, orgID).Scan(
		&t.ID, &t.OrganisationID, &t.Name, &t.Description, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create creates a new team.
func (r *TeamsRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `
		INSERT INTO teams (id, organisation_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.OrganisationID, t.Name, t.Description, t.CreatedAt)
	return err
}

// Update updates a team's name and description, scoped to an organisation.
func (r *TeamsRepository) Update(ctx context.Context, t *domain.Team) error {
	query := `
		UPDATE teams
		SET name = $3, description = $4
		WHERE id = $1 AND organisation_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, t.ID, t.OrganisationID, t.Name, t.Description)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// DeleteTx deletes a team scoped to an organisation, within a
// transaction. The caller removes memberships in the same transaction so
// a mid-sequence failure cannot leave orphaned edges.
func (r *TeamsRepository) DeleteTx(ctx context.Context, q Querier, id, orgID uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1 AND organisation_id = $2`
	result, err := q.ExecContext(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

// CountByOrg counts all teams of an organisation.
func (r *TeamsRepository) CountByOrg(ctx context.Context, orgID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM teams WHERE organisation_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, orgID).Scan(&count)
	return count, err
}

// MemberCounts retrieves per-team membership counts for an organisation,
// largest team first, name breaking ties.
func (r *TeamsRepository) MemberCounts(ctx context.Context, orgID uuid.UUID) ([]*TeamMemberCount, error) {
	query := `
		SELECT t.id, t.name, COUNT(et.employee_id)
		FROM teams t
		LEFT JOIN employee_teams et ON et.team_id = t.id
		WHERE t.organisation_id = $1
		GROUP BY t.id, t.name
		ORDER BY COUNT(et.employee_id) DESC, t.name
	`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*TeamMemberCount
	for rows.Next() {
		var c TeamMemberCount
		if err := rows.Scan(&c.TeamID, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}

	return counts, rows.Err()
}
