package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

// LogsRepository handles the append-only audit log table.
type LogsRepository struct {
	db *sql.DB
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *sql.DB) *LogsRepository {
	return &LogsRepository{db: db}
}

// Create appends an audit log entry.
func (r *LogsRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	query := `
		INSERT INTO logs (id, organisation_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OrganisationID, entry.UserID, entry.Action, entry.Details, entry.CreatedAt,
	)
	return err
}

// ListByOrg retrieves an organisation's audit log, newest first.
func (r *LogsRepository) ListByOrg(ctx context.Context, orgID uuid.UUID, limit int) ([]*domain.LogEntry, error) {
	query := `
		SELECT id, organisation_id, user_id, action, details, created_at
		FROM logs
		WHERE organisation_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LogEntry
	for rows.Next() {
		entry := &domain.LogEntry{}
		err := rows.Scan(&entry.ID, &entry.OrganisationID, &entry.UserID, &entry.Action, &entry.Details, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
