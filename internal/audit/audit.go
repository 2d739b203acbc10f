// Package audit records every mutating action twice: in the logs table
// (authoritative) and on an append-only line writer (operational mirror).
// Audit failures are logged and never fail the request that triggered
// them.
package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

// Store persists audit entries. *repository.LogsRepository satisfies it.
type Store interface {
	Create(ctx context.Context, entry *domain.LogEntry) error
}

// Recorder writes audit entries to the store and mirror writer.
type Recorder struct {
	logger *slog.Logger
	store  Store

	mu     sync.Mutex
	mirror io.WriteCloser
}

// NewRecorder creates a recorder writing to store and mirror. A nil
// mirror disables the file side-channel.
func NewRecorder(logger *slog.Logger, store Store, mirror io.WriteCloser) *Recorder {
	return &Recorder{logger: logger, store: store, mirror: mirror}
}

// OpenLogFile opens (creating directories as needed) the append-only
// audit mirror file. Opened once at startup, closed at shutdown.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// Record appends one audit entry for the given caller and action.
func (r *Recorder) Record(ctx context.Context, orgID, userID uuid.UUID, action, details string) {
	now := time.Now()
	entry := &domain.LogEntry{
		ID:             uuid.New(),
		OrganisationID: orgID,
		UserID:         userID,
		Action:         action,
		Details:        details,
		CreatedAt:      now,
	}

	if err := r.store.Create(ctx, entry); err != nil {
		r.logger.Error("audit store write failed", "error", err, "action", action, "org_id", orgID)
	}

	if r.mirror != nil {
		line := fmt.Sprintf("[%s] user '%s' %s: %s\n", now.UTC().Format("2006-01-02 15:04:05"), userID, action, details)
		r.mu.Lock()
		_, err := io.WriteString(r.mirror, line)
		if err == nil {
			if f, ok := r.mirror.(*os.File); ok {
				err = f.Sync()
			}
		}
		r.mu.Unlock()
		if err != nil {
			r.logger.Error("audit mirror write failed", "error", err, "action", action)
		}
	}
}

// Close closes the mirror writer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mirror == nil {
		return nil
	}
	return r.mirror.Close()
}
