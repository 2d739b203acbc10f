package audit

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/orgware/staffd/pkg/domain"
)

type fakeStore struct {
	entries []*domain.LogEntry
	err     error
}

func (s *fakeStore) Create(ctx context.Context, entry *domain.LogEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestRecorder_WritesStoreAndMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "actions.log")
	mirror, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}

	store := &fakeStore{}
	rec := NewRecorder(discardLogger(), store, mirror)

	orgID := uuid.New()
	userID := uuid.New()
	rec.Record(context.Background(), orgID, userID, domain.ActionEmployeeCreated, "Employee: Jane Doe")

	if len(store.entries) != 1 {
		t.Fatalf("store entries = %d, want 1", len(store.entries))
	}
	entry := store.entries[0]
	if entry.OrganisationID != orgID || entry.UserID != userID {
		t.Errorf("entry scope = %v/%v, want %v/%v", entry.OrganisationID, entry.UserID, orgID, userID)
	}
	if entry.Action != domain.ActionEmployeeCreated {
		t.Errorf("entry action = %q, want %q", entry.Action, domain.ActionEmployeeCreated)
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read mirror file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, domain.ActionEmployeeCreated) || !strings.Contains(line, userID.String()) {
		t.Errorf("mirror line %q missing action or user id", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("mirror line should end with a newline")
	}
}

func TestRecorder_AppendsAcrossRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.log")
	mirror, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}

	rec := NewRecorder(discardLogger(), &fakeStore{}, mirror)
	rec.Record(context.Background(), uuid.New(), uuid.New(), domain.ActionTeamCreated, "Team: Eng")
	rec.Record(context.Background(), uuid.New(), uuid.New(), domain.ActionTeamDeleted, "Team deleted")
	rec.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read mirror file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("mirror lines = %d, want 2", len(lines))
	}
}

func TestRecorder_StoreFailureDoesNotPanic(t *testing.T) {
	rec := NewRecorder(discardLogger(), &fakeStore{err: os.ErrClosed}, nil)

	// Must not panic and must not fail the caller.
	rec.Record(context.Background(), uuid.New(), uuid.New(), domain.ActionUserLogin, "User: x")

	if err := rec.Close(); err != nil {
		t.Errorf("Close with nil mirror = %v, want nil", err)
	}
}
