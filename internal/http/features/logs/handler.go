package logs

import (
	"log/slog"
	"net/http"

	"github.com/orgware/staffd/internal/http/middleware"
	"github.com/orgware/staffd/internal/httputil"
	"github.com/orgware/staffd/pkg/domain"
	"github.com/orgware/staffd/pkg/repository"
)

// listLimit caps a single page of audit entries.
const listLimit = 100

// Handler serves the organisation's audit log.
type Handler struct {
	logger *slog.Logger
	logs   *repository.LogsRepository
}

// NewHandler creates a new logs handler.
func NewHandler(logger *slog.Logger, logs *repository.LogsRepository) *Handler {
	return &Handler{logger: logger, logs: logs}
}

// List returns the caller organisation's audit entries, newest first.
// GET /api/logs
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	entries, err := h.logs.ListByOrg(r.Context(), orgID, listLimit)
	if err != nil {
		h.logger.Error("list logs failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch logs")
		return
	}
	if entries == nil {
		entries = []*domain.LogEntry{}
	}

	httputil.JSON(w, http.StatusOK, entries)
}
