package analytics

import (
	"log/slog"
	"net/http"

	"github.com/orgware/staffd/internal/http/middleware"
	"github.com/orgware/staffd/internal/httputil"
	"github.com/orgware/staffd/pkg/analytics"
)

// Handler serves the derived organisation statistics.
type Handler struct {
	logger  *slog.Logger
	service *analytics.Service
}

// NewHandler creates a new analytics handler.
func NewHandler(logger *slog.Logger, service *analytics.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Get recomputes and returns the caller organisation's summary.
// GET /api/analytics
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	summary, err := h.service.Summarize(r.Context(), orgID)
	if err != nil {
		h.logger.Error("analytics failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	httputil.JSON(w, http.StatusOK, summary)
}
