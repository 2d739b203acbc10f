package teams

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/orgware/staffd/internal/audit"
	"github.com/orgware/staffd/internal/http/middleware"
	"github.com/orgware/staffd/internal/httputil"
	"github.com/orgware/staffd/pkg/domain"
	"github.com/orgware/staffd/pkg/repository"
)

// Handler handles the team registry endpoints, including membership edge
// management. Every operation is scoped to the caller's organisation.
type Handler struct {
	logger      *slog.Logger
	db          *sql.DB
	teams       *repository.TeamsRepository
	employees   *repository.EmployeesRepository
	memberships *repository.MembershipsRepository
	audit       *audit.Recorder
}

// NewHandler creates a new teams handler.
func NewHandler(
	logger *slog.Logger,
	db *sql.DB,
	teams *repository.TeamsRepository,
	employees *repository.EmployeesRepository,
	memberships *repository.MembershipsRepository,
	recorder *audit.Recorder,
) *Handler {
	return &Handler{
		logger:      logger,
		db:          db,
		teams:       teams,
		employees:   employees,
		memberships: memberships,
		audit:       recorder,
	}
}

// TeamRequest carries the mutable team fields.
type TeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// MemberRequest identifies the employee in assign/unassign calls.
type MemberRequest struct {
	EmployeeID string `json:"employee_id"`
}

// List returns all teams of the caller's organisation with member
// aggregation, newest first.
// GET /api/teams
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	teams, err := h.teams.ListByOrg(r.Context(), orgID)
	if err != nil {
		h.logger.Error("list teams failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch teams")
		return
	}
	if teams == nil {
		teams = []*repository.TeamWithMembers{}
	}

	httputil.JSON(w, http.StatusOK, teams)
}

// Get returns one team with its employees.
// GET /api/teams/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "team not found")
		return
	}

	team, err := h.teams.Get(r.Context(), id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			httputil.Error(w, http.StatusNotFound, "team not found")
			return
		}
		h.logger.Error("get team failed", "error", err, "team_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch team")
		return
	}

	members, err := h.memberships.EmployeesByTeam(r.Context(), id)
	if err != nil {
		h.logger.Error("get team members failed", "error", err, "team_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch team")
		return
	}
	if members == nil {
		members = []*domain.Employee{}
	}

	httputil.JSON(w, http.StatusOK, map[string]any{
		"team":      team,
		"employees": members,
	})
}

// Create creates a team.
// POST /api/teams
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "team name is required")
		return
	}

	team := &domain.Team{
		ID:             uuid.New(),
		OrganisationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		CreatedAt:      time.Now(),
	}

	if err := h.teams.Create(r.Context(), team); err != nil {
		h.logger.Error("create team failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create team")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionTeamCreated,
		fmt.Sprintf("Team: %s (ID: %s)", team.Name, team.ID))

	httputil.JSON(w, http.StatusCreated, team)
}

// Update updates a team's name and description.
// PUT /api/teams/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "team not found")
		return
	}

	var req TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		httputil.Error(w, http.StatusBadRequest, "team name is required")
		return
	}

	team := &domain.Team{
		ID:             id,
		OrganisationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
	}

	if err := h.teams.Update(r.Context(), team); err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			httputil.Error(w, http.StatusNotFound, "team not found")
			return
		}
		h.logger.Error("update team failed", "error", err, "team_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to update team")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionTeamUpdated,
		fmt.Sprintf("Team ID: %s - %s", id, req.Name))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "team updated successfully"})
}

// Delete removes a team and all its memberships in one transaction, so a
// mid-sequence failure cannot leave orphaned edges.
// DELETE /api/teams/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "team not found")
		return
	}

	err = repository.Tx(r.Context(), h.db, func(tx *sql.Tx) error {
		if err := h.memberships.DeleteByTeamTx(r.Context(), tx, id); err != nil {
			return err
		}
		return h.teams.DeleteTx(r.Context(), tx, id, orgID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			httputil.Error(w, http.StatusNotFound, "team not found")
			return
		}
		h.logger.Error("delete team failed", "error", err, "team_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete team")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionTeamDeleted,
		fmt.Sprintf("Team ID: %s", id))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "team deleted successfully"})
}

// Assign adds an employee to a team. Both endpoints must belong to the
// caller's organisation; the membership insert itself relies on the
// store's uniqueness constraint to reject duplicates.
// POST /api/teams/{id}/assign
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "team not found")
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" {
		httputil.Error(w, http.StatusBadRequest, "employee_id is required")
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	if _, err := h.teams.Get(r.Context(), teamID, orgID); err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			httputil.Error(w, http.StatusNotFound, "team not found")
			return
		}
		h.logger.Error("assign: team lookup failed", "error", err, "team_id", teamID)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign employee")
		return
	}

	if _, err := h.employees.Get(r.Context(), employeeID, orgID); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "employee not found")
			return
		}
		h.logger.Error("assign: employee lookup failed", "error", err, "employee_id", employeeID)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign employee")
		return
	}

	membership := &domain.Membership{
		TeamID:     teamID,
		EmployeeID: employeeID,
		AssignedAt: time.Now(),
	}
	if err := h.memberships.Create(r.Context(), membership); err != nil {
		if errors.Is(err, domain.ErrMembershipExists) {
			httputil.Error(w, http.StatusConflict, "employee already assigned to team")
			return
		}
		h.logger.Error("assign failed", "error", err, "team_id", teamID, "employee_id", employeeID)
		httputil.Error(w, http.StatusInternalServerError, "failed to assign employee")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionEmployeeAssigned,
		fmt.Sprintf("Employee %s assigned to team %s", employeeID, teamID))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "employee assigned successfully"})
}

// Unassign removes an employee from a team.
// POST /api/teams/{id}/unassign
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "team not found")
		return
	}

	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EmployeeID == "" {
		httputil.Error(w, http.StatusBadRequest, "employee_id is required")
		return
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "membership not found")
		return
	}

	// Scope the edge through the team before touching it.
	if _, err := h.teams.Get(r.Context(), teamID, orgID); err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			httputil.Error(w, http.StatusNotFound, "team not found")
			return
		}
		h.logger.Error("unassign: team lookup failed", "error", err, "team_id", teamID)
		httputil.Error(w, http.StatusInternalServerError, "failed to unassign employee")
		return
	}

	if err := h.memberships.Delete(r.Context(), teamID, employeeID); err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			httputil.Error(w, http.StatusNotFound, "membership not found")
			return
		}
		h.logger.Error("unassign failed", "error", err, "team_id", teamID, "employee_id", employeeID)
		httputil.Error(w, http.StatusInternalServerError, "failed to unassign employee")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionEmployeeUnassigned,
		fmt.Sprintf("Employee %s removed from team %s", employeeID, teamID))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "employee unassigned successfully"})
}
