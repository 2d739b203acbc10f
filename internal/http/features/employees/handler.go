package employees

import (
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

// Handler handles the employee registry endpoints. Every operation is
// scoped to the caller's organisation.
type Handler struct {
	logger    *slog.Logger
	employees *repository.EmployeesRepository
	audit     *audit.Recorder
}

// NewHandler creates a new employees handler.
func NewHandler(logger *slog.Logger, employees *repository.EmployeesRepository, recorder *audit.Recorder) *Handler {
	return &Handler{logger: logger, employees: employees, audit: recorder}
}

// EmployeeRequest carries the mutable employee fields.
type EmployeeRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
}

// List returns all employees of the caller's organisation with team
// aggregation, newest first.
// GET /api/employees
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	employees, err := h.employees.ListByOrg(r.Context(), orgID)
	if err != nil {
		h.logger.Error("list employees failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch employees")
		return
	}
	if employees == nil {
		employees = []*repository.EmployeeWithTeams{}
	}

	httputil.JSON(w, http.StatusOK, employees)
}

// Get returns one employee with its team assignments.
// GET /api/employees/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	employee, err := h.employees.Get(r.Context(), id, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "employee not found")
			return
		}
		h.logger.Error("get employee failed", "error", err, "employee_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch employee")
		return
	}

	teams, err := h.employees.GetTeams(r.Context(), id)
	if err != nil {
		h.logger.Error("get employee teams failed", "error", err, "employee_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to fetch employee")
		return
	}
	if teams == nil {
		teams = []*repository.TeamAssignment{}
	}

	httputil.JSON(w, http.StatusOK, map[string]any{
		"employee": employee,
		"teams":    teams,
	})
}

// Create creates an employee.
// POST /api/employees
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		httputil.Error(w, http.StatusBadRequest, "first name and last name are required")
		return
	}

	employee := &domain.Employee{
		ID:             uuid.New(),
		OrganisationID: orgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		CreatedAt:      time.Now(),
	}

	if err := h.employees.Create(r.Context(), employee); err != nil {
		h.logger.Error("create employee failed", "error", err, "org_id", orgID)
		httputil.Error(w, http.StatusInternalServerError, "failed to create employee")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionEmployeeCreated,
		fmt.Sprintf("Employee: %s (ID: %s)", employee.FullName(), employee.ID))

	httputil.JSON(w, http.StatusCreated, employee)
}

// Update updates an employee's fields.
// PUT /api/employees/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		httputil.Error(w, http.StatusBadRequest, "first name and last name are required")
		return
	}

	employee := &domain.Employee{
		ID:             id,
		OrganisationID: orgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
	}

	if err := h.employees.Update(r.Context(), employee); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "employee not found")
			return
		}
		h.logger.Error("update employee failed", "error", err, "employee_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to update employee")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionEmployeeUpdated,
		fmt.Sprintf("Employee ID: %s - %s", id, employee.FullName()))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "employee updated successfully"})
}

// Delete deletes an employee; its memberships cascade.
// DELETE /api/employees/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	orgID, _ := middleware.GetOrgID(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "employee not found")
		return
	}

	if err := h.employees.Delete(r.Context(), id, orgID); err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			httputil.Error(w, http.StatusNotFound, "employee not found")
			return
		}
		h.logger.Error("delete employee failed", "error", err, "employee_id", id)
		httputil.Error(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}

	h.audit.Record(r.Context(), orgID, userID, domain.ActionEmployeeDeleted,
		fmt.Sprintf("Employee ID: %s", id))

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "employee deleted successfully"})
}
