package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/orgware/staffd/internal/audit"
	"github.com/orgware/staffd/internal/http/middleware"
	"github.com/orgware/staffd/internal/httputil"
	"github.com/orgware/staffd/pkg/auth"
	"github.com/orgware/staffd/pkg/domain"
)

// Handler handles registration, login and logout.
type Handler struct {
	logger  *slog.Logger
	service *auth.Service
	audit   *audit.Recorder
}

// NewHandler creates a new auth handler.
func NewHandler(logger *slog.Logger, service *auth.Service, recorder *audit.Recorder) *Handler {
	return &Handler{logger: logger, service: service, audit: recorder}
}

// RegisterRequest represents an organisation registration request.
type RegisterRequest struct {
	OrgName   string `json:"orgName"`
	AdminName string `json:"adminName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the body returned by register and login.
type SessionResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// UserPayload is the caller identity echoed back to the client.
type UserPayload struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	OrgID   uuid.UUID `json:"orgId"`
	OrgName string    `json:"orgName"`
}

// Register handles organisation registration.
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.OrgName == "" || req.AdminName == "" || req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if len(req.Password) < 6 {
		httputil.Error(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	session, err := h.service.Register(r.Context(), req.OrgName, req.AdminName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			httputil.Error(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("registration failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.audit.Record(r.Context(), session.Organisation.ID, session.User.ID,
		domain.ActionOrganisationCreated, "Organisation: "+session.Organisation.Name)

	httputil.JSON(w, http.StatusCreated, sessionResponse(session))
}

// Login handles user login.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.audit.Record(r.Context(), session.Organisation.ID, session.User.ID,
		domain.ActionUserLogin, "User: "+session.User.Email)

	httputil.JSON(w, http.StatusOK, sessionResponse(session))
}

// Logout records the logout action. Stateless - the token stays valid
// until its natural expiry.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	orgID, _ := middleware.GetOrgID(r.Context())

	h.audit.Record(r.Context(), orgID, userID, domain.ActionUserLogout, "User logged out")

	httputil.JSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

func sessionResponse(s *auth.Session) SessionResponse {
	return SessionResponse{
		Token: s.Token,
		User: UserPayload{
			ID:      s.User.ID,
			Name:    s.User.Name,
			Email:   s.User.Email,
			OrgID:   s.Organisation.ID,
			OrgName: s.Organisation.Name,
		},
	}
}
