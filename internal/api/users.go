package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/officegrid/officegrid-core/internal/auth"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// ─── Request/Response Types ────────────────────────────────────────

type createUserRequest struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

type setRoleRequest struct {
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
}

type changePasswordRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ─── Handlers ──────────────────────────────────────────────────────

// handleListUsers returns all user accounts.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.auth.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("list users failed", "error", err)
		writeInternalError(w, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"count": len(users),
	})
}

// handleCreateUser creates a new user account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleUser
	}

	user, err := s.auth.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "user_created", "user", user.Username)
	writeJSON(w, http.StatusCreated, user)
}

// handleSetRole changes a user's role. Demoting the last remaining
// admin is rejected.
func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.auth.SetRole(r.Context(), req.Username, req.Role); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "role_changed", "user", req.Username+" -> "+string(req.Role))
	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"role":     req.Role,
	})
}

// handleChangePassword resets a user's password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if len(req.Password) < minPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), req.Username, req.Password); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "password_changed", "user", req.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
	})
}

// handleDeleteUser removes a user account. Admins cannot delete their
// own account or the last remaining admin.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	claims := claimsFrom(r.Context())

	if err := s.auth.DeleteUser(r.Context(), username, claims.Username); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.recordAudit(r, "user_deleted", "user", username)
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": username,
	})
}
