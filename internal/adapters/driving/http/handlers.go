package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the backing store)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "Store unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// User endpoints

// handleCreateUser godoc
// @Summary      Create user
// @Description  Persist a new user from an authentication profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.User  true  "User profile"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var profile domain.User
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.persistence.CreateUser(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleGetUser godoc
// @Summary      Get user
// @Description  Get a user by ID
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users/{id} [get]
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	user, err := s.persistence.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleGetUserByEmail godoc
// @Summary      Get user by email
// @Description  Get a user by email address
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  domain.User
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      404    {object}  ErrorResponse  "User not found"
// @Failure      500    {object}  ErrorResponse  "Internal server error"
// @Router       /users/email/{email} [get]
func (s *Server) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	user, err := s.persistence.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleGetUserByProviderAccount godoc
// @Summary      Get user by provider account
// @Description  Get the user linked to an external provider account
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        providerId         path      string  true  "Provider ID"
// @Param        providerAccountId  path      string  true  "Provider account ID"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /users/account/{providerId}/{providerAccountId} [get]
func (s *Server) handleGetUserByProviderAccount(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("providerId")
	providerAccountID := r.PathValue("providerAccountId")
	if providerID == "" || providerAccountID == "" {
		writeError(w, http.StatusBadRequest, "missing provider account reference")
		return
	}

	user, err := s.persistence.GetUserByProviderAccountID(r.Context(), providerID, providerAccountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleUpdateUser godoc
// @Summary      Update user
// @Description  Replace a user's profile fields
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true  "User ID"
// @Param        request  body      domain.User  true  "Updated profile"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /users/{id} [put]
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user.ID = id

	updated, err := s.persistence.UpdateUser(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Description  Accept a user deletion request. User records are retained.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := s.persistence.DeleteUser(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Account endpoints

// handleLinkAccount godoc
// @Summary      Link account
// @Description  Link an external provider account to a user
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.Account  true  "Account details"
// @Success      201      {object}  domain.Account
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /accounts [post]
func (s *Server) handleLinkAccount(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	linked, err := s.persistence.LinkAccount(r.Context(), account)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to link account")
		}
		return
	}

	writeJSON(w, http.StatusCreated, linked)
}

// handleUnlinkAccount godoc
// @Summary      Unlink account
// @Description  Remove the link between a provider account and its user
// @Tags         Accounts
// @Produce      json
// @Security     BearerAuth
// @Param        providerId         path   string  true   "Provider ID"
// @Param        providerAccountId  path   string  true   "Provider account ID"
// @Param        userId             query  string  false  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /accounts/{providerId}/{providerAccountId} [delete]
func (s *Server) handleUnlinkAccount(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("providerId")
	providerAccountID := r.PathValue("providerAccountId")
	if providerID == "" || providerAccountID == "" {
		writeError(w, http.StatusBadRequest, "missing provider account reference")
		return
	}
	userID := r.URL.Query().Get("userId")

	if err := s.persistence.UnlinkAccount(r.Context(), userID, providerID, providerAccountID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to unlink account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Session endpoints

// handleCreateSession godoc
// @Summary      Create session
// @Description  Create a new session for a signed-in user
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.User  true  "Session owner"
// @Success      201      {object}  domain.Session
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /sessions [post]
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.persistence.CreateSession(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create session")
		}
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// handleGetSession godoc
// @Summary      Get session
// @Description  Resolve a session token to its session and owning user. Expired sessions are removed and reported as not found.
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  domain.Session
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      404    {object}  ErrorResponse  "Session not found"
// @Failure      500    {object}  ErrorResponse  "Internal server error"
// @Router       /sessions/{token} [get]
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing session token")
		return
	}

	session, err := s.persistence.GetSession(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// handleUpdateSession godoc
// @Summary      Renew session
// @Description  Extend a session's expiry. The body must carry the session's store ID; the path token only names the session. Renewal is throttled unless force is set; a throttled renewal returns 204.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        token    path      string          true   "Session token"
// @Param        force    query     bool            false  "Bypass the renewal throttle"
// @Param        request  body      domain.Session  true   "Current session"
// @Success      200      {object}  domain.Session
// @Success      204      "Renewal skipped"
// @Failure      400      {object}  ErrorResponse  "Missing session id"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /sessions/{token} [patch]
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing session token")
		return
	}

	var session domain.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session.SessionToken = token

	force := r.URL.Query().Get("force") == "true"
	renewed, err := s.persistence.UpdateSession(r.Context(), &session, force)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "session id is required")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update session")
		}
		return
	}
	if renewed == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, renewed)
}

// handleDeleteSession godoc
// @Summary      Delete session
// @Description  Delete a session by token. Deleting an unknown token succeeds.
// @Tags         Sessions
// @Produce      json
// @Security     BearerAuth
// @Param        token  path      string  true  "Session token"
// @Success      200    {object}  StatusResponse
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Failure      500    {object}  ErrorResponse  "Internal server error"
// @Router       /sessions/{token} [delete]
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing session token")
		return
	}

	if err := s.persistence.DeleteSession(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Verification request endpoints

// createVerificationRequest carries the inputs for issuing a
// verification request
// @Description Verification request issue payload
type createVerificationRequest struct {
	Identifier string `json:"identifier" example:"ada@example.com"`
	URL        string `json:"url" example:"https://app.example.com/verify?token=..."`
	Token      string `json:"token"`
	MaxAge     int64  `json:"max_age,omitempty" example:"86400"` // seconds, 0 means no expiry
}

// verificationTokenRequest identifies a stored verification request
// @Description Verification request lookup payload
type verificationTokenRequest struct {
	Identifier string `json:"identifier" example:"ada@example.com"`
	Token      string `json:"token"`
}

// handleCreateVerificationRequest godoc
// @Summary      Issue verification request
// @Description  Persist a hashed verification token and deliver the plaintext to the identifier
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      createVerificationRequest  true  "Verification details"
// @Success      201      {object}  domain.VerificationRequest
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      502      {object}  ErrorResponse  "Delivery failed"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /verification-requests [post]
func (s *Server) handleCreateVerificationRequest(w http.ResponseWriter, r *http.Request) {
	var req createVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	delivery := driving.DeliveryConfig{MaxAge: time.Duration(req.MaxAge) * time.Second}
	vr, err := s.persistence.CreateVerificationRequest(r.Context(), req.Identifier, req.URL, req.Token, delivery)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, domain.ErrDeliveryFailed):
			writeError(w, http.StatusBadGateway, "delivery failed")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create verification request")
		}
		return
	}

	writeJSON(w, http.StatusCreated, vr)
}

// handleLookupVerificationRequest godoc
// @Summary      Look up verification request
// @Description  Find a pending verification request by identifier and plaintext token. Expired requests are removed and reported as not found.
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      verificationTokenRequest  true  "Identifier and token"
// @Success      200      {object}  domain.VerificationRequest
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      404      {object}  ErrorResponse  "Verification request not found"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /verification-requests/lookup [post]
func (s *Server) handleLookupVerificationRequest(w http.ResponseWriter, r *http.Request) {
	var req verificationTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vr, err := s.persistence.GetVerificationRequest(r.Context(), req.Identifier, req.Token)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up verification request")
		return
	}
	if vr == nil {
		writeError(w, http.StatusNotFound, "verification request not found")
		return
	}

	writeJSON(w, http.StatusOK, vr)
}

// handleDeleteVerificationRequest godoc
// @Summary      Delete verification request
// @Description  Delete a verification request after the token has been used. Deleting an unknown token succeeds.
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      verificationTokenRequest  true  "Identifier and token"
// @Success      200      {object}  StatusResponse
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /verification-requests/delete [post]
func (s *Server) handleDeleteVerificationRequest(w http.ResponseWriter, r *http.Request) {
	var req verificationTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.persistence.DeleteVerificationRequest(r.Context(), req.Identifier, req.Token); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete verification request")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
