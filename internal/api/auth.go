package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arifwid/kantorku/internal/audit"
	"github.com/arifwid/kantorku/internal/auth"
)

// Cookie names for the session pair. The access token cookie is
// HttpOnly so scripts cannot read it; the email cookie is readable by
// the frontend for display and carries no authority.
const (
	sessionCookieName = "access_token"
	emailCookieName   = "user_email"
)

// credentialsRequest is the body of register and login calls.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates a new account.
//
// POST /auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	identity, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
			writeBadRequest(w, err.Error())
		case errors.Is(err, auth.ErrEmailExists):
			writeBadRequest(w, "email already registered")
		default:
			s.logger.Error("registration failed", "error", err)
			writeInternalError(w, "internal server error")
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordRegister()
	}
	s.recordAudit(r, audit.ActionRegister, identity.Email, "")

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "user registered successfully",
	})
}

// handleLogin verifies credentials and establishes the session cookie pair.
//
// POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	token, identity, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if s.metrics != nil {
				s.metrics.RecordLoginFailure()
			}
			s.recordAudit(r, audit.ActionLoginFailed, req.Email, "")
			// Unknown email and wrong password answer identically.
			writeBadRequest(w, "invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	s.setSessionCookies(w, token, identity.Email)

	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}
	s.recordAudit(r, audit.ActionLogin, identity.Email, "")

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "login successful",
		"email":   identity.Email,
	})
}

// handleLogout clears the session cookie pair. Tokens are stateless, so
// an already-issued token stays technically valid until expiry; logout
// removes it from the browser.
//
// POST /auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	email := ""
	if cookie, err := r.Cookie(emailCookieName); err == nil {
		email = cookie.Value
	}

	s.clearSessionCookies(w)
	s.recordAudit(r, audit.ActionLogout, email, "")

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "logout successful",
	})
}

// handleProtected confirms the session is valid and returns the token
// subject under the user key. The frontend uses it as a session check.
//
// GET /auth/protected
func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "access granted",
		"user":    userEmail(r.Context()),
	})
}

// setSessionCookies writes the session pair. Both cookies share the
// token TTL so they expire together.
func (s *Server) setSessionCookies(w http.ResponseWriter, token, email string) {
	maxAge := int(s.auth.TokenTTL().Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     emailCookieName,
		Value:    email,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookies expires both session cookies immediately.
func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{sessionCookieName, emailCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == sessionCookieName,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// recordAudit writes an audit entry, logging rather than failing the
// request when the write does not succeed.
func (s *Server) recordAudit(r *http.Request, action, email, detail string) {
	if s.audit == nil {
		return
	}

	entry := &audit.Entry{
		Action:     action,
		Email:      email,
		RemoteAddr: clientIP(r),
		Detail:     detail,
	}
	if err := s.audit.Create(r.Context(), entry); err != nil {
		s.logger.Error("writing audit entry failed", "action", action, "error", err)
	}
}
