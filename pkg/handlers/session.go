// Session helpers. Identity is out of scope for this application; favorites
// and shares only need a stable per-browser identifier, so sessions are
// anonymous: a generated ID in an HMAC-signed cookie plus a CSRF token for
// state-changing requests.

package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	sessionCookie = "session_id"
	csrfCookie    = "csrf_token"
	csrfHeader    = "X-CSRF-Token"
)

// signValue appends an HMAC signature to value using the format
// value|signature, base64 URL encoded so it is cookie safe.
func signValue(value string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(value))
	return value + "|" + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verifyValue checks the signature appended by signValue and returns the
// original value when it matches.
func verifyValue(signed string, key []byte) (string, bool) {
	parts := strings.Split(signed, "|")
	if len(parts) != 2 {
		return "", false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(parts[0]))
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil || !hmac.Equal(mac.Sum(nil), sig) {
		return "", false
	}
	return parts[0], true
}

// StartSession issues a fresh anonymous session cookie and a CSRF token.
// Calling it again replaces the session, which also serves as a logout.
func (app *Application) StartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	secure := r.TLS != nil
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signValue(sessionID, app.SignKey),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	csrf := uuid.NewString()
	// Not HttpOnly: the front end reads it and echoes it in the CSRF header.
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookie,
		Value:    csrf,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusCreated, map[string]string{"csrf_token": csrf})
}

// userFromCookie returns the verified session ID from the request cookie.
func (app *Application) userFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	return verifyValue(c.Value, app.SignKey)
}

// verifyCSRF compares the CSRF header against the cookie in constant time.
func verifyCSRF(r *http.Request) bool {
	c, err := r.Cookie(csrfCookie)
	if err != nil {
		return false
	}
	header := r.Header.Get(csrfHeader)
	if header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(header)) == 1
}

// requireUser enforces a valid session, plus CSRF on state-changing
// requests. It writes the error response itself and reports success.
func (app *Application) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := app.userFromCookie(r)
	if !ok {
		respondJSONError(w, http.StatusUnauthorized, "session required")
		return "", false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead && !verifyCSRF(r) {
		respondJSONError(w, http.StatusForbidden, "invalid csrf token")
		return "", false
	}
	return id, true
}
