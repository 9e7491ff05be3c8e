// Token proxy endpoint. The browser front end needs a bearer token for its
// own player widget but must never see the client secret, so the exchange
// happens server-side and only the resulting token and its remaining
// lifetime are exposed.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"Music-Scout-Go/pkg/auth"
)

// tokenResponse matches the contract the front end expects from the proxy.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenJSON returns the current application token, refreshing it when
// needed. On success: 200 with {access_token, expires_in}. On failure:
// non-2xx with {error}.
func (app *Application) TokenJSON(w http.ResponseWriter, r *http.Request) {
	tok, err := app.Tokens.Token(r.Context())
	if err != nil {
		var ae *auth.AuthError
		if errors.As(err, &ae) {
			respondJSONError(w, http.StatusBadGateway, ae.Reason)
			return
		}
		var ce *auth.ConfigError
		if errors.As(err, &ce) {
			app.logger().WithError(err).Error("token proxy misconfigured")
			respondJSONError(w, http.StatusInternalServerError, "failed to get access token")
			return
		}
		app.logger().WithError(err).Error("token proxy exchange failed")
		respondJSONError(w, http.StatusBadGateway, "failed to get access token")
		return
	}
	expiresIn := int64(time.Until(tok.ExpiresAt) / time.Second)
	if expiresIn < 0 {
		expiresIn = 0
	}
	respondJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.Value, ExpiresIn: expiresIn})
}
