// Client-credentials provider backed by golang.org/x/oauth2. The exchange is
// a single POST to the token endpoint; there is no user context and no
// refresh token in this grant, so a failed exchange simply fails the catalog
// operation that triggered it.

package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultTokenURL is the Spotify accounts service token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// ClientCredentials exchanges an application ID and secret for a bearer
// token. The credentials are checked on first use so a misconfigured
// deployment fails at the first remote call rather than at startup.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	// TokenURL overrides the endpoint, primarily for tests. Empty means
	// DefaultTokenURL.
	TokenURL string
}

var _ Provider = (*ClientCredentials)(nil)

// Refresh implements Provider. Rejections by the authorization server are
// mapped to AuthError with the remote error code (for example
// "invalid_client") when the response carried one.
func (p *ClientCredentials) Refresh(ctx context.Context) (Token, error) {
	if p.ClientID == "" || p.ClientSecret == "" {
		return Token{}, &ConfigError{Reason: "client id and secret must be set"}
	}
	url := p.TokenURL
	if url == "" {
		url = DefaultTokenURL
	}
	cfg := &clientcredentials.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		TokenURL:     url,
	}
	tok, err := cfg.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			reason := re.ErrorCode
			if reason == "" {
				reason = "failed to obtain token"
			}
			return Token{}, &AuthError{Reason: reason, Err: err}
		}
		return Token{}, err
	}
	return Token{Value: tok.AccessToken, ExpiresAt: tok.Expiry}, nil
}
