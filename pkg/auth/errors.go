// Package auth manages the application level Spotify access token. This file
// defines the error types surfaced by the token exchange so callers can
// distinguish configuration problems from rejections by the authorization
// server.

package auth

import "fmt"

// ConfigError indicates the client credentials were missing or unusable. The
// credentials are validated lazily at the first refresh attempt, so this error
// appears on the operation that triggered the refresh rather than at startup.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "auth config: " + e.Reason
}

// AuthError indicates the authorization server rejected the credential
// exchange. Reason carries the remote error payload when the server provided
// one, otherwise a generic message.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange: %s: %v", e.Reason, e.Err)
	}
	return "token exchange: " + e.Reason
}

// Unwrap exposes the underlying transport or OAuth error for errors.Is/As.
func (e *AuthError) Unwrap() error { return e.Err }
