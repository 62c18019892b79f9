package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// contextKeyAuthAttempt marks requests to the authentication
// endpoints. A 401 from those means the submitted credentials were
// rejected, not that the stored session expired, so the unauthorized
// hook must not fire for them.
const contextKeyAuthAttempt ContextKey = "auth_attempt"

func withAuthAttempt(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKeyAuthAttempt, true)
}

func isAuthAttempt(ctx context.Context) bool {
	flagged, _ := ctx.Value(contextKeyAuthAttempt).(bool)
	return flagged
}

// CredentialSource yields the bearer credential currently held in
// durable storage, if any. The transport consults it on every request
// rather than caching, so a login or logout between requests is always
// picked up.
type CredentialSource interface {
	Credential() (string, bool)
}

// CredentialSourceFunc adapts a function to a CredentialSource.
type CredentialSourceFunc func() (string, bool)

func (f CredentialSourceFunc) Credential() (string, bool) {
	return f()
}

// transport decorates every outbound request with a request ID and,
// when a credential exists, a bearer Authorization header. Responses
// with status 401 are reported to the unauthorized hook; the request
// itself is never retried or rewritten.
type transport struct {
	base           http.RoundTripper
	creds          CredentialSource
	onUnauthorized func()
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	rt := t.base
	if rt == nil {
		rt = http.DefaultTransport
	}
	if credential, ok := t.creds.Credential(); ok {
		rt = &oauth2.Transport{
			Base:   rt,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"}),
		}
	}

	resp, err := rt.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("Unauthorized request - token may be invalid or expired")
		if t.onUnauthorized != nil && !isAuthAttempt(req.Context()) {
			t.onUnauthorized()
		}
	}
	return resp, nil
}

// noCredentials is the default source for clients built without one.
type noCredentials struct{}

func (noCredentials) Credential() (string, bool) { return "", false }
