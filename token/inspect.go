// Package token offers offline diagnostics for the stored bearer
// credential. The session layer and the HTTP transport treat the
// credential as an opaque capability string; only the "token inspect"
// debug command reaches in here, and nothing is verified - the signing
// key belongs to the server.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Details is what can be read out of a credential without verifying
// it. Expiry fields are nil when the token carries no such claim.
type Details struct {
	Subject   string
	Issuer    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
	Claims    map[string]any
}

// Expired reports whether the token's exp claim lies in the past. A
// token without an exp claim is never considered expired here.
func (d *Details) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}

// Inspect decodes the credential's claims without signature
// verification. The result is for display only and must never feed an
// authorization decision.
func Inspect(raw string) (*Details, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, errors.Wrap(err, "[Inspect] parse token")
	}

	details := &Details{Claims: claims}
	if subject, err := claims.GetSubject(); err == nil {
		details.Subject = subject
	}
	if issuer, err := claims.GetIssuer(); err == nil {
		details.Issuer = issuer
	}
	if issuedAt, err := claims.GetIssuedAt(); err == nil && issuedAt != nil {
		details.IssuedAt = &issuedAt.Time
	}
	if expiresAt, err := claims.GetExpirationTime(); err == nil && expiresAt != nil {
		details.ExpiresAt = &expiresAt.Time
	}
	return details, nil
}
