// Package session is the single source of truth for "who is logged
// in". A Session pairs the authenticated identity with its bearer
// credential; it lives in process memory and is mirrored into durable
// storage so a later process start can reconstruct it without
// re-authenticating.
package session

import "github.com/collegeops/collegeops-cli/users"

// Session pairs an authenticated identity with its credential. It is
// either fully present (both halves) or fully absent; a durable copy
// missing either half is discarded in its entirety at Bootstrap.
type Session struct {
	User  users.User
	Token string
}

// Durable storage entry names. Token and User reconstruct the Session;
// AdminVerified is an auxiliary gate flag owned by the admin screens
// and is only ever cleared here (at Logout and on corrupt bootstrap).
const (
	KeyToken         = "token"
	KeyUser          = "user"
	KeyAdminVerified = "adminVerified"
)

// Storage is client-local durable key-value storage surviving process
// restarts. Get returns internalerrors.ErrEntryNotFound for an absent
// entry. Only the session Store writes session entries; every other
// component treats them as read-only.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
