package config

// UnauthorizedPolicy controls what happens when the remote API answers
// a request with HTTP 401. Under "log" (the default) the condition is
// only logged and the session stays in place; "logout" force-clears
// the session instead.
type UnauthorizedPolicy string

const (
	UnauthorizedLog    UnauthorizedPolicy = "log"
	UnauthorizedLogout UnauthorizedPolicy = "logout"
)

const unauthorizedPolicyVar = "COLLEGEOPS_401_POLICY"

type AuthPolicy struct{}

var _ AuthPolicyConfig = AuthPolicy{}

func (AuthPolicy) GetUnauthorizedPolicy() UnauthorizedPolicy {
	if GetEnv(unauthorizedPolicyVar, string(UnauthorizedLog)) == string(UnauthorizedLogout) {
		return UnauthorizedLogout
	}
	return UnauthorizedLog
}
