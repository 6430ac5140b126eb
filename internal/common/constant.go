// Package common contains shared constants and sentinel errors used across
// the CRM client packages.
package common

// Durable storage keys holding the persisted session.
const (
	TokenKey = "crmtoken"
	UserKey  = "crmuser"
	RoleKey  = "crmrole"
)

// SessionKeys lists every key written on login and erased on logout.
var SessionKeys = []string{TokenKey, UserKey, RoleKey}

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates client log lines with backend requests.
const RequestIDHeaderName = "X-Request-ID"
