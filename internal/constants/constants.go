// Package constants holds values shared between the settings resolver and the
// subsystems that consume them. Nothing here is read from the environment.
package constants

import "time"

// Token lifetimes handed to the JWT service through config.TokenPolicy.
const (
	AccessTokenLifetime  = 60 * time.Minute
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// AuthHeaderScheme is the literal prefix expected in the Authorization header.
const AuthHeaderScheme = "Bearer"

// The TLS-terminating proxy reports the original scheme in this header.
const (
	ProxySSLHeaderName  = "X-Forwarded-Proto"
	ProxySSLHeaderValue = "https"
)

// Wildcard is the universal host/origin pattern used in development.
const Wildcard = "*"
