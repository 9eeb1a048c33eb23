package config

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/phrazzld/core-api/internal/constants"
)

// Keys read only in production.
const (
	KeyAllowedHosts       = "ALLOWED_HOSTS"
	KeyCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
)

// SplitList splits a comma-separated list, trimming whitespace and dropping
// empty entries. Order and duplicates are preserved.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// resolveSecurity derives the security policy from the debug flag. The
// development policy needs no keys; the production policy requires both
// allowlists and reports every missing or empty one.
func resolveSecurity(debug bool, snap Snapshot) (SecurityPolicy, []error) {
	if debug {
		return SecurityPolicy{
			AllowedHosts:     []string{constants.Wildcard},
			CORS:             CORSPolicy{Mode: CORSAllowAll},
			ForceTLSRedirect: false,
			SecureCookies:    false,
		}, nil
	}

	var errs []error
	hosts, err := requireList(snap, KeyAllowedHosts)
	if err != nil {
		errs = append(errs, err)
	}
	origins, err := requireList(snap, KeyCORSAllowedOrigins)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return SecurityPolicy{}, errs
	}

	return SecurityPolicy{
		AllowedHosts: hosts,
		CORS: CORSPolicy{
			Mode:           CORSAllowlist,
			AllowedOrigins: origins,
		},
		ForceTLSRedirect: true,
		SecureCookies:    true,
		// Any origin allowed to call cross-origin is also trusted for
		// state-changing requests.
		TrustedOrigins: slices.Clone(origins),
		ProxySSLHeader: &ProxyHeader{
			Name:  constants.ProxySSLHeaderName,
			Value: constants.ProxySSLHeaderValue,
		},
	}, nil
}

func requireList(snap Snapshot, key string) ([]string, error) {
	raw, ok := snap.Lookup(key)
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	list := SplitList(raw)
	if len(list) == 0 {
		return nil, &InvalidKeyError{Key: key, Err: ErrEmptyList}
	}
	return list, nil
}

// AllowsAllHosts reports whether the host allowlist is the universal wildcard.
func (p SecurityPolicy) AllowsAllHosts() bool {
	return slices.Contains(p.AllowedHosts, constants.Wildcard)
}

// NewCookie returns an HttpOnly, SameSite=Lax cookie whose Secure flag
// follows the policy. A non-positive maxAge yields a session cookie.
func (p SecurityPolicy) NewCookie(name, value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge / time.Second)
	}
	return c
}
