package middleware

import (
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/constants"
	"github.com/phrazzld/core-api/internal/platform/logger"
)

// AllowedHosts rejects requests whose Host header matches none of hosts.
// A pattern starting with "." matches the domain and all its subdomains;
// "*" matches everything.
func AllowedHosts(hosts []string) func(http.Handler) http.Handler {
	if slices.Contains(hosts, constants.Wildcard) {
		return passthrough
	}

	patterns := make([]string, len(hosts))
	for i, h := range hosts {
		patterns[i] = strings.ToLower(h)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := requestHost(r)
			if !hostAllowed(host, patterns) {
				logger.FromContext(r.Context()).Warn("rejected request for disallowed host",
					"host", host,
					"path", r.URL.Path)
				respondWithError(w, r, http.StatusBadRequest, "Invalid host header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hostAllowed(host string, patterns []string) bool {
	if host == "" {
		return false
	}
	for _, p := range patterns {
		if strings.HasPrefix(p, ".") {
			if host == p[1:] || strings.HasSuffix(host, p) {
				return true
			}
			continue
		}
		if host == p {
			return true
		}
	}
	return false
}

// requestHost returns the lower-cased Host header without its port.
func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")
	return strings.ToLower(host)
}

// RedirectToTLS permanently redirects plain-HTTP requests to https when the
// policy forces TLS. A request counts as secure when it arrived over TLS or
// the proxy header reports the original scheme as https.
func RedirectToTLS(policy config.SecurityPolicy) func(http.Handler) http.Handler {
	if !policy.ForceTLSRedirect {
		return passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSecure(r, policy.ProxySSLHeader) {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, "https://"+r.Host+r.URL.RequestURI(), http.StatusMovedPermanently)
		})
	}
}

func isSecure(r *http.Request, proxy *config.ProxyHeader) bool {
	if r.TLS != nil {
		return true
	}
	return proxy != nil && r.Header.Get(proxy.Name) == proxy.Value
}

// TrustedOrigins rejects state-changing requests whose Origin is neither the
// request's own origin nor one of the policy's trusted origins. Requests
// authenticated with a bearer token carry no ambient credentials and are
// exempt. Under the allow-all CORS policy every origin is trusted.
func TrustedOrigins(policy config.SecurityPolicy, tokenScheme string) func(http.Handler) http.Handler {
	if policy.CORS.Mode == config.CORSAllowAll {
		return passthrough
	}

	trusted := slices.Clone(policy.TrustedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) || hasBearer(r, tokenScheme) {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" || origin == requestOrigin(r, policy.ProxySSLHeader) || slices.Contains(trusted, origin) {
				next.ServeHTTP(w, r)
				return
			}

			logger.FromContext(r.Context()).Warn("rejected cross-origin request from untrusted origin",
				"origin", origin,
				"method", r.Method,
				"path", r.URL.Path)
			respondWithError(w, r, http.StatusForbidden, "Origin not trusted")
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func hasBearer(r *http.Request, scheme string) bool {
	prefix, _, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	return ok && strings.EqualFold(prefix, scheme)
}

func requestOrigin(r *http.Request, proxy *config.ProxyHeader) string {
	scheme := "http"
	if isSecure(r, proxy) {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func passthrough(next http.Handler) http.Handler { return next }
