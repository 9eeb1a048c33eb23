// Package middleware turns the resolved security policy and token policy into
// chi-compatible HTTP middleware: host allowlisting, TLS redirection behind a
// proxy, CORS, trusted-origin checks for state-changing requests and bearer
// authentication.
package middleware
