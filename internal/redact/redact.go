// Package redact scrubs credentials out of strings before they are logged or
// returned to a client. Settings carry database, mail and CDN credentials, and
// driver errors routinely echo connection strings back; everything that may
// contain one goes through this package on its way to a log line.
package redact

import (
	"regexp"
	"strings"
)

// Placeholders substituted for redacted material.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
)

var (
	// scheme://user:pass@ in DSNs and CDN URLs
	urlCredRegex = regexp.MustCompile(`(?i)\b(postgres|postgresql|mysql|sqlite|smtp|smtps|cloudinary)://[^@\s/]+@`)

	// go-sql-driver style user:pass@tcp(host:port)/db
	mysqlDSNRegex = regexp.MustCompile(`[^\s:@/]+:[^\s@/]*@tcp\(`)

	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	keyRegex      = regexp.MustCompile(
		`(?i)(api[_-]?key|api[_-]?secret|secret[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/!@#$%^&*]{8,}`,
	)
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = []struct {
		re          *regexp.Regexp
		placeholder string
	}{
		{urlCredRegex, "$1://" + RedactedCredentialPlaceholder + "@"},
		{mysqlDSNRegex, RedactedCredentialPlaceholder + "@tcp("},
		{jwtRegex, RedactedJWTPlaceholder},
		{passwordRegex, RedactedCredentialPlaceholder},
		{keyRegex, RedactedKeyPlaceholder},
	}
)

// String redacts credentials recognisable by shape from the input.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, p := range patterns {
		result = p.re.ReplaceAllString(result, p.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Values replaces every literal occurrence of the given secret values, then
// applies the shape-based patterns. Empty values are ignored.
func Values(input string, secrets ...string) string {
	if input == "" {
		return input
	}
	for _, s := range secrets {
		if s == "" {
			continue
		}
		input = strings.ReplaceAll(input, s, RedactionPlaceholder)
	}
	return String(input)
}
