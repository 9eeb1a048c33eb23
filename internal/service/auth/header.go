package auth

import "strings"

// ParseAuthorizationHeader extracts the token from an Authorization header of
// the form "<scheme> <token>". The scheme comparison is case-insensitive.
func ParseAuthorizationHeader(header, scheme string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	prefix, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(prefix, scheme) {
		return "", ErrInvalidAuthScheme
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidToken
	}
	return token, nil
}
