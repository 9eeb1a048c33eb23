// Package auth issues and validates bearer tokens according to the resolved
// token policy, and hashes the bootstrap superuser's password.
package auth
