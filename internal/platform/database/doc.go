// Package database opens the single active database described by the
// settings. Opening is lazy: connectivity problems surface on first use or
// on an explicit Ping, never while settings are resolved.
package database
