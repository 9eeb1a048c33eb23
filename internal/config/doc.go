// Package config resolves the process environment into the immutable Settings
// bundle handed to every other subsystem at startup.
//
// Resolution runs once: a Snapshot is captured from an optional .env file and
// the real environment, Resolve turns it into Settings or fails naming every
// missing or invalid key, and the result is shared read-only for the life of
// the process. The debug flag is the single switch between the permissive
// development security policy and the locked-down production one.
package config
