package config

import (
	"errors"
	"fmt"
)

// ErrEmptyList is wrapped by InvalidKeyError when a required list parses to no entries.
var ErrEmptyList = errors.New("list has no non-empty entries")

// MissingKeyError reports a required environment key that is absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Key)
}

// InvalidKeyError reports an environment key whose value cannot be used.
type InvalidKeyError struct {
	Key string
	Err error
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("environment variable %q is invalid: %v", e.Key, e.Err)
}

func (e *InvalidKeyError) Unwrap() error { return e.Err }
