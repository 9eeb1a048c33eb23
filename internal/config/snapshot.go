package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Snapshot is an immutable view of the environment captured at startup.
type Snapshot struct {
	values map[string]string
}

// NewSnapshot builds a Snapshot from a copy of values.
func NewSnapshot(values map[string]string) Snapshot {
	return Snapshot{values: maps.Clone(values)}
}

// LoadSnapshot merges the optional KEY=VALUE file at envFile with environ
// (as returned by os.Environ). File values are defaults; environ wins. A
// missing file is not an error. The process environment is never modified.
func LoadSnapshot(envFile string, environ []string) (Snapshot, error) {
	values := make(map[string]string)

	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Snapshot{}, fmt.Errorf("read env file %s: %w", envFile, err)
		default:
			maps.Copy(values, fileValues)
		}
	}

	maps.Copy(values, env.ToMap(environ))

	return Snapshot{values: values}, nil
}

// Lookup returns the value for key and whether it is present.
func (s Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Map returns a copy of the snapshot's contents.
func (s Snapshot) Map() map[string]string {
	if s.values == nil {
		return map[string]string{}
	}
	return maps.Clone(s.values)
}

// Keys returns the snapshot's keys in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys in the snapshot.
func (s Snapshot) Len() int { return len(s.values) }
