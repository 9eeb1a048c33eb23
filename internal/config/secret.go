package config

import (
	"encoding/json"
	"log/slog"

	"github.com/phrazzld/core-api/internal/redact"
)

// Secret is a credential read from the environment. Every textual form of a
// Secret is the redaction placeholder; call Reveal to obtain the value.
type Secret string

// Reveal returns the raw secret value.
func (s Secret) Reveal() string { return string(s) }

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool { return s == "" }

func (s Secret) String() string { return redact.RedactionPlaceholder }

// GoString covers %#v.
func (s Secret) GoString() string { return redact.RedactionPlaceholder }

// LogValue implements slog.LogValuer.
func (s Secret) LogValue() slog.Value { return slog.StringValue(redact.RedactionPlaceholder) }

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redact.RedactionPlaceholder), nil }

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redact.RedactionPlaceholder) }
