package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/core-api/internal/config"
)

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashPassword hashes password with bcrypt at the given cost. A cost of zero
// uses bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// SuperuserSeed is the bootstrap admin account, ready to be written by a user store.
type SuperuserSeed struct {
	// ID is derived from Username so it is stable across restarts.
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

var superuserNamespace = uuid.MustParse("6f1c3b1e-7c1d-4a57-9d0e-3c9a8b7f2e10")

// SuperuserID returns the stable user ID of the bootstrap account named username.
func SuperuserID(username string) uuid.UUID {
	return uuid.NewSHA1(superuserNamespace, []byte(username))
}

// ErrEmptySuperuser indicates the bootstrap credentials are blank.
var ErrEmptySuperuser = errors.New("superuser username and password must be non-empty")

// NewSuperuserSeed hashes the bootstrap superuser credentials from settings.
func NewSuperuserSeed(cfg config.SuperuserConfig, cost int) (SuperuserSeed, error) {
	if cfg.Username == "" || cfg.Password.IsZero() {
		return SuperuserSeed{}, ErrEmptySuperuser
	}
	hash, err := HashPassword(cfg.Password.Reveal(), cost)
	if err != nil {
		return SuperuserSeed{}, err
	}
	return SuperuserSeed{
		ID:           SuperuserID(cfg.Username),
		Username:     cfg.Username,
		PasswordHash: hash,
	}, nil
}
