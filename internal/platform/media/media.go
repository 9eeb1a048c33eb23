package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/logger"
	"github.com/phrazzld/core-api/internal/redact"
)

var (
	ErrEmptyName    = errors.New("media name is empty")
	ErrUploadFailed = errors.New("media upload failed")
)

// Store is a CDN-backed media store. No request is made until Upload.
type Store struct {
	cld    *cloudinary.Cloudinary
	secret string
}

// NewStore builds a Store from cfg.
func NewStore(cfg config.MediaConfig) (*Store, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey.Reveal(), cfg.APISecret.Reveal())
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %s",
			redact.Values(err.Error(), cfg.APIKey.Reveal(), cfg.APISecret.Reveal()))
	}
	cld.Config.URL.Secure = true

	return &Store{cld: cld, secret: cfg.APISecret.Reveal()}, nil
}

// CloudName returns the CDN account the store uploads to.
func (s *Store) CloudName() string {
	return s.cld.Config.Cloud.CloudName
}

// Upload stores r under the public ID name, replacing any existing asset, and
// returns its HTTPS delivery URL.
func (s *Store) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	log := logger.FromContext(ctx)

	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:  name,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		safe := redact.Values(err.Error(), s.secret)
		log.Error("media upload failed", "error", safe, "public_id", name)
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, safe)
	}
	if res == nil {
		return "", ErrUploadFailed
	}
	if res.Error.Message != "" {
		log.Error("media upload rejected", "error", res.Error.Message, "public_id", name)
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, res.Error.Message)
	}

	log.Debug("media uploaded", "public_id", res.PublicID, "bytes", res.Bytes)
	return res.SecureURL, nil
}

// URL returns the delivery URL of an image asset without contacting the CDN.
func (s *Store) URL(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	asset, err := s.cld.Image(name)
	if err != nil {
		return "", fmt.Errorf("failed to build media url: %w", err)
	}
	return asset.String()
}
