package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/google/uuid"
)

// PhotoStore hands out short lived URLs for profile photo objects.
type PhotoStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (url string, expiresAt time.Time, err error)
	PresignDownload(ctx context.Context, key string) (url string, expiresAt time.Time, err error)
}

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// PhotoUpload tells the client where to PUT the image.
type PhotoUpload struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StartPhotoUpload allocates a new object key, records it as the account's
// photo reference and returns a presigned upload URL for it.
func (s *AccountService) StartPhotoUpload(ctx context.Context, account domain.Account, contentType string) (PhotoUpload, error) {
	if s.Photos == nil {
		return PhotoUpload{}, ErrPhotosDisabled
	}
	ext, ok := photoExtensions[contentType]
	if !ok {
		return PhotoUpload{}, invalidInput(fmt.Errorf("content type %q is not a supported image", contentType))
	}

	key := fmt.Sprintf("accounts/%s/%s%s", account.ID, uuid.NewString(), ext)
	url, exp, err := s.Photos.PresignUpload(ctx, key, contentType)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to presign photo upload", slog.Any("error", err))
		return PhotoUpload{}, err
	}

	if _, err := s.mutate(ctx, account.Username, func(a *domain.Account) error {
		a.PhotoReference = key
		return nil
	}); err != nil {
		return PhotoUpload{}, err
	}

	return PhotoUpload{URL: url, Key: key, ExpiresAt: exp}, nil
}

// PhotoURL returns a presigned download URL for the account's photo.
func (s *AccountService) PhotoURL(ctx context.Context, account domain.Account) (string, error) {
	if s.Photos == nil {
		return "", ErrPhotosDisabled
	}
	if account.PhotoReference == "" {
		return "", ErrNoPhoto
	}
	url, _, err := s.Photos.PresignDownload(ctx, account.PhotoReference)
	return url, err
}
