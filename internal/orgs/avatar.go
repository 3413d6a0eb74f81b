package orgs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/internal/permissions"
	"github.com/hugh/nextsaas/internal/storage"
)

var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// SetAvatar uploads a new avatar image and stores its URL on the organization.
func (s *Service) SetAvatar(ctx context.Context, userID uuid.UUID, slug, contentType string, body io.Reader) (string, error) {
	m, err := ResolveMembership(ctx, s.db, userID, slug)
	if err != nil {
		return "", err
	}
	if m.Ability().Cannot(permissions.ActionUpdate, m.Organization) {
		return "", apperr.Unauthorized("You're not allowed to update this organization.")
	}

	if s.store == nil {
		return "", ErrAvatarStorageDisabled
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", apperr.BadRequest("Avatar must be a PNG, JPEG, WebP or GIF image.")
	}
	ext, ok := avatarExtensions[mediaType]
	if !ok {
		return "", apperr.BadRequest("Avatar must be a PNG, JPEG, WebP or GIF image.")
	}

	key := fmt.Sprintf("organizations/%s/avatar-%d%s", m.Organization.ID, time.Now().UnixNano(), ext)
	url, err := s.store.Put(ctx, key, mediaType, body)
	if errors.Is(err, storage.ErrObjectTooLarge) {
		return "", apperr.BadRequest("Avatar image is too large.")
	}
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", m.Organization.ID).
		Update("avatar_url", url).Error; err != nil {
		return "", err
	}
	return url, nil
}
