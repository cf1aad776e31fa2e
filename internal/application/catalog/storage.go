package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStorageService abstracts the object storage backend used for
// product images, banners and avatars. Clients upload directly through
// presigned URLs; the backend never proxies file bytes.
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	// PublicURL returns the URL an uploaded object is served from.
	PublicURL(storageKey string) string
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// allowedImageTypes maps accepted upload content types to file extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// NewImageKey builds a collision-free storage key under the given
// prefix (products, banners, avatars). Fails on non-image content
// types.
func NewImageKey(prefix, contentType string) (string, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("unsupported image content type %q", contentType)
	}
	return fmt.Sprintf("%s/%s.%s", prefix, uuid.New(), ext), nil
}
