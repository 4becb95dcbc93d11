package imageservice

import (
	"context"

	imagedb "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories"
)

// Service defines the image resource service interface.
type Service interface {
	ListImages(ctx context.Context) ([]imagedb.Image, error)
	GetImage(ctx context.Context, label string) (*imagedb.Image, error)
	CreateImage(ctx context.Context, in ImageInput) (*imagedb.Image, error)
	UpdateImage(ctx context.Context, id int64, in ImageInput) (*imagedb.Image, error)
	DeleteImage(ctx context.Context, id int64) error
}

// ImageInput is an admin create or full update.
type ImageInput struct {
	Label  string
	FileID string
	Alt    string
	Type   string
}
