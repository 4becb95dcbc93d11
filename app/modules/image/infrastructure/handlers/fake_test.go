package imagehandlers

import (
	"context"

	imageservice "github.com/Black-And-White-Club/gala-night/app/modules/image/application"
	imagedb "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories"
)

type FakeService struct {
	ListImagesFunc  func(ctx context.Context) ([]imagedb.Image, error)
	GetImageFunc    func(ctx context.Context, label string) (*imagedb.Image, error)
	CreateImageFunc func(ctx context.Context, in imageservice.ImageInput) (*imagedb.Image, error)
	UpdateImageFunc func(ctx context.Context, id int64, in imageservice.ImageInput) (*imagedb.Image, error)
	DeleteImageFunc func(ctx context.Context, id int64) error
}

func (f *FakeService) ListImages(ctx context.Context) ([]imagedb.Image, error) {
	if f.ListImagesFunc != nil {
		return f.ListImagesFunc(ctx)
	}
	return []imagedb.Image{}, nil
}

func (f *FakeService) GetImage(ctx context.Context, label string) (*imagedb.Image, error) {
	if f.GetImageFunc != nil {
		return f.GetImageFunc(ctx, label)
	}
	return nil, imageservice.ErrImageNotFound
}

func (f *FakeService) CreateImage(ctx context.Context, in imageservice.ImageInput) (*imagedb.Image, error) {
	if f.CreateImageFunc != nil {
		return f.CreateImageFunc(ctx, in)
	}
	img := &imagedb.Image{ID: 1, Label: in.Label, FileID: in.FileID}
	img.URL = img.ViewURL()
	return img, nil
}

func (f *FakeService) UpdateImage(ctx context.Context, id int64, in imageservice.ImageInput) (*imagedb.Image, error) {
	if f.UpdateImageFunc != nil {
		return f.UpdateImageFunc(ctx, id, in)
	}
	return &imagedb.Image{ID: id, Label: in.Label, FileID: in.FileID}, nil
}

func (f *FakeService) DeleteImage(ctx context.Context, id int64) error {
	if f.DeleteImageFunc != nil {
		return f.DeleteImageFunc(ctx, id)
	}
	return nil
}

var _ imageservice.Service = (*FakeService)(nil)
