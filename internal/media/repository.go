package media

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("media file not found")

type Repository interface {
	Create(ctx context.Context, f *File) error
	Get(ctx context.Context, id string) (*File, error)
	List(ctx context.Context, galleryOnly bool) ([]File, error)
	Update(ctx context.Context, f *File) error
	Delete(ctx context.Context, id string) error
}
