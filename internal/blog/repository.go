package blog

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrSlugTaken = errors.New("slug already used for this locale")
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug, locale string) (*Post, error)
	List(ctx context.Context, filter ListFilter) ([]Post, int, error)
	Delete(ctx context.Context, id string) error
}
