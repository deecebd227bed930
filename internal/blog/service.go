package blog

import (
	"context"
	"errors"
	"strings"
	"time"

	"catering/internal/i18n"
	"catering/internal/validation"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
	maxTitleLen     = 255
)

type Service struct {
	repo          Repository
	defaultLocale string
	now           func() time.Time
	log           *zap.Logger
}

func NewService(repo Repository, defaultLocale string, log *zap.Logger) *Service {
	return &Service{repo: repo, defaultLocale: defaultLocale, now: time.Now, log: log.Named("blog")}
}

// normalize trims fields, fills a missing slug from the title and stamps
// PublishedAt the first time a post goes live.
func (s *Service) normalize(p *Post) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Excerpt = strings.TrimSpace(p.Excerpt)
	p.Locale = strings.ToLower(strings.TrimSpace(p.Locale))
	p.Slug = strings.TrimSpace(p.Slug)

	switch {
	case p.Title == "":
		return validation.New("title", "required")
	case len([]rune(p.Title)) > maxTitleLen:
		return validation.New("title", "too long")
	case strings.TrimSpace(p.Content) == "":
		return validation.New("content", "required")
	}

	if p.Locale == "" {
		p.Locale = s.defaultLocale
	}
	if !i18n.IsSupported(p.Locale) {
		return validation.New("locale", "unsupported locale")
	}

	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	} else {
		p.Slug = Slugify(p.Slug)
	}
	if p.Slug == "" {
		return validation.New("slug", "cannot build a slug from the title")
	}

	if p.Published && p.PublishedAt == nil {
		now := s.now()
		p.PublishedAt = &now
	}
	return nil
}

func (s *Service) slugErr(err error) error {
	if errors.Is(err, ErrSlugTaken) {
		return validation.New("slug", ErrSlugTaken.Error())
	}
	return err
}

// --------------------------------------------------
// ADMIN
// --------------------------------------------------

func (s *Service) Create(ctx context.Context, p *Post) error {
	if err := s.normalize(p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return s.slugErr(err)
	}
	s.log.Info("post created", zap.String("id", p.ID), zap.String("slug", p.Slug), zap.String("locale", p.Locale))
	return nil
}

func (s *Service) Update(ctx context.Context, p *Post) error {
	existing, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	p.PublishedAt = existing.PublishedAt
	if err := s.normalize(p); err != nil {
		return err
	}
	return s.slugErr(s.repo.Update(ctx, p))
}

// SetPublished toggles visibility. Republishing keeps the original date.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Published = published
	if published && p.PublishedAt == nil {
		now := s.now()
		p.PublishedAt = &now
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, locale string, limit, offset int) ([]Post, int, error) {
	return s.repo.List(ctx, pageFilter(ListFilter{Locale: locale}, limit, offset))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// PUBLIC
// --------------------------------------------------

// Published lists live posts for a locale, newest first.
func (s *Service) Published(ctx context.Context, locale string, limit, offset int) ([]Post, int, error) {
	return s.repo.List(ctx, pageFilter(ListFilter{Locale: locale, PublishedOnly: true}, limit, offset))
}

// PublishedBySlug returns a live post with its rendered HTML.
func (s *Service) PublishedBySlug(ctx context.Context, slug, locale string) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug, locale)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	if p.ContentHTML, err = RenderContent(p.Content); err != nil {
		return nil, err
	}
	return p, nil
}

func pageFilter(f ListFilter, limit, offset int) ListFilter {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	f.Limit, f.Offset = limit, offset
	return f
}
