package blog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]Post
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{posts: make(map[string]Post)}
}

func (r *InMemoryRepository) slugUsed(p *Post) bool {
	for _, other := range r.posts {
		if other.ID != p.ID && other.Slug == p.Slug && other.Locale == p.Locale {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(ctx context.Context, p *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if r.slugUsed(p) {
		return ErrSlugTaken
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.posts[p.ID] = *p
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, p *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[p.ID]
	if !ok {
		return ErrNotFound
	}
	if r.slugUsed(p) {
		return ErrSlugTaken
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.posts[p.ID] = *p
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *InMemoryRepository) GetBySlug(ctx context.Context, slug, locale string) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.Slug == slug && p.Locale == locale {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]Post, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []Post{}
	for _, p := range r.posts {
		if filter.Locale != "" && p.Locale != filter.Locale {
			continue
		}
		if filter.PublishedOnly && !p.Published {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return sortKey(matched[i]).After(sortKey(matched[j])) })

	total := len(matched)
	if filter.Offset >= total {
		return []Post{}, total, nil
	}
	end := total
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return matched[filter.Offset:end], total, nil
}

// sortKey orders posts by publish time, falling back to creation.
func sortKey(p Post) time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}
