package media

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	files map[string]File
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{files: make(map[string]File)}
}

func (r *InMemoryRepository) Create(ctx context.Context, f *File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	f.CreatedAt = time.Now()
	r.files[f.ID] = *f
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *InMemoryRepository) List(ctx context.Context, galleryOnly bool) ([]File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []File{}
	for _, f := range r.files {
		if !galleryOnly || f.InGallery {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, f *File) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[f.ID]; !ok {
		return ErrNotFound
	}
	r.files[f.ID] = *f
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return ErrNotFound
	}
	delete(r.files, id)
	return nil
}
