package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"catering/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage is the object store media files live in.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var _ Storage = (*storage.R2Client)(nil)

type Service struct {
	repo    Repository
	storage Storage
	now     func() time.Time
	log     *zap.Logger
}

// NewService wires the media library. store may be nil when object storage
// is not configured; uploads and deletes then fail with
// storage.ErrStorageDisabled while listing keeps working.
func NewService(repo Repository, store Storage, log *zap.Logger) *Service {
	return &Service{repo: repo, storage: store, now: time.Now, log: log.Named("media")}
}

type UploadInput struct {
	Filename  string
	Size      int64
	Body      io.Reader
	Alt       string
	InGallery bool
}

// --------------------------------------------------
// Upload
// --------------------------------------------------
func (s *Service) Upload(ctx context.Context, in UploadInput) (*File, error) {
	if s.storage == nil {
		return nil, storage.ErrStorageDisabled
	}
	ext, contentType, err := checkUpload(in.Filename, in.Size)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("media/%d/%s%s", s.now().Year(), uuid.New().String(), ext)
	url, err := s.storage.Upload(ctx, key, io.LimitReader(in.Body, MaxUploadSize), contentType)
	if err != nil {
		return nil, err
	}

	f := &File{
		ObjectKey:   key,
		URL:         url,
		Filename:    in.Filename,
		ContentType: contentType,
		SizeBytes:   in.Size,
		Alt:         in.Alt,
		InGallery:   in.InGallery,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if derr := s.storage.Delete(ctx, key); derr != nil {
			s.log.Warn("orphaned object after failed insert", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("save media file: %w", err)
	}

	s.log.Info("media uploaded", zap.String("id", f.ID), zap.String("key", key), zap.Int64("bytes", in.Size))
	return f, nil
}

func (s *Service) List(ctx context.Context) ([]File, error) {
	return s.repo.List(ctx, false)
}

// Gallery lists the files flagged for the public gallery, newest first.
func (s *Service) Gallery(ctx context.Context) ([]File, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) Get(ctx context.Context, id string) (*File, error) {
	return s.repo.Get(ctx, id)
}

// Update changes alt text and the gallery flag; nil leaves a field as is.
func (s *Service) Update(ctx context.Context, id string, alt *string, inGallery *bool) (*File, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if alt != nil {
		f.Alt = *alt
	}
	if inGallery != nil {
		f.InGallery = *inGallery
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes the stored object and then the row.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.storage == nil {
		return storage.ErrStorageDisabled
	}
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, f.ObjectKey); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
