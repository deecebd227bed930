package settings

import (
	"context"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"catering/internal/validation"

	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log.Named("settings")}
}

// All returns every known key, empty when unset.
func (s *Service) All(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k] = stored[k]
	}
	return out, nil
}

// Update applies a partial update. Unknown keys fail the whole update.
func (s *Service) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	clean := make(map[string]string, len(values))
	for k, v := range values {
		if !known(k) {
			return nil, validation.New(k, "unknown setting")
		}
		v = strings.TrimSpace(v)
		if err := check(k, v); err != nil {
			return nil, err
		}
		clean[k] = v
	}

	if len(clean) > 0 {
		if err := s.repo.Upsert(ctx, clean); err != nil {
			return nil, err
		}
		s.log.Info("settings updated", zap.Int("count", len(clean)))
	}
	return s.All(ctx)
}

func check(key, value string) error {
	if utf8.RuneCountInString(value) > maxValueLen {
		return validation.New(key, "too long")
	}
	if value == "" {
		return nil
	}

	switch key {
	case ContactEmail:
		if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
			return validation.New(key, "invalid email")
		}
	case InstagramURL, FacebookURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return validation.New(key, "invalid url")
		}
	}
	return nil
}
