package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
)

const (
	fallbackSlug    = "post"
	maxSlugAttempts = 1000
)

// Slugify deriva um slug URL-safe do título (minúsculas, sem acentos ou pontuação, hífens)
func Slugify(title string) string {
	title = strings.TrimSpace(title)
	if slug.IsSlug(title) {
		return title
	}
	s := slug.Make(title)
	if s == "" {
		return fallbackSlug
	}
	return s
}

// SlugAllocator garante slugs únicos entre os posts
type SlugAllocator struct {
	blogRepo repositories.BlogRepository
}

// NewSlugAllocator cria um novo SlugAllocator
func NewSlugAllocator(blogRepo repositories.BlogRepository) *SlugAllocator {
	return &SlugAllocator{blogRepo: blogRepo}
}

// AllocateUnique devolve base, ou base-1, base-2... o primeiro livre.
// excludeID ignora o próprio post na edição.
func (a *SlugAllocator) AllocateUnique(ctx context.Context, base, excludeID string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := a.blogRepo.ExistsBySlug(ctx, candidate, excludeID)
		if err != nil {
			return "", errors.Internal(err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", errors.ErrSlugUnavailable
}
