package entities

import (
	"errors"
	"strings"
	"time"
)

// BlogStatus indica se o post está publicado
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// DefaultAuthorName é usado quando o post é criado sem autor explícito
const DefaultAuthorName = "Admin"

// ParseBlogStatus converte texto livre em status; qualquer coisa diferente de "published" é rascunho
func ParseBlogStatus(value string) BlogStatus {
	if BlogStatus(value) == BlogStatusPublished {
		return BlogStatusPublished
	}
	return BlogStatusDraft
}

// SEO agrupa os metadados de SEO do post
type SEO struct {
	MetaTitle       string
	MetaDescription string
	CanonicalURL    string
}

// BlogPost representa um post do blog
type BlogPost struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       string
	Content       string
	CoverImageURL string
	Status        BlogStatus
	Tags          []string
	SEO           SEO
	AuthorID      string
	AuthorName    string
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPublished verifica se o post está publicado
func (b *BlogPost) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// ApplyStatus muda o status e mantém publishedAt coerente.
// publishedAt é definido na primeira publicação e preservado em edições seguintes.
func (b *BlogPost) ApplyStatus(status BlogStatus, now time.Time) {
	b.Status = status
	if status == BlogStatusPublished && b.PublishedAt == nil {
		published := now
		b.PublishedAt = &published
	}
}

// NormalizeTags remove espaços e entradas vazias, preservando a ordem e sem duplicatas
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

// Validate valida regras de negócio da entidade BlogPost
func (b *BlogPost) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("title is required")
	}

	if strings.TrimSpace(b.Slug) == "" {
		return errors.New("slug is required")
	}

	if b.Status != BlogStatusDraft && b.Status != BlogStatusPublished {
		return errors.New("invalid status")
	}

	return nil
}
