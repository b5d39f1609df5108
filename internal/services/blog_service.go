package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
)

// slugRetries limita novas tentativas quando o índice único acusa colisão entre a checagem e a escrita
const slugRetries = 3

// BlogService contém a lógica de negócio para posts
type BlogService struct {
	blogRepo repositories.BlogRepository
	slugs    *SlugAllocator
	recorder *ActivityRecorder
	logger   ports.Logger
}

// NewBlogService cria um novo BlogService
func NewBlogService(
	blogRepo repositories.BlogRepository,
	slugs *SlugAllocator,
	recorder *ActivityRecorder,
	logger ports.Logger,
) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		slugs:    slugs,
		recorder: recorder,
		logger:   logger,
	}
}

// BlogInput representa os campos editáveis de um post
type BlogInput struct {
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	CoverImageURL   string
	Status          string
	Tags            []string
	MetaTitle       string
	MetaDescription string
	CanonicalURL    string
	AuthorName      string
}

// CreateBlog cria um post com slug único
func (s *BlogService) CreateBlog(ctx context.Context, actor *entities.User, input BlogInput) (*entities.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.ErrTitleRequired
	}

	authorName := strings.TrimSpace(input.AuthorName)
	if authorName == "" {
		authorName = entities.DefaultAuthorName
	}

	now := time.Now().UTC()
	post := &entities.BlogPost{
		Title:         title,
		Excerpt:       strings.TrimSpace(input.Excerpt),
		Content:       input.Content,
		CoverImageURL: strings.TrimSpace(input.CoverImageURL),
		Tags:          entities.NormalizeTags(input.Tags),
		SEO: entities.SEO{
			MetaTitle:       strings.TrimSpace(input.MetaTitle),
			MetaDescription: strings.TrimSpace(input.MetaDescription),
			CanonicalURL:    strings.TrimSpace(input.CanonicalURL),
		},
		AuthorID:   actor.ID,
		AuthorName: authorName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	post.ApplyStatus(entities.ParseBlogStatus(input.Status), now)

	base := desiredSlug(input.Slug, title)
	err := s.withUniqueSlug(ctx, post, base, func() error {
		return s.blogRepo.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionBlogCreated,
		ActorUserID:  actor.ID,
		ResourceType: entities.ResourceBlog,
		ResourceID:   post.ID,
		Description:  describeBlog(post, "created"),
	})

	return post, nil
}

// GetBlog busca um post por ID
func (s *BlogService) GetBlog(ctx context.Context, rawID string) (*entities.BlogPost, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if post == nil {
		return nil, errors.ErrBlogNotFound
	}
	return post, nil
}

// UpdateBlog altera um post; o slug só é realocado se mudar
func (s *BlogService) UpdateBlog(ctx context.Context, actor *entities.User, rawID string, input BlogInput) (*entities.BlogPost, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	if blank(input.Title, input.Content, input.MetaTitle, input.MetaDescription) {
		return nil, errors.ErrAllFieldsRequired
	}

	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if post == nil {
		return nil, errors.ErrBlogNotFound
	}

	now := time.Now().UTC()
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = input.Content
	post.CoverImageURL = strings.TrimSpace(input.CoverImageURL)
	post.Tags = entities.NormalizeTags(input.Tags)
	post.SEO = entities.SEO{
		MetaTitle:       strings.TrimSpace(input.MetaTitle),
		MetaDescription: strings.TrimSpace(input.MetaDescription),
		CanonicalURL:    strings.TrimSpace(input.CanonicalURL),
	}
	if name := strings.TrimSpace(input.AuthorName); name != "" {
		post.AuthorName = name
	}
	post.ApplyStatus(entities.ParseBlogStatus(input.Status), now)
	post.UpdatedAt = now

	update := func() error {
		if err := s.blogRepo.Update(ctx, post); err != nil {
			if isNotFound(err) {
				return errors.ErrBlogNotFound
			}
			return err
		}
		return nil
	}

	base := desiredSlug(input.Slug, post.Title)
	if base == post.Slug {
		err = update()
	} else {
		err = s.withUniqueSlug(ctx, post, base, update)
	}
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.Internal(err)
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionBlogUpdated,
		ActorUserID:  actor.ID,
		ResourceType: entities.ResourceBlog,
		ResourceID:   post.ID,
		Description:  describeBlog(post, "updated"),
	})

	return post, nil
}

// DeleteBlog remove um post
func (s *BlogService) DeleteBlog(ctx context.Context, actor *entities.User, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	post, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Internal(err)
	}
	if post == nil {
		return errors.ErrBlogNotFound
	}

	deleted, err := s.blogRepo.Delete(ctx, id)
	if err != nil {
		return errors.Internal(err)
	}
	if !deleted {
		return errors.ErrBlogNotFound
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionBlogDeleted,
		ActorUserID:  actor.ID,
		ResourceType: entities.ResourceBlog,
		ResourceID:   post.ID,
		Description:  describeBlog(post, "deleted"),
	})
	return nil
}

// BulkDeleteBlogs remove vários posts; IDs inexistentes são ignorados.
// O retorno é o número de IDs pedidos, não o de registros removidos.
func (s *BlogService) BulkDeleteBlogs(ctx context.Context, actor *entities.User, rawIDs []string) (int, error) {
	if len(rawIDs) == 0 {
		return 0, errors.ErrNoIDsProvided
	}

	ids := validIDs(rawIDs)
	posts, err := s.blogRepo.FindByIDs(ctx, ids)
	if err != nil {
		return 0, errors.Internal(err)
	}

	if _, err := s.blogRepo.DeleteByIDs(ctx, ids); err != nil {
		return 0, errors.Internal(err)
	}

	for _, post := range posts {
		s.recorder.Record(ctx, ActivityInput{
			Action:       entities.ActionBlogDeleted,
			ActorUserID:  actor.ID,
			ResourceType: entities.ResourceBlog,
			ResourceID:   post.ID,
			Description:  describeBlog(post, "deleted via bulk delete"),
		})
	}

	s.logger.Info("blogs bulk deleted", "actor_id", actor.ID, "requested", len(rawIDs), "found", len(posts))
	return len(rawIDs), nil
}

// ListBlogs lista posts com busca, ordenação e paginação
func (s *BlogService) ListBlogs(ctx context.Context, query repositories.ListQuery) (repositories.ListResult[*entities.BlogPost], error) {
	result, err := s.blogRepo.List(ctx, query)
	if err != nil {
		return result, errors.Internal(err)
	}
	return result, nil
}

// CountBlogs retorna o total de posts
func (s *BlogService) CountBlogs(ctx context.Context) (int64, error) {
	count, err := s.blogRepo.Count(ctx)
	if err != nil {
		return 0, errors.Internal(err)
	}
	return count, nil
}

// CountByStatus retorna o total de posts por status
func (s *BlogService) CountByStatus(ctx context.Context) (map[entities.BlogStatus]int64, error) {
	counts, err := s.blogRepo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return counts, nil
}

// withUniqueSlug aloca o slug e executa write; se o índice único acusar colisão, realoca e tenta de novo
func (s *BlogService) withUniqueSlug(ctx context.Context, post *entities.BlogPost, base string, write func() error) error {
	for attempt := 1; ; attempt++ {
		unique, err := s.slugs.AllocateUnique(ctx, base, post.ID)
		if err != nil {
			return err
		}
		post.Slug = unique

		err = write()
		if err == nil {
			return nil
		}
		if !isDuplicate(err) {
			if _, ok := errors.As(err); ok {
				return err
			}
			return errors.Internal(err)
		}
		if attempt >= slugRetries {
			s.logger.Warn("slug allocation kept colliding", "slug", base, "attempts", attempt)
			return errors.ErrSlugUnavailable
		}
	}
}

// desiredSlug usa o slug pedido (normalizado se preciso) ou deriva do título
func desiredSlug(requested, title string) string {
	if requested = strings.TrimSpace(requested); requested != "" {
		return Slugify(requested)
	}
	return Slugify(title)
}

func describeBlog(post *entities.BlogPost, verb string) string {
	return fmt.Sprintf("Blog %s (%s) %s", post.Title, post.Slug, verb)
}
