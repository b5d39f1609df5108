package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
)

var blogSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"publishedAt": "published_at",
	"title":       "title",
	"slug":        "slug",
	"status":      "status",
}

// BlogRepository implementa repositories.BlogRepository
type BlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository cria um novo BlogRepository
func NewBlogRepository(db *gorm.DB) repositories.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, post *entities.BlogPost) error {
	if post.ID == "" {
		post.ID = valueobjects.NewID()
	}
	model := r.toModel(post)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return translateError(err)
	}

	post.CreatedAt = fromNanos(model.CreatedAt)
	post.UpdatedAt = fromNanos(model.UpdatedAt)
	return nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*entities.BlogPost, error) {
	var model BlogPostModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *BlogRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.BlogPost, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []*BlogPostModel
	db := dbFromContext(ctx, r.db)
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models), nil
}

func (r *BlogRepository) ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64

	db := dbFromContext(ctx, r.db)
	query := db.Model(&BlogPostModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BlogRepository) Update(ctx context.Context, post *entities.BlogPost) error {
	model := r.toModel(post)

	db := dbFromContext(ctx, r.db)
	result := db.Model(&BlogPostModel{ID: post.ID}).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	post.UpdatedAt = fromNanos(model.UpdatedAt)
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) (bool, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Where("id = ?", id).Delete(&BlogPostModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *BlogRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db := dbFromContext(ctx, r.db)
	result := db.Where("id IN ?", ids).Delete(&BlogPostModel{})
	return result.RowsAffected, result.Error
}

func (r *BlogRepository) List(ctx context.Context, query repositories.ListQuery) (repositories.ListResult[*entities.BlogPost], error) {
	query = repositories.NormalizeListQuery(query, repositories.BlogSortFields)
	result := repositories.ListResult[*entities.BlogPost]{Page: query.Page, Limit: query.Limit}

	db := dbFromContext(ctx, r.db)
	search := matchScope(query.Search,
		columnMatch("title"),
		columnMatch("slug"),
		columnMatch("excerpt"),
		jsonArrayMatch(BlogPostModel{}.TableName(), "tags"),
	)

	if err := db.Model(&BlogPostModel{}).Scopes(search).Count(&result.Total).Error; err != nil {
		return result, err
	}

	var models []*BlogPostModel
	err := db.Scopes(search, orderScope(blogSortColumns[query.SortField], query.SortOrder), pageScope(query)).
		Find(&models).Error
	if err != nil {
		return result, err
	}

	result.Items = r.toEntities(models)
	return result, nil
}

func (r *BlogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := dbFromContext(ctx, r.db)
	err := db.Model(&BlogPostModel{}).Count(&count).Error
	return count, err
}

func (r *BlogRepository) CountByStatus(ctx context.Context) (map[entities.BlogStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}

	db := dbFromContext(ctx, r.db)
	err := db.Model(&BlogPostModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[entities.BlogStatus]int64{
		entities.BlogStatusDraft:     0,
		entities.BlogStatusPublished: 0,
	}
	for _, row := range rows {
		counts[entities.ParseBlogStatus(row.Status)] += row.Total
	}
	return counts, nil
}

// Conversores
func (r *BlogRepository) toModel(post *entities.BlogPost) *BlogPostModel {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	return &BlogPostModel{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		CoverImageURL:   post.CoverImageURL,
		Status:          string(post.Status),
		Tags:            tags,
		MetaTitle:       post.SEO.MetaTitle,
		MetaDescription: post.SEO.MetaDescription,
		CanonicalURL:    post.SEO.CanonicalURL,
		AuthorID:        post.AuthorID,
		AuthorName:      post.AuthorName,
		PublishedAt:     optionalNanos(post.PublishedAt),
		CreatedAt:       toNanos(post.CreatedAt),
		UpdatedAt:       toNanos(post.UpdatedAt),
	}
}

func (r *BlogRepository) toEntity(model *BlogPostModel) *entities.BlogPost {
	tags := []string(model.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &entities.BlogPost{
		ID:            model.ID,
		Title:         model.Title,
		Slug:          model.Slug,
		Excerpt:       model.Excerpt,
		Content:       model.Content,
		CoverImageURL: model.CoverImageURL,
		Status:        entities.ParseBlogStatus(model.Status),
		Tags:          tags,
		SEO: entities.SEO{
			MetaTitle:       model.MetaTitle,
			MetaDescription: model.MetaDescription,
			CanonicalURL:    model.CanonicalURL,
		},
		AuthorID:    model.AuthorID,
		AuthorName:  model.AuthorName,
		PublishedAt: optionalTime(model.PublishedAt),
		CreatedAt:   fromNanos(model.CreatedAt),
		UpdatedAt:   fromNanos(model.UpdatedAt),
	}
}

func (r *BlogRepository) toEntities(models []*BlogPostModel) []*entities.BlogPost {
	posts := make([]*entities.BlogPost, 0, len(models))
	for _, model := range models {
		posts = append(posts, r.toEntity(model))
	}
	return posts
}
