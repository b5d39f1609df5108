package dto

import (
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/services"
)

// blogFields são os campos editáveis comuns a criação e edição
type blogFields struct {
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	CoverImageURL string   `json:"coverImageUrl"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags"`
	CanonicalURL  string   `json:"canonicalUrl"`
	AuthorName    string   `json:"authorName"`
}

// CreateBlogRequest representa a criação de um post; só o título é obrigatório
type CreateBlogRequest struct {
	blogFields
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// ToInput converte para o input do serviço
func (r CreateBlogRequest) ToInput() services.BlogInput {
	return r.blogFields.toInput(r.Title, r.Content, r.MetaTitle, r.MetaDescription)
}

// UpdateBlogRequest representa a edição de um post
type UpdateBlogRequest struct {
	blogFields
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content" binding:"required"`
	MetaTitle       string `json:"metaTitle" binding:"required"`
	MetaDescription string `json:"metaDescription" binding:"required"`
}

// ToInput converte para o input do serviço
func (r UpdateBlogRequest) ToInput() services.BlogInput {
	return r.blogFields.toInput(r.Title, r.Content, r.MetaTitle, r.MetaDescription)
}

func (f blogFields) toInput(title, content, metaTitle, metaDescription string) services.BlogInput {
	return services.BlogInput{
		Title:           title,
		Slug:            f.Slug,
		Excerpt:         f.Excerpt,
		Content:         content,
		CoverImageURL:   f.CoverImageURL,
		Status:          f.Status,
		Tags:            f.Tags,
		MetaTitle:       metaTitle,
		MetaDescription: metaDescription,
		CanonicalURL:    f.CanonicalURL,
		AuthorName:      f.AuthorName,
	}
}

// BlogResponse é o formato completo de um post
type BlogResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	CoverImageURL   string     `json:"coverImageUrl"`
	Status          string     `json:"status"`
	Tags            []string   `json:"tags"`
	MetaTitle       string     `json:"metaTitle"`
	MetaDescription string     `json:"metaDescription"`
	CanonicalURL    string     `json:"canonicalUrl"`
	AuthorID        string     `json:"authorId"`
	AuthorName      string     `json:"authorName"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BlogSummaryResponse é o item da listagem
type BlogSummaryResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags"`
	PublishedAt *time.Time `json:"publishedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BlogListResponse é a página de posts
type BlogListResponse struct {
	Items []BlogSummaryResponse `json:"items"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
	Total int64                 `json:"total"`
	Pages int                   `json:"pages"`
}

// BlogStatusResponse é a contagem de posts por status
type BlogStatusResponse struct {
	Total     int64 `json:"total"`
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
}

// ToBlogResponse converte uma entidade BlogPost para BlogResponse
func ToBlogResponse(post *entities.BlogPost) BlogResponse {
	return BlogResponse{
		ID:              post.ID,
		Title:           post.Title,
		Slug:            post.Slug,
		Excerpt:         post.Excerpt,
		Content:         post.Content,
		CoverImageURL:   post.CoverImageURL,
		Status:          string(post.Status),
		Tags:            tagsOrEmpty(post.Tags),
		MetaTitle:       post.SEO.MetaTitle,
		MetaDescription: post.SEO.MetaDescription,
		CanonicalURL:    post.SEO.CanonicalURL,
		AuthorID:        post.AuthorID,
		AuthorName:      post.AuthorName,
		PublishedAt:     post.PublishedAt,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}

// ToBlogListResponse converte uma página de posts
func ToBlogListResponse(result repositories.ListResult[*entities.BlogPost]) BlogListResponse {
	items := make([]BlogSummaryResponse, len(result.Items))
	for i, post := range result.Items {
		items[i] = BlogSummaryResponse{
			ID:          post.ID,
			Title:       post.Title,
			Slug:        post.Slug,
			Status:      string(post.Status),
			Tags:        tagsOrEmpty(post.Tags),
			PublishedAt: post.PublishedAt,
			UpdatedAt:   post.UpdatedAt,
			CreatedAt:   post.CreatedAt,
		}
	}

	return BlogListResponse{
		Items: items,
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
		Pages: result.Pages(),
	}
}

// ToBlogStatusResponse converte a contagem por status
func ToBlogStatusResponse(counts map[entities.BlogStatus]int64) BlogStatusResponse {
	response := BlogStatusResponse{
		Draft:     counts[entities.BlogStatusDraft],
		Published: counts[entities.BlogStatusPublished],
	}
	for _, n := range counts {
		response.Total += n
	}
	return response
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
