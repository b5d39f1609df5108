package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/services"
)

// BlogHandler lida com requisições HTTP relacionadas a posts
type BlogHandler struct {
	blogService *services.BlogService
	logger      ports.Logger
}

// NewBlogHandler cria um novo BlogHandler
func NewBlogHandler(blogService *services.BlogService, logger ports.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		logger:      logger,
	}
}

// CreateBlog godoc
// @Summary Create blog post
// @Description The slug is derived from the title when omitted and suffixed (-1, -2...) on collision
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body dto.CreateBlogRequest true "Post data"
// @Success 201 {object} dto.BlogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /blogs [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrTitleRequired)
		return
	}

	post, err := h.blogService.CreateBlog(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBlogResponse(post))
}

// GetBlog godoc
// @Summary Get blog post
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blogs/{id} [get]
func (h *BlogHandler) GetBlog(c *gin.Context) {
	post, err := h.blogService.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogResponse(post))
}

// UpdateBlog godoc
// @Summary Update blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdateBlogRequest true "Post data"
// @Success 200 {object} dto.BlogResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blogs/{id} [put]
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrAllFieldsRequired)
		return
	}

	post, err := h.blogService.UpdateBlog(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.ToInput())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogResponse(post))
}

// DeleteBlog godoc
// @Summary Delete blog post
// @Tags blogs
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blogs/{id} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.blogService.DeleteBlog(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Blog deleted"})
}

// BulkDeleteBlogs godoc
// @Summary Delete several blog posts
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /blogs/bulk-delete [post]
func (h *BlogHandler) BulkDeleteBlogs(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, errors.ErrNoIDsProvided)
		return
	}

	count, err := h.blogService.BulkDeleteBlogs(c.Request.Context(), middleware.CurrentUser(c), req.IDs)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BulkDeleteResponse{Message: "Blogs deleted", DeletedCount: count})
}

// ListBlogs godoc
// @Summary List blog posts
// @Tags blogs
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size (max 50)"
// @Param q query string false "Search over title, slug, excerpt and tags"
// @Param sortField query string false "createdAt, updatedAt, publishedAt, title, slug or status"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} dto.BlogListResponse
// @Router /blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, nil)
		return
	}

	result, err := h.blogService.ListBlogs(c.Request.Context(), params.ToListQuery())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogListResponse(result))
}

// CountBlogs godoc
// @Summary Count blog posts
// @Tags blogs
// @Produce json
// @Success 200 {object} dto.CountResponse
// @Router /blogs/count [get]
func (h *BlogHandler) CountBlogs(c *gin.Context) {
	count, err := h.blogService.CountBlogs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}
