package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/handlers/middleware"
	"github.com/rafabene/backoffice/internal/services"
)

// PageHandler devolve os dados das páginas protegidas pelo SessionGate
type PageHandler struct {
	dashboard *services.DashboardService
	blogs     *services.BlogService
	logger    ports.Logger
}

// NewPageHandler cria um novo PageHandler
func NewPageHandler(dashboard *services.DashboardService, blogs *services.BlogService, logger ports.Logger) *PageHandler {
	return &PageHandler{dashboard: dashboard, blogs: blogs, logger: logger}
}

// Dashboard retorna o resumo da página inicial do painel.
// O log de auditoria só aparece para administradores.
func (h *PageHandler) Dashboard(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// DashboardBlogs retorna a contagem de posts por status
func (h *PageHandler) DashboardBlogs(c *gin.Context) {
	counts, err := h.blogs.CountByStatus(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBlogStatusResponse(counts))
}

// Profile retorna o perfil de quem está logado
func (h *PageHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToProfileResponse(middleware.CurrentUser(c)))
}
