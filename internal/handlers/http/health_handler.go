package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/services"
)

const healthTimeout = 3 * time.Second

// Pinger verifica a conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde o health check
type HealthHandler struct {
	db     Pinger
	users  *services.UserService
	env    string
	logger ports.Logger
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(db Pinger, users *services.UserService, env string, logger ports.Logger) *HealthHandler {
	return &HealthHandler{db: db, users: users, env: env, logger: logger}
}

// Health godoc
// @Summary Health check
// @Description Pings the database and reports the user count
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Database connection failed"})
		return
	}

	count, err := h.users.CountUsers(ctx)
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Database connection failed"})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Env: h.env, UserCount: count})
}
