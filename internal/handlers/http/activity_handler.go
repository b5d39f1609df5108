package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
	"github.com/rafabene/backoffice/internal/services"
)

// ActivityHandler expõe o log de auditoria
type ActivityHandler struct {
	activityService *services.ActivityService
	stream          http.Handler
	logger          ports.Logger
}

// NewActivityHandler cria um novo ActivityHandler; stream é o hub websocket
func NewActivityHandler(activityService *services.ActivityService, stream http.Handler, logger ports.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		stream:          stream,
		logger:          logger,
	}
}

// ListActivity godoc
// @Summary List audit entries
// @Description Newest first, with actor and target resolved; deleted users render as null
// @Tags activity
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size (default 50)"
// @Param action query string false "Filter by action"
// @Success 200 {object} dto.ActivityListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	var params dto.ActivityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, errors.Validation("Invalid activity filter"))
		return
	}

	result, err := h.activityService.List(c.Request.Context(), params.Page, params.Limit, params.Action)
	if err != nil {
		respondError(c, h.logger, errors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToActivityListResponse(result))
}

// StreamActivity godoc
// @Summary Live audit feed
// @Description Websocket pushing each new audit entry as JSON
// @Tags activity
// @Success 101
// @Router /activity/stream [get]
func (h *ActivityHandler) StreamActivity(c *gin.Context) {
	h.stream.ServeHTTP(c.Writer, c.Request)
}
