package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/handlers/dto"
)

// respondError escreve o erro de domínio; erros internos são logados e nunca expostos
func respondError(c *gin.Context, logger ports.Logger, err error) {
	if de, ok := errors.As(err); !ok || de.Kind == errors.KindInternal {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}

	status, response := dto.NewErrorResponse(c, err)
	c.JSON(status, response)
}

// respondBindError escreve a falha de binding usando a mensagem do endpoint
func respondBindError(c *gin.Context, err error, fallback *errors.DomainError) {
	status, response := dto.BindErrorResponse(c, err, fallback)
	c.JSON(status, response)
}
