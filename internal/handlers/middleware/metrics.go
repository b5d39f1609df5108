package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver recebe a duração de cada requisição
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics mede as requisições pelo padrão da rota, não pelo caminho, para manter a cardinalidade baixa
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
