package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/services"
)

// UserContextKey guarda o usuário autenticado no contexto do Gin
const UserContextKey = "current_user"

// AuthMiddleware aplica o AuthorizationGuard às rotas da API
type AuthMiddleware struct {
	guard   *services.AuthorizationGuard
	cookies *CookieHelper
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(guard *services.AuthorizationGuard, cookies *CookieHelper) *AuthMiddleware {
	return &AuthMiddleware{guard: guard, cookies: cookies}
}

// RequireAdmin exige um administrador; o papel vem do banco, nunca do cookie de dica
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := m.guard.RequireAdmin(c.Request.Context(), m.cookies.SessionToken(c))
		if !decision.OK {
			c.AbortWithStatusJSON(decision.Status, gin.H{"error": decision.Message})
			return
		}

		c.Set(UserContextKey, decision.User)
		c.Next()
	}
}

// RequireSession exige qualquer usuário autenticado
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := m.guard.ResolveIdentity(c.Request.Context(), m.cookies.SessionToken(c))
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrUnauthorized.Message})
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// CurrentUser retorna o usuário colocado no contexto por RequireAdmin ou RequireSession
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}
