package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/infrastructure/config"
)

const (
	// SessionCookie carrega o token de sessão (httpOnly)
	SessionCookie = "auth_token"
	// RoleCookie é só uma dica de papel para a interface; nunca decide autorização
	RoleCookie = "user_role"
)

// CookieHelper gerencia os cookies de sessão
type CookieHelper struct {
	config config.CookieConfig
}

// NewCookieHelper cria um novo CookieHelper
func NewCookieHelper(cfg config.CookieConfig) *CookieHelper {
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &CookieHelper{config: cfg}
}

// SetSession grava o token e a dica de papel com a mesma validade
func (h *CookieHelper) SetSession(c *gin.Context, token, role string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	h.setCookie(c, SessionCookie, token, maxAge, true)
	h.setCookie(c, RoleCookie, role, maxAge, false)
}

// ClearSession remove os dois cookies
func (h *CookieHelper) ClearSession(c *gin.Context) {
	h.setCookie(c, SessionCookie, "", -1, true)
	h.setCookie(c, RoleCookie, "", -1, false)
}

// SessionToken retorna o token de sessão, ou "" se ausente
func (h *CookieHelper) SessionToken(c *gin.Context) string {
	return cookieValue(c, SessionCookie)
}

// RoleHint retorna a dica de papel, ou "" se ausente
func (h *CookieHelper) RoleHint(c *gin.Context) string {
	return cookieValue(c, RoleCookie)
}

func (h *CookieHelper) setCookie(c *gin.Context, name, value string, maxAge int, httpOnly bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, h.config.Path, h.config.Domain, h.config.Secure, httpOnly)
}

func cookieValue(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}
