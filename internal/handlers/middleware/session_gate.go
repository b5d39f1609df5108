package middleware

import (
	"net/http"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
)

const (
	LoginPath   = "/login"
	ProfilePath = "/profile"
)

// GateRule protege um padrão de caminho; RequiredRole vazio aceita qualquer sessão válida
type GateRule struct {
	Pattern      string
	RequiredRole entities.Role
}

// DefaultGateRules são as páginas protegidas do painel.
// A regra mais específica vem primeiro: a primeira que casar decide.
func DefaultGateRules() []GateRule {
	return []GateRule{
		{Pattern: "/dashboard/blogs", RequiredRole: entities.RoleAdmin},
		{Pattern: "/dashboard/blogs/**", RequiredRole: entities.RoleAdmin},
		{Pattern: "/dashboard/users", RequiredRole: entities.RoleAdmin},
		{Pattern: "/dashboard/users/**", RequiredRole: entities.RoleAdmin},
		{Pattern: "/dashboard/activity", RequiredRole: entities.RoleAdmin},
		{Pattern: "/dashboard"},
		{Pattern: "/dashboard/**"},
		{Pattern: ProfilePath},
	}
}

// SessionGate redireciona requisições de páginas sem sessão válida.
// Não renova tokens nem consulta o banco: o papel vem do cookie de dica.
type SessionGate struct {
	rules   []GateRule
	tokens  security.TokenService
	cookies *CookieHelper
	logger  ports.Logger
}

// NewSessionGate cria um novo SessionGate; padrões inválidos são rejeitados na criação
func NewSessionGate(rules []GateRule, tokens security.TokenService, cookies *CookieHelper, logger ports.Logger) (*SessionGate, error) {
	for _, rule := range rules {
		if !doublestar.ValidatePattern(rule.Pattern) {
			return nil, doublestar.ErrBadPattern
		}
	}
	return &SessionGate{rules: rules, tokens: tokens, cookies: cookies, logger: logger}, nil
}

// Handler retorna o middleware gin
func (g *SessionGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, ok := g.match(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}

		token := g.cookies.SessionToken(c)
		if token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if _, err := g.tokens.Verify(token); err != nil {
			g.logger.Debug("session gate rejected token", "path", c.Request.URL.Path, "error", err)
			// Cookie inválido some para não causar loop de redirecionamento
			g.cookies.ClearSession(c)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		if rule.RequiredRole != "" && entities.Role(g.cookies.RoleHint(c)) != rule.RequiredRole {
			c.Redirect(http.StatusFound, ProfilePath)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (g *SessionGate) match(path string) (GateRule, bool) {
	for _, rule := range g.rules {
		if ok, _ := doublestar.Match(rule.Pattern, path); ok {
			return rule, true
		}
	}
	return GateRule{}, false
}
