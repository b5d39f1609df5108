package services

import (
	"context"
	"net/http"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
)

// AdminDecision é o resultado da checagem de administrador
type AdminDecision struct {
	OK      bool
	User    *entities.User
	Status  int
	Message string
}

// AuthorizationGuard resolve a identidade do token e consulta o papel atual no banco.
// O cookie de papel nunca é usado aqui.
type AuthorizationGuard struct {
	tokens   security.TokenService
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewAuthorizationGuard cria um novo AuthorizationGuard
func NewAuthorizationGuard(
	tokens security.TokenService,
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *AuthorizationGuard {
	return &AuthorizationGuard{
		tokens:   tokens,
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveIdentity retorna o usuário dono do token, ou nil para qualquer falha
func (g *AuthorizationGuard) ResolveIdentity(ctx context.Context, token string) *entities.User {
	if token == "" {
		return nil
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("session token rejected", "error", err)
		return nil
	}
	if !valueobjects.IsValidID(claims.UserID) {
		return nil
	}

	user, err := g.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		g.logger.Error("failed to resolve session user", "user_id", claims.UserID, "error", err)
		return nil
	}
	return user
}

// RequireAdmin decide se o portador do token pode usar rotas administrativas
func (g *AuthorizationGuard) RequireAdmin(ctx context.Context, token string) AdminDecision {
	user := g.ResolveIdentity(ctx, token)
	if user == nil {
		return AdminDecision{Status: http.StatusUnauthorized, Message: errors.ErrUnauthorized.Message}
	}
	if !user.IsAdmin() {
		return AdminDecision{User: user, Status: http.StatusForbidden, Message: errors.ErrForbidden.Message}
	}
	return AdminDecision{OK: true, User: user, Status: http.StatusOK}
}
