package services

import (
	"context"
	"strings"
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
)

// MinPasswordLength é o tamanho mínimo de senha em todos os fluxos
const MinPasswordLength = 6

// AuthService contém registro, login e leitura do próprio perfil
type AuthService struct {
	userRepo    repositories.UserRepository
	credentials *security.CredentialService
	tokens      security.TokenService
	logger      ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	credentials *security.CredentialService,
	tokens security.TokenService,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterInput representa os dados de auto-cadastro
type RegisterInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
}

// Session é o resultado de um login bem-sucedido
type Session struct {
	User      *entities.User
	Token     string
	ExpiresIn time.Duration
}

// Register cria um usuário comum
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	if blank(input.FirstName, input.LastName, input.Phone, input.Email, input.Password) ||
		len(input.Password) < MinPasswordLength {
		return nil, errors.ErrRegistrationInvalid
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, errors.Internal(err)
	}
	if existing != nil {
		return nil, errors.ErrEmailRegistered
	}

	hash, err := s.credentials.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal(err)
	}

	now := time.Now().UTC()
	user := &entities.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, errors.ErrEmailRegistered
		}
		return nil, errors.Internal(err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login valida as credenciais e emite o token de sessão.
// E-mail desconhecido e senha errada produzem o mesmo erro.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil || !s.credentials.Verify(password, user.PasswordHash) {
		s.logger.Info("login failed")
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &Session{User: user, Token: token, ExpiresIn: s.tokens.TTL()}, nil
}

// Me retorna o usuário do token de sessão
func (s *AuthService) Me(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, errors.ErrNoSessionToken
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, errors.ErrInvalidSession
	}

	if !valueobjects.IsValidID(claims.UserID) {
		return nil, errors.ErrInvalidSession
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
