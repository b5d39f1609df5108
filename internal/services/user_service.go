package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo    repositories.UserRepository
	credentials *security.CredentialService
	recorder    *ActivityRecorder
	logger      ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	credentials *security.CredentialService,
	recorder *ActivityRecorder,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		credentials: credentials,
		recorder:    recorder,
		logger:      logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
	Role      string
	AvatarURL string
}

// UpdateUserInput representa os dados editáveis de um usuário; a senha não muda aqui
type UpdateUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Role      string
	AvatarURL string
}

// CreateUser cria um novo usuário
func (s *UserService) CreateUser(ctx context.Context, actor *entities.User, input CreateUserInput) (*entities.User, error) {
	if blank(input.FirstName, input.LastName, input.Phone, input.Email, input.Password) {
		return nil, errors.ErrMissingRequiredField
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	if len(input.Password) < MinPasswordLength {
		return nil, errors.ErrPasswordTooShort
	}

	s.logger.Info("creating user", "actor_id", actor.ID)

	// Validar se email já existe
	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, errors.Internal(err)
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
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
		Role:         entities.ParseRole(input.Role),
		AvatarURL:    strings.TrimSpace(input.AvatarURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, errors.ErrEmailAlreadyExists
		}
		return nil, errors.Internal(err)
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionUserCreated,
		ActorUserID:  actor.ID,
		TargetUserID: user.ID,
		ResourceType: entities.ResourceUser,
		ResourceID:   user.ID,
		Description:  describeUser(user, "created"),
	})

	return user, nil
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, rawID string) (*entities.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// UpdateUser altera dados de perfil e papel
func (s *UserService) UpdateUser(ctx context.Context, actor *entities.User, rawID string, input UpdateUserInput) (*entities.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	if blank(input.FirstName, input.LastName, input.Phone, input.Email) {
		return nil, errors.ErrAllFieldsRequired
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	if email.String() != user.Email.String() {
		existing, err := s.userRepo.FindByEmail(ctx, email.String())
		if err != nil {
			return nil, errors.Internal(err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, errors.ErrEmailAlreadyExists
		}
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Phone = strings.TrimSpace(input.Phone)
	user.Email = email
	user.Role = entities.ParseRole(input.Role)
	user.AvatarURL = strings.TrimSpace(input.AvatarURL)
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case isNotFound(err):
			return nil, errors.ErrUserNotFound
		case isDuplicate(err):
			return nil, errors.ErrEmailAlreadyExists
		default:
			return nil, errors.Internal(err)
		}
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionUserUpdated,
		ActorUserID:  actor.ID,
		TargetUserID: user.ID,
		ResourceType: entities.ResourceUser,
		ResourceID:   user.ID,
		Description:  describeUser(user, "updated"),
	})

	return user, nil
}

// DeleteUser remove um usuário; entradas de auditoria que o referenciam ficam órfãs
func (s *UserService) DeleteUser(ctx context.Context, actor *entities.User, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return errors.Internal(err)
	}
	if user == nil {
		return errors.ErrUserNotFound
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return errors.Internal(err)
	}
	if !deleted {
		return errors.ErrUserNotFound
	}

	s.recorder.Record(ctx, ActivityInput{
		Action:       entities.ActionUserDeleted,
		ActorUserID:  actor.ID,
		TargetUserID: user.ID,
		ResourceType: entities.ResourceUser,
		ResourceID:   user.ID,
		Description:  describeUser(user, "deleted"),
	})
	return nil
}

// BulkDeleteUsers remove vários usuários; IDs inexistentes são ignorados.
// O retorno é o número de IDs pedidos, não o de registros removidos.
func (s *UserService) BulkDeleteUsers(ctx context.Context, actor *entities.User, rawIDs []string) (int, error) {
	if len(rawIDs) == 0 {
		return 0, errors.ErrNoIDsProvided
	}

	ids := validIDs(rawIDs)
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return 0, errors.Internal(err)
	}

	if _, err := s.userRepo.DeleteByIDs(ctx, ids); err != nil {
		return 0, errors.Internal(err)
	}

	for _, user := range users {
		s.recorder.Record(ctx, ActivityInput{
			Action:       entities.ActionUserDeleted,
			ActorUserID:  actor.ID,
			TargetUserID: user.ID,
			ResourceType: entities.ResourceUser,
			ResourceID:   user.ID,
			Description:  describeUser(user, "deleted via bulk delete"),
		})
	}

	s.logger.Info("users bulk deleted", "actor_id", actor.ID, "requested", len(rawIDs), "found", len(users))
	return len(rawIDs), nil
}

// ListUsers lista usuários com busca, ordenação e paginação
func (s *UserService) ListUsers(ctx context.Context, query repositories.ListQuery) (repositories.ListResult[*entities.User], error) {
	result, err := s.userRepo.List(ctx, query)
	if err != nil {
		return result, errors.Internal(err)
	}
	return result, nil
}

// CountUsers retorna o total de usuários
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, errors.Internal(err)
	}
	return count, nil
}

func describeUser(user *entities.User, verb string) string {
	return fmt.Sprintf("User %s %s (%s) %s", user.FirstName, user.LastName, user.Email.String(), verb)
}
