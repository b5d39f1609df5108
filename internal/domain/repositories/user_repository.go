package repositories

import (
	"context"
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
)

// UserSortFields são os campos aceitos para ordenar usuários
var UserSortFields = []string{"firstName", "lastName", "email", "createdAt"}

// UserRepository define a interface para persistência de usuários.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// ConsumeResetToken troca a senha e limpa token/validade numa única escrita condicional.
	// Retorna false se o token já não for válido para o usuário.
	ConsumeResetToken(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	List(ctx context.Context, query ListQuery) (ListResult[*entities.User], error)
	Count(ctx context.Context) (int64, error)
}
