package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
)

var userSortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"createdAt": "created_at",
}

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = valueobjects.NewID()
	}
	model := r.toModel(user)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return translateError(err)
	}

	user.CreatedAt = fromNanos(model.CreatedAt)
	user.UpdatedAt = fromNanos(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*entities.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.findOne(ctx, "reset_token = ? AND reset_token_expiry > ?", token, now.UnixNano())
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []*UserModel
	db := dbFromContext(ctx, r.db)
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}

	return r.toEntities(models)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := dbFromContext(ctx, r.db)
	result := db.Model(&UserModel{ID: user.ID}).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	user.UpdatedAt = fromNanos(model.UpdatedAt)
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	db := dbFromContext(ctx, r.db)
	return db.Model(&UserModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry.UnixNano(),
	}).Error
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error) {
	db := dbFromContext(ctx, r.db)
	// Escrita condicional: só uma requisição concorrente consegue consumir o token
	result := db.Model(&UserModel{}).
		Where("id = ? AND reset_token = ? AND reset_token_expiry > ?", id, token, now.UnixNano()).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db := dbFromContext(ctx, r.db)
	result := db.Where("id IN ?", ids).Delete(&UserModel{})
	return result.RowsAffected, result.Error
}

func (r *UserRepository) List(ctx context.Context, query repositories.ListQuery) (repositories.ListResult[*entities.User], error) {
	query = repositories.NormalizeListQuery(query, repositories.UserSortFields)
	result := repositories.ListResult[*entities.User]{Page: query.Page, Limit: query.Limit}

	db := dbFromContext(ctx, r.db)
	search := searchScope(query.Search, "first_name", "last_name", "email", "phone")

	if err := db.Model(&UserModel{}).Scopes(search).Count(&result.Total).Error; err != nil {
		return result, err
	}

	var models []*UserModel
	err := db.Scopes(search, orderScope(userSortColumns[query.SortField], query.SortOrder), pageScope(query)).
		Find(&models).Error
	if err != nil {
		return result, err
	}

	items, err := r.toEntities(models)
	if err != nil {
		return result, err
	}
	result.Items = items
	return result, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := dbFromContext(ctx, r.db)
	err := db.Model(&UserModel{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) findOne(ctx context.Context, where string, args ...interface{}) (*entities.User, error) {
	var model UserModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where(where, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Phone:            user.Phone,
		Email:            user.Email.String(),
		PasswordHash:     user.PasswordHash,
		Role:             string(user.Role),
		AvatarURL:        user.AvatarURL,
		ResetToken:       user.ResetToken,
		ResetTokenExpiry: optionalNanos(user.ResetTokenExpiry),
		CreatedAt:        toNanos(user.CreatedAt),
		UpdatedAt:        toNanos(user.UpdatedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:               model.ID,
		FirstName:        model.FirstName,
		LastName:         model.LastName,
		Phone:            model.Phone,
		Email:            email,
		PasswordHash:     model.PasswordHash,
		Role:             entities.ParseRole(model.Role),
		AvatarURL:        model.AvatarURL,
		ResetToken:       model.ResetToken,
		ResetTokenExpiry: optionalTime(model.ResetTokenExpiry),
		CreatedAt:        fromNanos(model.CreatedAt),
		UpdatedAt:        fromNanos(model.UpdatedAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
