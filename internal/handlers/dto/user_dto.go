package dto

import (
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/services"
)

// CreateUserRequest representa a requisição para criar um usuário.
// Formato do email e tamanho da senha são validados no serviço.
type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// ToInput converte para o input do serviço
func (r CreateUserRequest) ToInput() services.CreateUserInput {
	return services.CreateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		AvatarURL: r.AvatarURL,
	}
}

// UpdateUserRequest representa a requisição para atualizar um usuário
type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// ToInput converte para o input do serviço
func (r UpdateUserRequest) ToInput() services.UpdateUserInput {
	return services.UpdateUserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Role:      r.Role,
		AvatarURL: r.AvatarURL,
	}
}

// UserResponse é o formato público de um usuário; hash e token de reset nunca saem daqui
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserListResponse é a página de usuários
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email.String(),
		Phone:     user.Phone,
		AvatarURL: user.AvatarURL,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

// ToUserListResponse converte uma página de usuários
func ToUserListResponse(result repositories.ListResult[*entities.User]) UserListResponse {
	return UserListResponse{
		Users: ToUserResponses(result.Items),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
}
