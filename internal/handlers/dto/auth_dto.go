package dto

import (
	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/services"
)

// RegisterRequest representa o auto-cadastro
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// ToInput converte para o input do serviço
func (r RegisterRequest) ToInput() services.RegisterInput {
	return services.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
		Password:  r.Password,
	}
}

// LoginRequest representa as credenciais de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest inicia a redefinição de senha
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest conclui a redefinição de senha
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ProfileResponse é o perfil do próprio usuário
type ProfileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl"`
}

// LoginResponse é devolvida junto com os cookies de sessão
type LoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresIn int64        `json:"expiresIn"` // segundos
}

// ToProfileResponse converte uma entidade User para ProfileResponse
func ToProfileResponse(user *entities.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Email:     user.Email.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      string(user.Role),
		AvatarURL: user.AvatarURL,
	}
}
