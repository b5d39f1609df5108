package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/rafabene/backoffice/internal/domain/valueobjects"
)

var (
	ErrInvalidUserData = errors.New("invalid user data")
)

// User representa um usuário do sistema
type User struct {
	ID               string
	FirstName        string
	LastName         string
	Phone            string
	Email            valueobjects.Email
	PasswordHash     string
	Role             Role
	AvatarURL        string
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName retorna "Nome Sobrenome"
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// GetPermissions retorna todas as permissões do usuário
func (u *User) GetPermissions() []string {
	perms := u.Role.GetPermissions()
	result := make([]string, len(perms))
	for i, p := range perms {
		result[i] = string(p)
	}
	return result
}

// SetResetToken associa um token de redefinição com validade
func (u *User) SetResetToken(token string, expiry time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
}

// ClearResetToken remove o token de redefinição e sua validade
func (u *User) ClearResetToken() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}

// HasValidResetToken verifica se o token confere e ainda não expirou (expiração estritamente no futuro)
func (u *User) HasValidResetToken(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil || token == "" {
		return false
	}
	return *u.ResetToken == token && u.ResetTokenExpiry.After(now)
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return errors.New("email is required")
	}

	if strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return errors.New("name is required")
	}

	if strings.TrimSpace(u.Phone) == "" {
		return errors.New("phone is required")
	}

	if !u.Role.IsValid() {
		return errors.New("invalid role")
	}

	return nil
}
