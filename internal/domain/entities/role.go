package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Permission representa uma permissão específica
type Permission string

const (
	// User permissions
	PermissionUserRead   Permission = "users.read"
	PermissionUserWrite  Permission = "users.write"
	PermissionUserDelete Permission = "users.delete"

	// Blog permissions
	PermissionBlogRead   Permission = "blogs.read"
	PermissionBlogWrite  Permission = "blogs.write"
	PermissionBlogDelete Permission = "blogs.delete"

	// Activity permissions
	PermissionActivityRead Permission = "activity.read"

	// Profile permissions
	PermissionProfileRead Permission = "profile.read"
)

// RolePermissions mapeia roles para suas permissões
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionUserRead,
		PermissionUserWrite,
		PermissionUserDelete,
		PermissionBlogRead,
		PermissionBlogWrite,
		PermissionBlogDelete,
		PermissionActivityRead,
		PermissionProfileRead,
	},
	RoleUser: {
		PermissionProfileRead,
	},
}

// ParseRole normaliza um papel vindo de fora; qualquer valor diferente de "admin" vira "user"
func ParseRole(value string) Role {
	if Role(value) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// IsValid verifica se o role é conhecido
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// GetPermissions retorna permissões de um role
func (r Role) GetPermissions() []Permission {
	return RolePermissions[r]
}

// HasPermission verifica se role tem permissão
func (r Role) HasPermission(permission Permission) bool {
	permissions := RolePermissions[r]
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
