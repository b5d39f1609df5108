package entities

import "time"

// ActivityAction identifica o tipo de mutação auditada
type ActivityAction string

const (
	ActionUserCreated ActivityAction = "user_created"
	ActionUserUpdated ActivityAction = "user_updated"
	ActionUserDeleted ActivityAction = "user_deleted"
	ActionBlogCreated ActivityAction = "blog_created"
	ActionBlogUpdated ActivityAction = "blog_updated"
	ActionBlogDeleted ActivityAction = "blog_deleted"
)

// Tipos de recurso afetados por uma entrada de auditoria
const (
	ResourceUser = "user"
	ResourceBlog = "blog"
)

// ActivityLog é uma entrada imutável do log de auditoria.
// ActorUserID e TargetUserID são referências fracas: podem apontar para usuários já removidos.
type ActivityLog struct {
	ID           string
	Action       ActivityAction
	ActorUserID  *string
	TargetUserID *string
	ResourceType string
	ResourceID   string
	Description  string
	CreatedAt    time.Time
}
