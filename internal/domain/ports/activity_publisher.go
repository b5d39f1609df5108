package ports

import "github.com/rafabene/backoffice/internal/domain/entities"

// ActivityPublisher recebe entradas de auditoria recém-gravadas (ex.: feed em tempo real).
// Publish não pode bloquear quem grava a auditoria.
type ActivityPublisher interface {
	Publish(entry *entities.ActivityLog)
}
