package repositories

import (
	"context"

	"github.com/rafabene/backoffice/internal/domain/entities"
)

// ActivityFilters contém filtros para leitura do log de auditoria
type ActivityFilters struct {
	Action *entities.ActivityAction
	Page   int
	Limit  int
}

// ActivityRepository só acrescenta e lê; entradas nunca são alteradas ou removidas
type ActivityRepository interface {
	Create(ctx context.Context, entry *entities.ActivityLog) error
	List(ctx context.Context, filters ActivityFilters) (ListResult[*entities.ActivityLog], error)
	Count(ctx context.Context) (int64, error)
}
