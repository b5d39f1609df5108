package repositories

import (
	"context"

	"github.com/rafabene/backoffice/internal/domain/entities"
)

// BlogSortFields são os campos aceitos para ordenar posts
var BlogSortFields = []string{"createdAt", "updatedAt", "publishedAt", "title", "slug", "status"}

// BlogRepository define a interface para persistência de posts
type BlogRepository interface {
	Create(ctx context.Context, post *entities.BlogPost) error
	FindByID(ctx context.Context, id string) (*entities.BlogPost, error)
	FindByIDs(ctx context.Context, ids []string) ([]*entities.BlogPost, error)
	// ExistsBySlug ignora o post excludeID (vazio para não ignorar nenhum)
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, post *entities.BlogPost) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	List(ctx context.Context, query ListQuery) (ListResult[*entities.BlogPost], error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[entities.BlogStatus]int64, error)
}
