package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
)

// ActivityDefaultLimit é o tamanho de página padrão do log de auditoria
const ActivityDefaultLimit = 50

// ActivityRepository implementa repositories.ActivityRepository
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository cria um novo ActivityRepository
func NewActivityRepository(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, entry *entities.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = valueobjects.NewID()
	}

	model := &ActivityLogModel{
		ID:           entry.ID,
		Action:       string(entry.Action),
		ActorUserID:  entry.ActorUserID,
		TargetUserID: entry.TargetUserID,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Description:  entry.Description,
		CreatedAt:    toNanos(entry.CreatedAt),
	}

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	entry.CreatedAt = fromNanos(model.CreatedAt)
	return nil
}

func (r *ActivityRepository) List(ctx context.Context, filters repositories.ActivityFilters) (repositories.ListResult[*entities.ActivityLog], error) {
	page := filters.Page
	if page < 1 {
		page = repositories.DefaultPage
	}
	limit := filters.Limit
	if limit < 1 || limit > repositories.MaxLimit {
		limit = ActivityDefaultLimit
	}
	result := repositories.ListResult[*entities.ActivityLog]{Page: page, Limit: limit}

	db := dbFromContext(ctx, r.db)
	filter := func(tx *gorm.DB) *gorm.DB {
		if filters.Action != nil {
			return tx.Where("action = ?", string(*filters.Action))
		}
		return tx
	}

	if err := db.Model(&ActivityLogModel{}).Scopes(filter).Count(&result.Total).Error; err != nil {
		return result, err
	}

	var models []*ActivityLogModel
	err := db.Scopes(filter).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&models).Error
	if err != nil {
		return result, err
	}

	result.Items = make([]*entities.ActivityLog, 0, len(models))
	for _, model := range models {
		result.Items = append(result.Items, &entities.ActivityLog{
			ID:           model.ID,
			Action:       entities.ActivityAction(model.Action),
			ActorUserID:  model.ActorUserID,
			TargetUserID: model.TargetUserID,
			ResourceType: model.ResourceType,
			ResourceID:   model.ResourceID,
			Description:  model.Description,
			CreatedAt:    fromNanos(model.CreatedAt),
		})
	}
	return result, nil
}

func (r *ActivityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	db := dbFromContext(ctx, r.db)
	err := db.Model(&ActivityLogModel{}).Count(&count).Error
	return count, err
}
