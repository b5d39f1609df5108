package services

import (
	"context"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
)

// UserRef é o resumo de um usuário referenciado pela auditoria
type UserRef struct {
	Name  string
	Email string
}

// ActivityView é uma entrada de auditoria com ator e alvo resolvidos.
// Actor/Target são nil quando a referência está vazia ou o usuário foi removido.
type ActivityView struct {
	Entry  *entities.ActivityLog
	Actor  *UserRef
	Target *UserRef
}

// ActivityService lê o log de auditoria
type ActivityService struct {
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
	logger       ports.Logger
}

// NewActivityService cria um novo ActivityService
func NewActivityService(
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// List retorna uma página do log, mais recentes primeiro, com uma única busca de usuários
func (s *ActivityService) List(ctx context.Context, page, limit int, action string) (repositories.ListResult[ActivityView], error) {
	filters := repositories.ActivityFilters{Page: page, Limit: limit}
	if action != "" {
		a := entities.ActivityAction(action)
		filters.Action = &a
	}

	entries, err := s.activityRepo.List(ctx, filters)
	if err != nil {
		return repositories.ListResult[ActivityView]{}, err
	}

	ids := make([]string, 0, len(entries.Items)*2)
	seen := make(map[string]struct{})
	for _, e := range entries.Items {
		for _, ref := range []*string{e.ActorUserID, e.TargetUserID} {
			if ref == nil {
				continue
			}
			if _, ok := seen[*ref]; ok {
				continue
			}
			seen[*ref] = struct{}{}
			ids = append(ids, *ref)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return repositories.ListResult[ActivityView]{}, err
	}
	byID := make(map[string]*UserRef, len(users))
	for _, u := range users {
		byID[u.ID] = &UserRef{Name: u.FullName(), Email: u.Email.String()}
	}

	resolve := func(ref *string) *UserRef {
		if ref == nil {
			return nil
		}
		return byID[*ref]
	}

	result := repositories.ListResult[ActivityView]{
		Items: make([]ActivityView, 0, len(entries.Items)),
		Total: entries.Total,
		Page:  entries.Page,
		Limit: entries.Limit,
	}
	for _, e := range entries.Items {
		result.Items = append(result.Items, ActivityView{
			Entry:  e,
			Actor:  resolve(e.ActorUserID),
			Target: resolve(e.TargetUserID),
		})
	}
	return result, nil
}

// Recent retorna as últimas entradas para o resumo do dashboard
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]ActivityView, error) {
	page, err := s.List(ctx, 1, limit, "")
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
