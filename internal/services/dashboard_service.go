package services

import (
	"context"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/errors"
)

// recentActivityLimit é o número de entradas no resumo do dashboard
const recentActivityLimit = 5

// DashboardSummary agrega os números da página inicial do painel
type DashboardSummary struct {
	UserCount      int64
	BlogCount      int64
	BlogsByStatus  map[entities.BlogStatus]int64
	RecentActivity []ActivityView
}

// DashboardService monta os dados das páginas do painel
type DashboardService struct {
	users    *UserService
	blogs    *BlogService
	activity *ActivityService
}

// NewDashboardService cria um novo DashboardService
func NewDashboardService(users *UserService, blogs *BlogService, activity *ActivityService) *DashboardService {
	return &DashboardService{users: users, blogs: blogs, activity: activity}
}

// Summary retorna contagens; a atividade recente só entra quando viewer é admin
func (s *DashboardService) Summary(ctx context.Context, viewer *entities.User) (*DashboardSummary, error) {
	userCount, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.blogs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var blogCount int64
	for _, n := range byStatus {
		blogCount += n
	}

	summary := &DashboardSummary{
		UserCount:     userCount,
		BlogCount:     blogCount,
		BlogsByStatus: byStatus,
	}
	if viewer == nil || !viewer.IsAdmin() {
		return summary, nil
	}

	summary.RecentActivity, err = s.activity.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return summary, nil
}
