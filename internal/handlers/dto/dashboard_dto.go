package dto

import "github.com/rafabene/backoffice/internal/services"

// DashboardResponse alimenta a página inicial do painel
type DashboardResponse struct {
	UserCount      int64              `json:"userCount"`
	Blogs          BlogStatusResponse `json:"blogs"`
	RecentActivity []ActivityResponse `json:"recentActivity,omitempty"`
}

// ToDashboardResponse converte o resumo do painel
func ToDashboardResponse(summary *services.DashboardSummary) DashboardResponse {
	resp := DashboardResponse{
		UserCount: summary.UserCount,
		Blogs:     ToBlogStatusResponse(summary.BlogsByStatus),
	}
	if summary.RecentActivity != nil {
		resp.RecentActivity = ToActivityResponses(summary.RecentActivity)
	}
	return resp
}

// HealthResponse é o resultado do health check
type HealthResponse struct {
	Status    string `json:"status"`
	Env       string `json:"env"`
	UserCount int64  `json:"userCount"`
}
