package dto

import (
	"time"

	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/services"
)

// ActivityParams são os filtros da listagem de auditoria
type ActivityParams struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Action string `form:"action" binding:"omitempty,oneof=user_created user_updated user_deleted blog_created blog_updated blog_deleted"`
}

// UserRefResponse identifica ator ou alvo; null quando a referência ficou órfã
type UserRefResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ActivityResponse é uma entrada do log de auditoria
type ActivityResponse struct {
	ID           string           `json:"id"`
	Action       string           `json:"action"`
	Description  string           `json:"description"`
	ResourceType string           `json:"resourceType,omitempty"`
	ResourceID   string           `json:"resourceId,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	Actor        *UserRefResponse `json:"actor"`
	Target       *UserRefResponse `json:"target"`
}

// ActivityListResponse é a página do log
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Total int64              `json:"total"`
	Pages int                `json:"pages"`
}

// ToActivityResponse converte uma entrada resolvida
func ToActivityResponse(view services.ActivityView) ActivityResponse {
	return ActivityResponse{
		ID:           view.Entry.ID,
		Action:       string(view.Entry.Action),
		Description:  view.Entry.Description,
		ResourceType: view.Entry.ResourceType,
		ResourceID:   view.Entry.ResourceID,
		CreatedAt:    view.Entry.CreatedAt,
		Actor:        toUserRef(view.Actor),
		Target:       toUserRef(view.Target),
	}
}

// ToActivityResponses converte uma lista de entradas
func ToActivityResponses(views []services.ActivityView) []ActivityResponse {
	responses := make([]ActivityResponse, len(views))
	for i, view := range views {
		responses[i] = ToActivityResponse(view)
	}
	return responses
}

// ToActivityListResponse converte uma página do log
func ToActivityListResponse(result repositories.ListResult[services.ActivityView]) ActivityListResponse {
	return ActivityListResponse{
		Items: ToActivityResponses(result.Items),
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
		Pages: result.Pages(),
	}
}

func toUserRef(ref *services.UserRef) *UserRefResponse {
	if ref == nil {
		return nil
	}
	return &UserRefResponse{Name: ref.Name, Email: ref.Email}
}
