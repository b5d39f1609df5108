package services

import (
	"context"
	"time"

	"github.com/rafabene/backoffice/internal/domain/entities"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
)

// Canais de efeitos colaterais best-effort
const (
	ChannelAudit    = "audit"
	ChannelMail     = "mail"
	ChannelRealtime = "realtime"
)

// SideEffectMetrics recebe contadores dos efeitos colaterais best-effort
type SideEffectMetrics interface {
	AuditRecorded(action string)
	SideChannelFailed(channel string)
}

type nopMetrics struct{}

func (nopMetrics) AuditRecorded(string)     {}
func (nopMetrics) SideChannelFailed(string) {}

// ActivityInput descreve uma mutação privilegiada a ser auditada.
// IDs vazios viram referências nulas.
type ActivityInput struct {
	Action       entities.ActivityAction
	ActorUserID  string
	TargetUserID string
	ResourceType string
	ResourceID   string
	Description  string
}

// ActivityRecorder grava o log de auditoria sem nunca falhar a operação que o chamou
type ActivityRecorder struct {
	activityRepo repositories.ActivityRepository
	publisher    ports.ActivityPublisher
	metrics      SideEffectMetrics
	logger       ports.Logger
}

// NewActivityRecorder cria um novo ActivityRecorder; publisher e metrics são opcionais
func NewActivityRecorder(
	activityRepo repositories.ActivityRepository,
	publisher ports.ActivityPublisher,
	metrics SideEffectMetrics,
	logger ports.Logger,
) *ActivityRecorder {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ActivityRecorder{
		activityRepo: activityRepo,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
	}
}

// Record grava uma entrada; falhas são logadas e contadas, nunca retornadas
func (r *ActivityRecorder) Record(ctx context.Context, input ActivityInput) {
	entry := &entities.ActivityLog{
		Action:       input.Action,
		ActorUserID:  optionalID(input.ActorUserID),
		TargetUserID: optionalID(input.TargetUserID),
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		Description:  input.Description,
		CreatedAt:    time.Now().UTC(),
	}

	// A mutação já aconteceu: o cancelamento da requisição não deve perder a auditoria
	if err := r.activityRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		r.metrics.SideChannelFailed(ChannelAudit)
		r.logger.Error("failed to record activity",
			"action", input.Action,
			"resource_id", input.ResourceID,
			"error", err,
		)
		return
	}

	r.metrics.AuditRecorded(string(entry.Action))
	if r.publisher != nil {
		r.publisher.Publish(entry)
	}
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
