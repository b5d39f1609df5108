package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/infrastructure/security"
)

// ResetTokenTTLHours é a validade do token de redefinição
const ResetTokenTTLHours = 1

// PasswordResetService implementa o fluxo esqueci-minha-senha
type PasswordResetService struct {
	userRepo    repositories.UserRepository
	uow         ports.UnitOfWork
	credentials *security.CredentialService
	mailer      ports.Mailer
	metrics     SideEffectMetrics
	appURL      string
	logger      ports.Logger
}

// NewPasswordResetService cria um novo PasswordResetService
func NewPasswordResetService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	credentials *security.CredentialService,
	mailer ports.Mailer,
	metrics SideEffectMetrics,
	appURL string,
	logger ports.Logger,
) *PasswordResetService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &PasswordResetService{
		userRepo:    userRepo,
		uow:         uow,
		credentials: credentials,
		mailer:      mailer,
		metrics:     metrics,
		appURL:      strings.TrimSuffix(appURL, "/"),
		logger:      logger,
	}
}

// RequestReset gera e envia um link de redefinição.
// Só falha para e-mail vazio: e-mail desconhecido, erro de banco e erro de envio
// produzem a mesma resposta para não revelar quais contas existem.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("forgot password lookup failed", "error", err)
		return nil
	}
	if user == nil {
		s.logger.Debug("forgot password for unknown email")
		return nil
	}

	token, err := s.credentials.GenerateResetToken()
	if err != nil {
		s.logger.Error("failed to generate reset token", "error", err)
		return nil
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, s.credentials.ExpiryIn(ResetTokenTTLHours)); err != nil {
		s.logger.Error("failed to store reset token", "user_id", user.ID, "error", err)
		return nil
	}

	msg := ports.PasswordResetMessage{
		To:       user.Email.String(),
		ResetURL: s.appURL + "/reset-password?token=" + url.QueryEscape(token),
	}
	if err := s.mailer.SendPasswordReset(ctx, msg); err != nil {
		s.metrics.SideChannelFailed(ChannelMail)
		s.logger.Error("failed to send password reset email", "user_id", user.ID, "error", err)
		return nil
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ConsumeReset troca a senha usando um token válido; o token só pode ser usado uma vez
func (s *PasswordResetService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || len(newPassword) < MinPasswordLength {
		return errors.ErrResetInputInvalid
	}

	hash, err := s.credentials.Hash(newPassword)
	if err != nil {
		return errors.Internal(err)
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()

		user, err := s.userRepo.FindByValidResetToken(txCtx, token, now)
		if err != nil {
			return errors.Internal(err)
		}
		if user == nil {
			return errors.ErrInvalidResetToken
		}

		consumed, err := s.userRepo.ConsumeResetToken(txCtx, user.ID, token, hash, now)
		if err != nil {
			return errors.Internal(err)
		}
		if !consumed {
			return errors.ErrInvalidResetToken
		}

		s.logger.Info("password reset completed", "user_id", user.ID)
		return nil
	})
}
