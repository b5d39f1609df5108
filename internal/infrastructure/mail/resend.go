// Package mail entrega e-mails transacionais.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/infrastructure/config"
)

const passwordResetSubject = "Reset your password"

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(
	`<p>You requested a password reset.</p>` +
		`<p><a href="{{.ResetURL}}">Click here to reset your password</a></p>` +
		`<p>This link expires in 1 hour. If you did not request it, ignore this email.</p>`,
))

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

// ResendMailer envia e-mails pela API HTTP do Resend
type ResendMailer struct {
	client *resty.Client
	from   string
	log    ports.Logger
}

// NewResendMailer cria um mailer autenticado com a API key configurada.
// POST /emails não é idempotente: uma falha volta ao chamador sem nova tentativa.
func NewResendMailer(cfg config.MailConfig, log ports.Logger) *ResendMailer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.ResendBaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.ResendAPIKey)

	return &ResendMailer{
		client: client,
		from:   cfg.FromEmail,
		log:    log,
	}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, msg ports.PasswordResetMessage) error {
	var body bytes.Buffer
	if err := passwordResetTemplate.Execute(&body, msg); err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	var result sendEmailResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(sendEmailRequest{
			From:    m.from,
			To:      []string{msg.To},
			Subject: passwordResetSubject,
			HTML:    body.String(),
		}).
		SetResult(&result).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("resend returned status %d: %s", resp.StatusCode(), resp.String())
	}

	m.log.Info("password reset email sent", "email_id", result.ID)
	return nil
}

// LogMailer só registra o envio; usado quando não há credenciais do Resend
type LogMailer struct {
	log ports.Logger
}

// NewLogMailer cria um mailer que apenas loga
func NewLogMailer(log ports.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, msg ports.PasswordResetMessage) error {
	m.log.Warn("mail delivery disabled, password reset email not sent", "to", msg.To)
	m.log.Debug("password reset link", "url", msg.ResetURL)
	return nil
}

// New escolhe o mailer conforme a configuração
func New(cfg config.MailConfig, log ports.Logger) ports.Mailer {
	if cfg.Enabled() {
		return NewResendMailer(cfg, log)
	}
	return NewLogMailer(log)
}
