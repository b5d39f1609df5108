package ports

import "context"

// PasswordResetMessage contém os dados do email de redefinição de senha
type PasswordResetMessage struct {
	To       string
	ResetURL string
}

// Mailer define o colaborador externo de envio de emails
type Mailer interface {
	SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error
}
