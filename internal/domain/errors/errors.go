package errors

import (
	"errors"
	"net/http"
)

// Kind classifica erros de domínio para mapeamento em status HTTP
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindUnauthenticated   Kind = "unauthenticated"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation        = "/problems/validation-error"
	ProblemTypeNotFound          = "/problems/not-found"
	ProblemTypeInvalidIdentifier = "/problems/invalid-identifier"
	ProblemTypeConflict          = "/problems/conflict"
	ProblemTypeUnauthorized      = "/problems/unauthorized"
	ProblemTypeForbidden         = "/problems/forbidden"
	ProblemTypeInternal          = "/problems/internal-error"
	ProblemTypeBadRequest        = "/problems/bad-request"
)

// Business errors
// Nota: Code é o message ID para i18n; Message é o texto exposto no campo "error".
var (
	ErrUserNotFound         = &DomainError{Kind: KindNotFound, Code: "error.user_not_found", Message: "User not found"}
	ErrBlogNotFound         = &DomainError{Kind: KindNotFound, Code: "error.blog_not_found", Message: "Blog not found"}
	ErrEmailAlreadyExists   = &DomainError{Kind: KindConflict, Code: "error.email_already_exists", Message: "Email already exists"}
	ErrEmailRegistered      = &DomainError{Kind: KindConflict, Code: "error.email_already_registered", Message: "Email already registered"}
	ErrInvalidCredentials   = &DomainError{Kind: KindUnauthenticated, Code: "error.invalid_credentials", Message: "Invalid email or password"}
	ErrUnauthorized         = &DomainError{Kind: KindUnauthenticated, Code: "error.unauthorized", Message: "Not authenticated"}
	ErrForbidden            = &DomainError{Kind: KindForbidden, Code: "error.forbidden", Message: "Admin only"}
	ErrInvalidResetToken    = &DomainError{Kind: KindValidation, Code: "error.invalid_reset_token", Message: "Invalid or expired token"}
	ErrSlugUnavailable      = &DomainError{Kind: KindConflict, Code: "error.slug_unavailable", Message: "Could not allocate a unique slug"}
	ErrNoIDsProvided        = &DomainError{Kind: KindValidation, Code: "error.no_ids", Message: "No ids provided"}
	ErrInvalidEmail         = &DomainError{Kind: KindValidation, Code: "error.invalid_email", Message: "Invalid email format"}
	ErrInvalidID            = &DomainError{Kind: KindInvalidIdentifier, Code: "error.invalid_id", Message: "Invalid ID"}
	ErrInvalidRequestBody   = &DomainError{Kind: KindValidation, Code: "error.invalid_body", Message: "Invalid request body"}
	ErrInternal             = &DomainError{Kind: KindInternal, Code: "error.internal", Message: "Internal server error"}
	ErrPasswordTooShort     = &DomainError{Kind: KindValidation, Code: "error.password_too_short", Message: "Password must be at least 6 characters"}
	ErrEmailRequired        = &DomainError{Kind: KindValidation, Code: "error.email_required", Message: "Email required"}
	ErrMissingRequiredField = &DomainError{Kind: KindValidation, Code: "error.missing_fields", Message: "Missing required fields"}
	ErrAllFieldsRequired    = &DomainError{Kind: KindValidation, Code: "error.all_fields_required", Message: "All fields are required"}
	ErrRegistrationInvalid  = &DomainError{Kind: KindValidation, Code: "error.registration_invalid", Message: "All fields are required and password must be at least 6 characters."}
	ErrCredentialsRequired  = &DomainError{Kind: KindValidation, Code: "error.credentials_required", Message: "Email and password are required"}
	ErrResetInputInvalid    = &DomainError{Kind: KindValidation, Code: "error.reset_input_invalid", Message: "Token and new password (min 6 chars) are required"}
	ErrTitleRequired        = &DomainError{Kind: KindValidation, Code: "error.title_required", Message: "Title is required"}
	ErrNoSessionToken       = &DomainError{Kind: KindUnauthenticated, Code: "error.no_session_token", Message: "Not authenticated (no token)"}
	ErrInvalidSession       = &DomainError{Kind: KindUnauthenticated, Code: "error.invalid_session", Message: "Invalid or expired token"}
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is permite comparar erros derivados (com mensagem ou causa diferentes) pelo código
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Validation cria um erro de validação com mensagem própria
func Validation(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: "error.validation", Message: message}
}

// Internal embrulha uma falha inesperada; a causa nunca chega ao cliente
func Internal(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Code: ErrInternal.Code, Message: ErrInternal.Message, Err: err}
}

// As extrai um DomainError de uma cadeia de erros
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HTTPStatus mapeia o tipo do erro para o status HTTP.
// Conflito de email responde 400 (e não 409) por compatibilidade com clientes existentes.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidIdentifier, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ProblemType retorna o tipo RFC 7807 correspondente
func (k Kind) ProblemType() string {
	switch k {
	case KindValidation:
		return ProblemTypeValidation
	case KindInvalidIdentifier:
		return ProblemTypeInvalidIdentifier
	case KindConflict:
		return ProblemTypeConflict
	case KindNotFound:
		return ProblemTypeNotFound
	case KindUnauthenticated:
		return ProblemTypeUnauthorized
	case KindForbidden:
		return ProblemTypeForbidden
	default:
		return ProblemTypeInternal
	}
}

// TitleKey retorna a chave i18n do título do problema
func (k Kind) TitleKey() string {
	return "error." + string(k) + ".title"
}
