package dto

import (
	"encoding/json"
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
)

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs).
// O campo "error" carrega a mensagem exibida pelos clientes, sem tradução.
type ErrorResponse struct {
	*problems.Problem
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// MessageResponse é a resposta de sucesso sem corpo de recurso
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse é a resposta das rotas de contagem
type CountResponse struct {
	Count int64 `json:"count"`
}

// BulkDeleteRequest representa a requisição de remoção em lote
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteResponse informa quantos IDs foram pedidos
type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

// ListParams são os parâmetros de query comuns às listagens
type ListParams struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Search    string `form:"search"`
	Q         string `form:"q"`
	SortField string `form:"sortField"`
	SortOrder string `form:"sortOrder"`
}

// ToListQuery converte os parâmetros; "q" é aceito como sinônimo de "search"
func (p ListParams) ToListQuery() repositories.ListQuery {
	search := p.Search
	if search == "" {
		search = p.Q
	}
	return repositories.ListQuery{
		Page:      p.Page,
		Limit:     p.Limit,
		Search:    search,
		SortField: p.SortField,
		SortOrder: repositories.ParseSortOrder(p.SortOrder),
	}
}

var registerOnce sync.Once

// RegisterValidation faz o validator do gin reportar campos pelo nome JSON
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
}

// NewErrorResponse cria a resposta para um erro de domínio; erros desconhecidos viram erro interno
func NewErrorResponse(c *gin.Context, err error) (int, ErrorResponse) {
	de, ok := errors.As(err)
	if !ok {
		de = errors.Internal(err)
	}

	status := de.Kind.HTTPStatus()
	problem := problems.NewDetailedProblem(status, translateOr(c, de.Code, de.Message)).
		WithType(baseURL(c) + de.Kind.ProblemType()).
		WithTitle(T(c, de.Kind.TitleKey())).
		WithInstance(c.Request.URL.Path)

	return status, ErrorResponse{
		Problem: problem,
		Error:   de.Message,
	}
}

// BindErrorResponse traduz uma falha de binding.
// Falhas de validação usam a mensagem de fallback e listam os campos; JSON malformado vira ErrInvalidRequestBody.
func BindErrorResponse(c *gin.Context, err error, fallback *errors.DomainError) (int, ErrorResponse) {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &syntaxErr) || stderrors.As(err, &typeErr) || fallback == nil {
			return NewErrorResponse(c, errors.ErrInvalidRequestBody)
		}
		return NewErrorResponse(c, fallback)
	}

	if fallback == nil {
		fallback = errors.ErrInvalidRequestBody
	}
	status, response := NewErrorResponse(c, fallback)
	response.Errors = translateFieldErrors(c, verrs)
	return status, response
}

func translateFieldErrors(c *gin.Context, verrs validator.ValidationErrors) []ValidationError {
	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		params := map[string]interface{}{"Field": fe.Field(), "Param": fe.Param()}
		key := "error.field." + fe.Tag()
		message := T(c, key, params)
		if message == key {
			message = T(c, "error.field.invalid", params)
		}
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: message,
			Tag:     fe.Tag(),
		})
	}
	return fields
}

func baseURL(c *gin.Context) string {
	if url := c.GetString("base_url"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
