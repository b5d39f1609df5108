package repositories

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateKey é retornado quando uma restrição de unicidade é violada
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound é retornado por Update quando o registro deixou de existir
	ErrNotFound = errors.New("record not found")
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	// DefaultSortField é usado quando o campo pedido não está na allow-list
	DefaultSortField = "createdAt"
)

// SortOrder define a direção da ordenação
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder aceita "asc"; qualquer outro valor é descendente
func ParseSortOrder(value string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(value), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// ListQuery contém paginação, busca e ordenação comuns às listagens
type ListQuery struct {
	Page      int // Página (começa em 1)
	Limit     int // Itens por página (default: 10, max: 50)
	Search    string
	SortField string
	SortOrder SortOrder
}

// Offset retorna o deslocamento da página atual
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// NormalizeListQuery aplica defaults e limites.
// Campos de ordenação fora de allowedSortFields voltam para createdAt descendente.
func NormalizeListQuery(q ListQuery, allowedSortFields []string) ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Search = strings.TrimSpace(q.Search)

	if !contains(allowedSortFields, q.SortField) {
		q.SortField = DefaultSortField
		q.SortOrder = SortDesc
	}
	if q.SortOrder != SortAsc {
		q.SortOrder = SortDesc
	}

	return q
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// ListResult é uma página de resultados com o total de registros que casaram com o filtro
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

// Pages retorna o total de páginas
func (r ListResult[T]) Pages() int {
	if r.Limit <= 0 {
		return 0
	}
	return int((r.Total + int64(r.Limit) - 1) / int64(r.Limit))
}
