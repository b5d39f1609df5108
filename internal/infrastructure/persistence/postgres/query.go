package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/backoffice/internal/domain/repositories"
)

// translateError converte erros do GORM em erros de repositório
func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", repositories.ErrDuplicateKey, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// matchClause monta uma condição SQL com um único placeholder para o padrão LIKE
type matchClause func(db *gorm.DB) string

// columnMatch casa a coluna inteira
func columnMatch(expr string) matchClause {
	return func(*gorm.DB) string {
		return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, expr)
	}
}

// jsonArrayMatch casa cada elemento de uma coluna JSON de strings, nunca o texto serializado
func jsonArrayMatch(table, column string) matchClause {
	return func(db *gorm.DB) string {
		if db.Dialector.Name() == "sqlite" {
			return fmt.Sprintf(`EXISTS (SELECT 1 FROM json_each(%s.%s) WHERE LOWER(json_each.value) LIKE ? ESCAPE '\')`, table, column)
		}
		return fmt.Sprintf(`EXISTS (SELECT 1 FROM jsonb_array_elements_text(%s.%s) AS elem(value) WHERE LOWER(elem.value) LIKE ? ESCAPE '\')`, table, column)
	}
}

// searchScope filtra por substring, sem diferenciar maiúsculas, em qualquer uma das colunas
func searchScope(term string, exprs ...string) func(*gorm.DB) *gorm.DB {
	matches := make([]matchClause, len(exprs))
	for i, expr := range exprs {
		matches[i] = columnMatch(expr)
	}
	return matchScope(term, matches...)
}

// matchScope junta as condições com OR, todas com o mesmo padrão
func matchScope(term string, matches ...matchClause) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(matches) == 0 {
			return db
		}

		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		clauses := make([]string, len(matches))
		args := make([]interface{}, len(matches))
		for i, match := range matches {
			clauses[i] = match(db)
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// orderScope ordena pela coluna pedida e desempata por ordem de inserção e id.
// column precisa vir de uma allow-list.
func orderScope(column string, order repositories.SortOrder) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		dir := "DESC"
		if order == repositories.SortAsc {
			dir = "ASC"
		}
		db = db.Order(column + " " + dir)
		if column != "created_at" {
			db = db.Order("created_at " + dir)
		}
		return db.Order("id " + dir)
	}
}

// pageScope aplica limit/offset
func pageScope(q repositories.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(q.Limit).Offset(q.Offset())
	}
}

// toNanos retorna 0 para o tempo zero, deixando o GORM preencher autoCreateTime
func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

func optionalNanos(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	n := t.UnixNano()
	return &n
}

func optionalTime(n *int64) *time.Time {
	if n == nil {
		return nil
	}
	t := fromNanos(*n)
	return &t
}
