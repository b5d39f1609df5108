package services

import (
	stderrors "errors"

	"github.com/rafabene/backoffice/internal/domain/errors"
	"github.com/rafabene/backoffice/internal/domain/repositories"
	"github.com/rafabene/backoffice/internal/domain/valueobjects"
)

func isDuplicate(err error) bool {
	return stderrors.Is(err, repositories.ErrDuplicateKey)
}

func isNotFound(err error) bool {
	return stderrors.Is(err, repositories.ErrNotFound)
}

// parseID valida o formato do identificador vindo da requisição
func parseID(raw string) (string, error) {
	id, err := valueobjects.ParseID(raw)
	if err != nil {
		return "", errors.ErrInvalidID
	}
	return id, nil
}

// validIDs mantém só os identificadores bem formados, sem duplicatas.
// IDs malformados em operações em lote são tratados como inexistentes.
func validIDs(raw []string) []string {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		id, err := valueobjects.ParseID(r)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
