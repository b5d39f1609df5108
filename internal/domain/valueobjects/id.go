package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid identifier format")

// NewID gera um novo identificador
func NewID() string {
	return uuid.NewString()
}

// ParseID valida o formato de um identificador recebido de fora e o devolve normalizado
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}

// IsValidID verifica o formato sem retornar erro
func IsValidID(raw string) bool {
	_, err := ParseID(raw)
	return err == nil
}
