// Package testutil monta dependências reais para testes de integração.
package testutil

import (
	"context"
	"io"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/backoffice/internal/domain/ports"
	"github.com/rafabene/backoffice/internal/infrastructure/config"
	"github.com/rafabene/backoffice/internal/infrastructure/logging"
	"github.com/rafabene/backoffice/internal/infrastructure/persistence/postgres"
)

// TB é o subconjunto de testing.TB usado aqui; GinkgoT() também o satisfaz
type TB interface {
	Helper()
	Fatalf(format string, args ...interface{})
	Cleanup(func())
}

// NopLogger descarta toda a saída
func NopLogger() ports.Logger {
	return logging.NewSlogLoggerWithWriter("error", io.Discard)
}

// NewDatabase abre um SQLite em memória já migrado.
// Uma única conexão garante que todas as queries vejam o mesmo banco.
func NewDatabase(t TB) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{URL: ":memory:", MaxConns: 1, MinConns: 1}
	connector := postgres.NewConnector(cfg, NopLogger(),
		postgres.WithDialector(sqlite.Open),
		postgres.WithLogLevel(logger.Silent),
	)

	ctx := context.Background()
	db, err := connector.DB(ctx)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = connector.Close() })

	if err := postgres.Migrate(ctx, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
