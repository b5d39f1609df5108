package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/backoffice/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/backoffice/internal/testutil"
)

func TestUnitOfWork_WithTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDatabase(t)
	uow := postgres.NewUnitOfWork(db)
	repo := postgres.NewUserRepository(db)

	t.Run("rollback em erro", func(t *testing.T) {
		boom := errors.New("boom")
		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			require.NoError(t, repo.Create(txCtx, newUser("Tx", "User", "tx@example.com")))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := repo.FindByEmail(ctx, "tx@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("commit em sucesso", func(t *testing.T) {
		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			return repo.Create(txCtx, newUser("Tx", "User", "tx@example.com"))
		})
		require.NoError(t, err)

		found, err := repo.FindByEmail(ctx, "tx@example.com")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("commit sem transação falha", func(t *testing.T) {
		assert.Error(t, uow.Commit(ctx))
	})
}
