package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate cria ou atualiza as tabelas e índices
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
