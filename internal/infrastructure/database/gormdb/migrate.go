package gormdb

import (
	"fmt"
	"shopping-list-api/internal/infrastructure/database/gormdb/models"
	"shopping-list-api/internal/logger"

	"go.uber.org/zap"
)

func (d *DB) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database schema migrated", zap.Int("models", len(models.All())))
	return nil
}
