package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/database/models"
	"github.com/hugh/nextsaas/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.LogQueries {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying db: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to database")

	return db, nil
}

// AutoMigrate creates the schema from the models. Production databases are
// migrated with the SQL files under migrations/ instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Member{},
		&models.Invite{},
		&models.Project{},
		&models.Token{},
		&models.Account{},
	)
}

// UniqueSlug returns base, or base with a short random suffix, such that no
// row of model has it as slug.
func UniqueSlug(ctx context.Context, db *gorm.DB, model interface{}, base string) (string, error) {
	if base == "" {
		base = uuid.NewString()[:8]
	}

	slug := base
	for i := 0; i < 5; i++ {
		var count int64
		if err := db.WithContext(ctx).Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("checking slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + uuid.NewString()[:6]
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
