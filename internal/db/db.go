package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"noticiario/internal/config"
	"noticiario/internal/models"
)

// Open connects to the configured store, migrates the schema and seeds the
// default categories. The returned pool is shared by every service and must be
// released with Close.
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" {
		// SQLite serializes writers; a single connection keeps in-memory
		// databases alive and avoids SQLITE_BUSY under concurrent requests.
		sqlDB.SetMaxOpenConns(1)
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("database connection established", "driver", cfg.Driver)

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Info("database migration completed")

	if err := seedCategories(conn, log); err != nil {
		return nil, err
	}

	return conn, nil
}

// Migrate creates or updates the schema, including the partial unique index
// that allows a single like per client and article.
func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Client{},
		&models.Category{},
		&models.Article{},
		&models.Interaction{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	err = conn.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_interactions_single_like ON interactions (client_id, article_id) WHERE type = '%s'",
		models.InteractionLike,
	)).Error
	if err != nil {
		return fmt.Errorf("create like index: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seedCategories(conn *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		log.Debug("categories already seeded, skipping")
		return nil
	}

	categories := []models.Category{
		{Name: "Economia"},
		{Name: "Esportes"},
		{Name: "Política"},
		{Name: "Tecnologia"},
	}
	if err := conn.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	log.Info("initial categories created", "count", len(categories))
	return nil
}
