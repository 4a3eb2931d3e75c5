package gormdb

import (
	"fmt"
	"shopping-list-api/internal/config"
	"shopping-list-api/internal/logger"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const sqliteForeignKeys = "_pragma=foreign_keys(1)"

type DB struct {
	*gorm.DB
}

// NewDB opens the database selected by cfg.Database.Driver.
func NewDB(cfg *config.Config) (*DB, error) {
	gormLogLevel := gormLogger.Info
	if cfg.Server.Environment == "production" {
		gormLogLevel = gormLogger.Warn
	}

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := open(sqlite.Open(sqliteDSN(cfg.Database.SQLitePath)), gormLogLevel, 1)
		if err != nil {
			return nil, err
		}

		logger.Info("Database connection established",
			zap.String("driver", "sqlite"),
			zap.String("path", cfg.Database.SQLitePath),
		)
		return db, nil
	default:
		db, err := open(postgres.New(postgres.Config{
			DriverName: "pgx",
			DSN:        cfg.Database.DSN(),
		}), gormLogLevel, 25)
		if err != nil {
			return nil, err
		}

		logger.Info("Database connection established",
			zap.String("driver", "postgres"),
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
			zap.Int("max_open_connections", 25),
			zap.Int("max_idle_connections", 5),
		)
		return db, nil
	}
}

// NewSQLiteDB opens a sqlite database with foreign keys enforced. Pass
// ":memory:" for a private in-memory database.
func NewSQLiteDB(path string) (*DB, error) {
	return open(sqlite.Open(sqliteDSN(path)), gormLogger.Silent, 1)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + sqliteForeignKeys
	}
	return path + "?" + sqliteForeignKeys
}

func open(dialector gorm.Dialector, level gormLogger.LogLevel, maxOpen int) (*DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(maxOpen, 5))
	// A recycled sqlite connection would drop an in-memory database.
	if maxOpen > 1 {
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &DB{DB: db}, nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
