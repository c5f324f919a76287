package store

import (
	"context"
	"fmt"
	"time"

	"github.com/devplatform/tracker/internal/auth"
	"github.com/devplatform/tracker/internal/config"
	"github.com/devplatform/tracker/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the database handle and implements all tracker persistence.
// Every operation that touches more than one row runs in a single transaction.
type Manager struct {
	db        *gorm.DB
	passwords *auth.PasswordHasher
	logger    *logrus.Logger
}

// NewManager opens the database configured in cfg and migrates the schema
func NewManager(cfg *config.Config, passwords *auth.PasswordHasher, logger *logrus.Logger) (*Manager, error) {
	return Open(cfg.DatabaseDSN(), cfg.DBMaxOpenConns, passwords, logger)
}

// Open opens a SQLite database at dsn and migrates the schema
func Open(dsn string, maxOpenConns int, passwords *auth.PasswordHasher, logger *logrus.Logger) (*Manager, error) {
	logger.WithField("dsn", dsn).Debug("Opening database")

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}

	m := &Manager{
		db:        db,
		passwords: passwords,
		logger:    logger,
	}

	if err := m.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database initialized")
	return m, nil
}

// migrate creates/updates the database schema
func (m *Manager) migrate() error {
	return m.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
		&models.LoggedTime{},
	)
}

// HealthCheck pings the database
func (m *Manager) HealthCheck(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// GetStats returns row counts and connection pool statistics
func (m *Manager) GetStats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{}
	db := m.db.WithContext(ctx)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Project{}, &stats.Projects},
		{&models.Task{}, &stats.Tasks},
		{&models.Comment{}, &stats.Comments},
		{&models.LoggedTime{}, &stats.LoggedTimes},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	if sqlDB, err := m.db.DB(); err == nil {
		poolStats := sqlDB.Stats()
		stats.OpenConnections = poolStats.OpenConnections
		stats.InUse = poolStats.InUse
	}

	return stats, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	m.logger.Info("Database connection closed")
	return nil
}
