package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/types"
)

// Service owns the gorm handle. SQLite is the default so the tool runs
// self-contained; Postgres is an opt-in for shared deployments.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(log *logger.Logger, driver, dsn string) (*Service, error) {
	serviceLog := log.With("service", "DatabaseService")

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	serviceLog.Info("Connecting to database", "driver", driver)
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	return &Service{db: gdb, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	return s.db.AutoMigrate(&types.ReconciliationRun{})
}
