package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/careerpulse-backend/internal/platform/logger"
)

// NewSQLiteService opens a pure-Go SQLite database. Use ":memory:" for a throwaway DB.
func NewSQLiteService(baseLog *logger.Logger, path string) (*Service, error) {
	serviceLog := baseLog.With("service", "SQLiteService")
	if path == "" {
		path = "careerpulse.db"
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// a single connection keeps ":memory:" databases shared and serialises writers
	sqlDB.SetMaxOpenConns(1)
	serviceLog.Info("Opened SQLite", "path", path)
	return &Service{db: db, log: serviceLog, driver: DriverSQLite}, nil
}
