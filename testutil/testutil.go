// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"testing"

	"github.com/anjiri1684/skill_swap/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB returns a migrated in-memory SQLite store private to tb. It is pinned to one
// connection because every new connection to ":memory:" would see an empty database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.MigrateDB(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}
