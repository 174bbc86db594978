// Package testutil wires the integration tests to a throwaway Postgres
// database. Tests that call DB or Tx skip unless TEST_POSTGRES_DSN is set.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// Logger returns a quiet logger suitable for tests.
func Logger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(func() {
		log.Sync()
	})
	return log
}

// DB opens the database named by TEST_POSTGRES_DSN and migrates the schema.
// The connection is shared; use Tx for isolation between tests.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run Postgres integration tests")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		t.Fatalf("enable uuid-ossp: %v", err)
	}
	err = db.AutoMigrate(
		&types.FieldTechnician{},
		&types.SawmillTeam{},
		&types.FactoryTeam{},
		&types.RawLot{},
		&types.SawnLot{},
		&types.FinishedProduct{},
	)
	if err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

// Tx begins a transaction rolled back when the test ends, so tests leave no
// rows behind and can run in any order.
func Tx(t *testing.T) *gorm.DB {
	t.Helper()
	tx := DB(t).Begin()
	if tx.Error != nil {
		t.Fatalf("Begin: %v", tx.Error)
	}
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}
