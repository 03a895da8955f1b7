package database

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// Pool limits shared by the API and the seeder. Sized for the heaviest
// listing load: one window select plus per-row rank counts.
const (
	maxOpenConns = 25
	maxIdleConns = 5
)

// NewBunDB wraps an open Postgres connection with the Bun query builder
// and applies the service pool limits
func NewBunDB(sqlDB *sql.DB) *bun.DB {
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)

	return bun.NewDB(sqlDB, pgdialect.New())
}
