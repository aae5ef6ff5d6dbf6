// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kitportal/internal/dbx"
	"github.com/dmitrijs2005/kitportal/internal/leads/migrations"
	"github.com/dmitrijs2005/kitportal/internal/leads/repositories/interestedusers"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// DriverName is the database/sql driver registered by pgx/v5/stdlib.
const DriverName = "pgx"

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to a
// caller-supplied DBTX and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	verifier interestedusers.AddressVerifier
}

// InterestedUsers returns an interestedusers.Repository bound to db.
func (m *PostgresRepositoryManager) InterestedUsers(db dbx.DBTX) interestedusers.Repository {
	return interestedusers.NewPostgresRepository(db, m.verifier)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(DriverName); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager
// whose repositories verify addresses with verifier.
func NewPostgresRepositoryManager(verifier interestedusers.AddressVerifier) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{verifier: verifier}
}
