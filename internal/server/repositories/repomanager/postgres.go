// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/migrations"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/balances"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/captures"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/challenges"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/deposits"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/entitlements"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/events"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/ledgermeta"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/payouts"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/posts"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/refreshtokens"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Balances(db dbx.DBTX) balances.Repository {
	return balances.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) LedgerMeta(db dbx.DBTX) ledgermeta.Repository {
	return ledgermeta.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Entitlements(db dbx.DBTX) entitlements.Repository {
	return entitlements.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Payouts(db dbx.DBTX) payouts.Repository {
	return payouts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Deposits(db dbx.DBTX) deposits.Repository {
	return deposits.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Captures(db dbx.DBTX) captures.Repository {
	return captures.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Challenges(db dbx.DBTX) challenges.Repository {
	return challenges.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
