package repomanager

import (
	"context"
	"database/sql"

	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
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
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Posts(db dbx.DBTX) posts.Repository
	Balances(db dbx.DBTX) balances.Repository
	LedgerMeta(db dbx.DBTX) ledgermeta.Repository
	Entitlements(db dbx.DBTX) entitlements.Repository
	Events(db dbx.DBTX) events.Repository
	Payouts(db dbx.DBTX) payouts.Repository
	Deposits(db dbx.DBTX) deposits.Repository
	Captures(db dbx.DBTX) captures.Repository
	Challenges(db dbx.DBTX) challenges.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
