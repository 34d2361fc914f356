// Package ledgermeta persists the singleton row of ledger-wide values:
// the owner and the accumulated platform fees.
package ledgermeta

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	// Get returns the row or common.ErrorNotFound before Init.
	Get(ctx context.Context) (*models.LedgerMeta, error)
	// Init creates the row unless it already exists.
	Init(ctx context.Context, m *models.LedgerMeta) error
	SetOwner(ctx context.Context, owner common.Address) error
	SetPlatformBalance(ctx context.Context, amount models.Amount) error
}
