// Package balances persists creator balances owed by the ledger.
package balances

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	// Set stores amount as address's balance, creating the row if needed.
	Set(ctx context.Context, address common.Address, amount models.Amount) error
	// List returns every non-zero balance.
	List(ctx context.Context) (map[common.Address]models.Amount, error)
}
