// Package deposits persists the funds accounts hold for paying for content.
// Deposits are credited by the settlement process outside the ledger.
package deposits

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	// Get returns address's deposit; zero when it has none.
	Get(ctx context.Context, address common.Address) (models.Amount, error)
	// Debit takes amount from address's deposit. It returns
	// common.ErrorNotFound when the deposit is smaller than amount.
	Debit(ctx context.Context, address common.Address, amount models.Amount) error
	// Credit adds amount to address's deposit, creating it if needed.
	Credit(ctx context.Context, address common.Address, amount models.Amount) error
}
