// Package payouts records value transferred out of the ledger and the
// status each transfer has reached.
package payouts

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Payout) error
	// Transition moves payout id from status from to status to. It returns
	// common.ErrorNotFound when no payout id has status from.
	Transition(ctx context.Context, id string, from, to models.PayoutStatus) error
	// ListOpen returns pending and sent payouts, oldest first.
	ListOpen(ctx context.Context) ([]models.Payout, error)
}
