// Package events persists the ledger's append-only event log.
package events

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Event) error
	// Tail returns the last n events ordered by sequence number.
	Tail(ctx context.Context, n int) ([]models.Event, error)
	// ListSince returns up to limit events with a sequence number above seq,
	// in order. A limit of zero means no limit.
	ListSince(ctx context.Context, seq uint64, limit int) ([]models.Event, error)
}
