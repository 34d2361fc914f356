// Package services contains server-side business logic. This file binds the
// ledger's persistence hooks to PostgreSQL: PostgresJournal writes every
// staged Change in one serializable transaction and LoadState rebuilds the
// ledger state from the same tables on startup.
//
// Only the newest ResidentEvents events are loaded; older ones are read back
// through PostgresJournal.EventsSince.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/ledger"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/repomanager"
)

// ResidentEvents is how many of the newest events the server keeps in memory.
const ResidentEvents = 10000

type PostgresJournal struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostgresJournal(db *sql.DB, m repomanager.RepositoryManager) *PostgresJournal {
	return &PostgresJournal{db: db, repomanager: m}
}

// Record implements ledger.Journal.
func (j *PostgresJournal) Record(ctx context.Context, c *ledger.Change) error {
	if c.Empty() {
		return nil
	}
	return dbx.WithSerializableTx(ctx, j.db, func(ctx context.Context, tx dbx.DBTX) error {
		if c.Capture != nil {
			// fails when the capture was refunded meanwhile
			if err := j.repomanager.Captures(tx).Transition(ctx, c.Capture.ID, models.CaptureHeld, c.Capture.Status); err != nil {
				return fmt.Errorf("error applying capture: %w", err)
			}
		}
		if c.Post != nil {
			if err := j.repomanager.Posts(tx).Create(ctx, c.Post); err != nil {
				return fmt.Errorf("error saving post: %w", err)
			}
		}
		for addr, amount := range c.Balances {
			if err := j.repomanager.Balances(tx).Set(ctx, addr, amount); err != nil {
				return fmt.Errorf("error saving balance: %w", err)
			}
		}
		meta := j.repomanager.LedgerMeta(tx)
		if c.PlatformBalance != nil {
			if err := meta.SetPlatformBalance(ctx, *c.PlatformBalance); err != nil {
				return fmt.Errorf("error saving platform balance: %w", err)
			}
		}
		if c.Owner != nil {
			if err := meta.SetOwner(ctx, *c.Owner); err != nil {
				return fmt.Errorf("error saving owner: %w", err)
			}
		}
		if c.Entitlement != nil {
			if err := j.repomanager.Entitlements(tx).Create(ctx, c.Entitlement); err != nil {
				return fmt.Errorf("error saving entitlement: %w", err)
			}
		}
		for i := range c.Events {
			if err := j.repomanager.Events(tx).Create(ctx, &c.Events[i]); err != nil {
				return fmt.Errorf("error saving event: %w", err)
			}
		}
		if c.Payout != nil {
			if err := j.recordPayout(ctx, tx, c.Payout); err != nil {
				return fmt.Errorf("error saving payout: %w", err)
			}
		}
		return nil
	})
}

// recordPayout inserts a pending payout or moves an existing one to its
// final status.
func (j *PostgresJournal) recordPayout(ctx context.Context, tx dbx.DBTX, p *models.Payout) error {
	repo := j.repomanager.Payouts(tx)
	switch p.Status {
	case models.PayoutPending:
		return repo.Create(ctx, p)
	case models.PayoutFailed:
		return repo.Transition(ctx, p.ID, models.PayoutPending, models.PayoutFailed)
	case models.PayoutSettled:
		return repo.Transition(ctx, p.ID, models.PayoutSent, models.PayoutSettled)
	}
	return fmt.Errorf("payout %s: unexpected status %q", p.ID, p.Status)
}

// EventsSince implements ledger.EventHistory.
func (j *PostgresJournal) EventsSince(ctx context.Context, seq uint64, limit int) ([]models.Event, error) {
	events, err := j.repomanager.Events(j.db).ListSince(ctx, seq, limit)
	if err != nil {
		return nil, fmt.Errorf("error loading events: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// LoadState reads the persisted ledger. On an empty database the ledger
// metadata is created with owner, which must then be a non-zero address.
// Transfers a previous run left open are returned in the state for
// ledger.Recover.
func LoadState(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, owner common.Address) (*ledger.State, error) {
	meta, err := m.LedgerMeta(db).Get(ctx)
	if errors.Is(err, sc.ErrorNotFound) {
		if owner == (common.Address{}) {
			return nil, fmt.Errorf("initialising ledger: %w", sc.ErrInvalidOwner)
		}
		if err := m.LedgerMeta(db).Init(ctx, &models.LedgerMeta{Owner: owner}); err != nil {
			return nil, fmt.Errorf("initialising ledger: %w", err)
		}
		meta, err = m.LedgerMeta(db).Get(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading ledger meta: %w", err)
	}

	posts, err := m.Posts(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading posts: %w", err)
	}
	balances, err := m.Balances(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading balances: %w", err)
	}
	entitlements, err := m.Entitlements(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading entitlements: %w", err)
	}
	events, err := m.Events(db).Tail(ctx, ResidentEvents)
	if err != nil {
		return nil, fmt.Errorf("error loading events: %w", err)
	}
	var base uint64
	if len(events) > 0 {
		base = events[0].Seq - 1
	}
	payouts, err := m.Payouts(db).ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading payouts: %w", err)
	}
	captures, err := m.Captures(db).ListHeld(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading captures: %w", err)
	}

	return &ledger.State{
		Posts:           posts,
		Balances:        balances,
		PlatformBalance: meta.PlatformBalance,
		Owner:           meta.Owner,
		Entitlements:    entitlements,
		Events:          events,
		EventBase:       base,
		OpenPayouts:     payouts,
		OpenCaptures:    captures,
	}, nil
}
