package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/ledger"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/repomanager"
)

// PostgresTransferer moves value through tables shared with an external
// settlement process. That process credits deposits and pays out payouts
// marked sent; the ledger debits deposits for paid access and hands payouts
// over by marking them sent.
type PostgresTransferer struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostgresTransferer(db *sql.DB, m repomanager.RepositoryManager) *PostgresTransferer {
	return &PostgresTransferer{db: db, repomanager: m}
}

// Capture implements ledger.Transferer. The deposit debit and the held
// capture row are written in one transaction.
func (t *PostgresTransferer) Capture(ctx context.Context, c *models.Capture) error {
	return dbx.WithSerializableTx(ctx, t.db, func(ctx context.Context, tx dbx.DBTX) error {
		err := t.repomanager.Deposits(tx).Debit(ctx, c.Payer, c.Amount)
		if errors.Is(err, sc.ErrorNotFound) {
			return fmt.Errorf("%w: deposit of %s does not cover %d", ledger.ErrInsufficientPayment, c.Payer.Hex(), c.Amount)
		}
		if err != nil {
			return fmt.Errorf("error debiting deposit: %w", err)
		}
		if err := t.repomanager.Captures(tx).Create(ctx, c); err != nil {
			return fmt.Errorf("error saving capture: %w", err)
		}
		return nil
	})
}

// Refund implements ledger.Transferer. Only a held capture is refunded; one
// the journal already applied is left alone.
func (t *PostgresTransferer) Refund(ctx context.Context, c *models.Capture) error {
	return dbx.WithSerializableTx(ctx, t.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := t.repomanager.Captures(tx).Transition(ctx, c.ID, models.CaptureHeld, models.CaptureRefunded); err != nil {
			return fmt.Errorf("error releasing capture: %w", err)
		}
		if err := t.repomanager.Deposits(tx).Credit(ctx, c.Payer, c.Amount); err != nil {
			return fmt.Errorf("error crediting deposit: %w", err)
		}
		return nil
	})
}

// Transfer implements ledger.Transferer by marking the pending payout sent.
func (t *PostgresTransferer) Transfer(ctx context.Context, p *models.Payout) error {
	return t.repomanager.Payouts(t.db).Transition(ctx, p.ID, models.PayoutPending, models.PayoutSent)
}

// Deposit returns the funds address can still spend on content.
func (t *PostgresTransferer) Deposit(ctx context.Context, address common.Address) (models.Amount, error) {
	return t.repomanager.Deposits(t.db).Get(ctx, address)
}

// MemoryTransferer keeps deposits and payouts in memory.
type MemoryTransferer struct {
	mu       sync.Mutex
	deposits map[common.Address]models.Amount
	payouts  []models.Payout
}

// Fund credits amount to address's deposit.
func (t *MemoryTransferer) Fund(address common.Address, amount models.Amount) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deposits == nil {
		t.deposits = make(map[common.Address]models.Amount)
	}
	t.deposits[address] += amount
}

func (t *MemoryTransferer) Capture(_ context.Context, c *models.Capture) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deposits[c.Payer] < c.Amount {
		return fmt.Errorf("%w: deposit of %s does not cover %d", ledger.ErrInsufficientPayment, c.Payer.Hex(), c.Amount)
	}
	t.deposits[c.Payer] -= c.Amount
	return nil
}

func (t *MemoryTransferer) Refund(_ context.Context, c *models.Capture) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deposits == nil {
		t.deposits = make(map[common.Address]models.Amount)
	}
	t.deposits[c.Payer] += c.Amount
	return nil
}

func (t *MemoryTransferer) Transfer(_ context.Context, p *models.Payout) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	sent := *p
	sent.Status = models.PayoutSent
	t.payouts = append(t.payouts, sent)
	return nil
}

func (t *MemoryTransferer) Deposit(_ context.Context, address common.Address) (models.Amount, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deposits[address], nil
}

func (t *MemoryTransferer) Payouts() []models.Payout {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Payout, len(t.payouts))
	copy(out, t.payouts)
	return out
}
