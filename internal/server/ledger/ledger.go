// Package ledger implements the content access ledger: a serialized state
// machine that records published posts, splits payments for paid content
// between creators and the platform, and pays out accumulated balances.
//
// Every mutating operation stages its effects into a Change, hands it to the
// Journal and applies it to memory only after the Journal accepts it. The one
// exception is a Change describing value that already crossed the ledger
// boundary: it is applied at once and parked, and the Journal must accept
// the parked Changes, in order, before it accepts anything newer.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// Journal persists a Change before it becomes visible in memory.
type Journal interface {
	Record(ctx context.Context, c *Change) error
}

// Transferer moves value across the ledger boundary.
type Transferer interface {
	// Capture debits c.Amount from c.Payer's funds and holds it for the
	// ledger. An error wrapping ErrInsufficientPayment means the payer
	// cannot cover the amount.
	Capture(ctx context.Context, c *models.Capture) error
	// Refund returns a held capture to its payer.
	Refund(ctx context.Context, c *models.Capture) error
	// Transfer releases a payout the Journal recorded as pending.
	Transfer(ctx context.Context, p *models.Payout) error
}

// EventHistory serves events that are no longer resident in memory.
type EventHistory interface {
	EventsSince(ctx context.Context, seq uint64, limit int) ([]models.Event, error)
}

// Clock returns the current time.
type Clock func() time.Time

type nopJournal struct{}

func (nopJournal) Record(context.Context, *Change) error { return nil }

// Options configures a Ledger. Zero values select an in-memory journal,
// the wall clock and a payment unit of "wei".
type Options struct {
	FeePercent  uint64
	PaymentUnit string
	Journal     Journal
	Transferer  Transferer
	Clock       Clock
	// OnJournalError receives journal failures that happen after value has
	// already crossed the ledger boundary and therefore cannot be rolled back.
	OnJournalError func(error)
	// History serves events older than the resident tail. With a History
	// set, at most ResidentEvents (and never more than twice that) are kept
	// in memory.
	History        EventHistory
	ResidentEvents int
}

type Ledger struct {
	mu sync.Mutex

	state      *State
	feePercent uint64
	unit       string
	journal    Journal
	transferer Transferer
	clock      Clock
	onJournal  func(error)
	history    EventHistory
	resident   int

	// parked holds applied Changes the Journal has not accepted yet.
	parked []*Change
}

// New builds a Ledger around state. A nil state starts an empty ledger owned
// by owner; owner must not be the zero address in that case.
func New(owner common.Address, state *State, opts Options) (*Ledger, error) {
	if opts.FeePercent > 100 {
		return nil, fmt.Errorf("fee percent %d exceeds 100", opts.FeePercent)
	}
	if opts.Transferer == nil {
		return nil, fmt.Errorf("transferer is required")
	}

	if state == nil {
		if owner == (common.Address{}) {
			return nil, ErrInvalidOwner
		}
		state = NewState(owner)
	} else if err := state.index(); err != nil {
		return nil, err
	}

	l := &Ledger{
		state:      state,
		feePercent: opts.FeePercent,
		unit:       opts.PaymentUnit,
		journal:    opts.Journal,
		transferer: opts.Transferer,
		clock:      opts.Clock,
		onJournal:  opts.OnJournalError,
		history:    opts.History,
	}
	if opts.History != nil {
		l.resident = opts.ResidentEvents
	}
	if l.unit == "" {
		l.unit = "wei"
	}
	if l.journal == nil {
		l.journal = nopJournal{}
	}
	if l.clock == nil {
		l.clock = time.Now
	}
	if l.onJournal == nil {
		l.onJournal = func(error) {}
	}
	return l, nil
}

func (l *Ledger) now() time.Time {
	return l.clock().UTC().Truncate(time.Second)
}

// commit records c in the journal and applies it. The caller holds l.mu.
func (l *Ledger) commit(ctx context.Context, c *Change) error {
	if err := l.flush(ctx); err != nil {
		return err
	}
	if err := l.journal.Record(ctx, c); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	l.apply(c)
	return nil
}

// park applies c without journaling it. flush records it before any later
// Change. The caller holds l.mu.
func (l *Ledger) park(c *Change) {
	l.apply(c)
	l.parked = append(l.parked, c)
}

func (l *Ledger) flush(ctx context.Context) error {
	for len(l.parked) > 0 {
		if err := l.journal.Record(ctx, l.parked[0]); err != nil {
			return fmt.Errorf("journal: %d unrecorded changes: %w", len(l.parked), err)
		}
		l.parked[0] = nil
		l.parked = l.parked[1:]
	}
	return nil
}

func (l *Ledger) apply(c *Change) {
	l.state.apply(c)
	l.state.trim(l.resident)
}

// Sync records parked Changes. It is a no-op when nothing is parked.
func (l *Ledger) Sync(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flush(ctx)
}

// stage returns a new Change whose events will carry consecutive sequence
// numbers starting at the state's next one.
func (l *Ledger) stage() *Change {
	return &Change{firstSeq: l.state.nextSeq(), at: l.now()}
}
