package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// WithdrawCreatorBalance pays caller's entire accumulated balance out.
func (l *Ledger) WithdrawCreatorBalance(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error) {
	l.mu.Lock()
	amount := l.state.Balances[caller]
	if amount == 0 {
		l.mu.Unlock()
		return 0, nil, ErrNothingToWithdraw
	}
	c := l.stage()
	c.setBalance(caller, 0)
	c.Payout = l.payout(models.PayoutCreator, caller, amount)
	err := l.commit(ctx, c)
	l.mu.Unlock()
	if err != nil {
		return 0, nil, err
	}

	return l.settle(ctx, c.Payout, models.EventCreatorBalanceWithdrawn,
		func(s *State) models.Amount { return s.Balances[caller] },
		func(c *Change, v models.Amount) { c.setBalance(caller, v) },
	)
}

// WithdrawPlatformFees pays the accumulated platform fees out to the owner.
func (l *Ledger) WithdrawPlatformFees(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error) {
	l.mu.Lock()
	if err := l.checkOwner(caller); err != nil {
		l.mu.Unlock()
		return 0, nil, err
	}
	amount := l.state.PlatformBalance
	if amount == 0 {
		l.mu.Unlock()
		return 0, nil, ErrNothingToWithdraw
	}
	c := l.stage()
	c.setPlatformBalance(0)
	c.Payout = l.payout(models.PayoutPlatform, caller, amount)
	err := l.commit(ctx, c)
	l.mu.Unlock()
	if err != nil {
		return 0, nil, err
	}

	return l.settle(ctx, c.Payout, models.EventPlatformFeeWithdrawn,
		func(s *State) models.Amount { return s.PlatformBalance },
		func(c *Change, v models.Amount) { c.setPlatformBalance(v) },
	)
}

func (l *Ledger) payout(kind models.PayoutKind, to common.Address, amount models.Amount) *models.Payout {
	return &models.Payout{
		ID:        uuid.NewString(),
		Kind:      kind,
		Recipient: to,
		Amount:    amount,
		Status:    models.PayoutPending,
		CreatedAt: l.now(),
	}
}

// settle releases a payout whose balance was zeroed in the same Change that
// recorded it as pending. The lock is not held during the transfer, so a
// re-entrant withdrawal observes the zero balance. A failed transfer credits
// the amount back; a successful one appends the withdrawal event.
//
// Either outcome describes value that already moved, so a Journal failure
// does not undo it: the Change is parked and OnJournalError is told.
func (l *Ledger) settle(ctx context.Context, p *models.Payout, kind models.EventKind,
	balance func(*State) models.Amount, set func(*Change, models.Amount)) (models.Amount, []models.Event, error) {

	terr := l.transferer.Transfer(ctx, p)

	l.mu.Lock()
	defer l.mu.Unlock()

	if terr != nil {
		restored, err := add(balance(l.state), p.Amount)
		if err != nil {
			// left pending for Recover
			l.onJournal(fmt.Errorf("restoring payout %s of %d to %s: %w", p.ID, p.Amount, p.Recipient.Hex(), err))
			return 0, nil, fmt.Errorf("%w: %w; restoring %d to %s: %w", ErrTransferFailed, terr, p.Amount, p.Recipient.Hex(), err)
		}
		c := l.stage()
		set(c, restored)
		c.Payout = withStatus(p, models.PayoutFailed)
		l.record(ctx, c, fmt.Sprintf("restore of %d to %s", p.Amount, p.Recipient.Hex()))
		return 0, nil, fmt.Errorf("%w: %w", ErrTransferFailed, terr)
	}

	c := l.stage()
	c.emit(models.Event{Kind: kind, Account: p.Recipient, Amount: p.Amount})
	c.Payout = withStatus(p, models.PayoutSettled)
	l.record(ctx, c, fmt.Sprintf("%s of %d to %s", kind, p.Amount, p.Recipient.Hex()))
	return p.Amount, c.Events, nil
}

// record commits c, parking it when the Journal refuses. The caller holds
// l.mu.
func (l *Ledger) record(ctx context.Context, c *Change, what string) {
	if err := l.commit(ctx, c); err != nil {
		l.park(c)
		l.onJournal(errors.Join(fmt.Errorf("%s not journaled", what), err))
	}
}

func withStatus(p *models.Payout, s models.PayoutStatus) *models.Payout {
	out := *p
	out.Status = s
	return &out
}
