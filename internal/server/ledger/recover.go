package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// Recover resolves the transfers a previous run left unfinished, as listed in
// State.OpenPayouts and State.OpenCaptures. A pending payout never reached
// settlement and is credited back. A sent payout did, and gets the withdrawal
// event its run did not journal. A held capture is refunded to its payer.
//
// Call Recover once after New and before serving requests.
func (l *Ledger) Recover(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for len(l.state.OpenPayouts) > 0 {
		p := l.state.OpenPayouts[0]
		c := l.stage()
		switch p.Status {
		case models.PayoutPending:
			err := l.credit(c, &p)
			if errors.Is(err, ErrBalanceOverflow) {
				// stays pending until a later run has room for it
				l.onJournal(fmt.Errorf("recovering payout %s: %w", p.ID, err))
				l.state.OpenPayouts = l.state.OpenPayouts[1:]
				continue
			}
			if err != nil {
				return fmt.Errorf("recovering payout %s: %w", p.ID, err)
			}
			c.Payout = withStatus(&p, models.PayoutFailed)
		case models.PayoutSent:
			kind, err := withdrawnEvent(p.Kind)
			if err != nil {
				return fmt.Errorf("recovering payout %s: %w", p.ID, err)
			}
			c.emit(models.Event{Kind: kind, Account: p.Recipient, Amount: p.Amount})
			c.Payout = withStatus(&p, models.PayoutSettled)
		default:
			return fmt.Errorf("recovering payout %s: unexpected status %q", p.ID, p.Status)
		}
		if err := l.commit(ctx, c); err != nil {
			return fmt.Errorf("recovering payout %s: %w", p.ID, err)
		}
		l.state.OpenPayouts = l.state.OpenPayouts[1:]
	}

	for len(l.state.OpenCaptures) > 0 {
		cp := l.state.OpenCaptures[0]
		if err := l.transferer.Refund(ctx, &cp); err != nil {
			return fmt.Errorf("refunding capture %s: %w", cp.ID, err)
		}
		l.state.OpenCaptures = l.state.OpenCaptures[1:]
	}
	return nil
}

// credit stages p's amount back onto the balance it was withdrawn from.
func (l *Ledger) credit(c *Change, p *models.Payout) error {
	switch p.Kind {
	case models.PayoutCreator:
		v, err := add(l.state.Balances[p.Recipient], p.Amount)
		if err != nil {
			return err
		}
		c.setBalance(p.Recipient, v)
	case models.PayoutPlatform:
		v, err := add(l.state.PlatformBalance, p.Amount)
		if err != nil {
			return err
		}
		c.setPlatformBalance(v)
	default:
		return fmt.Errorf("unknown payout kind %q", p.Kind)
	}
	return nil
}

func withdrawnEvent(kind models.PayoutKind) (models.EventKind, error) {
	switch kind {
	case models.PayoutCreator:
		return models.EventCreatorBalanceWithdrawn, nil
	case models.PayoutPlatform:
		return models.EventPlatformFeeWithdrawn, nil
	}
	return "", fmt.Errorf("unknown payout kind %q", kind)
}
