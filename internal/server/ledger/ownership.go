package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// checkOwner gates owner-only operations. The caller holds l.mu.
func (l *Ledger) checkOwner(caller common.Address) error {
	if l.state.Owner == (common.Address{}) {
		return ErrUnauthorized
	}
	if caller != l.state.Owner {
		return ErrNotOwner
	}
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (l *Ledger) TransferOwnership(ctx context.Context, caller, newOwner common.Address) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkOwner(caller); err != nil {
		return nil, err
	}
	if newOwner == (common.Address{}) {
		return nil, ErrInvalidOwner
	}
	return l.setOwner(ctx, newOwner)
}

// RenounceOwnership leaves the ledger without an owner. Accumulated platform
// fees can no longer be withdrawn afterwards.
func (l *Ledger) RenounceOwnership(ctx context.Context, caller common.Address) ([]models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkOwner(caller); err != nil {
		return nil, err
	}
	return l.setOwner(ctx, common.Address{})
}

func (l *Ledger) setOwner(ctx context.Context, owner common.Address) ([]models.Event, error) {
	c := l.stage()
	c.setOwner(owner)
	c.emit(models.Event{
		Kind:         models.EventOwnershipTransferred,
		Account:      l.state.Owner,
		Counterparty: owner,
	})
	if err := l.commit(ctx, c); err != nil {
		return nil, err
	}
	return c.Events, nil
}
