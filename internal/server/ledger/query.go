package ledger

import (
	"context"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

func (l *Ledger) GetPostInfo(postID uint64) (models.PostInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.state.post(postID)
	if !ok {
		return models.PostInfo{}, ErrPostNotFound
	}
	return p.Info(), nil
}

// GetPost returns the full stored record, content reference included.
func (l *Ledger) GetPost(postID uint64) (models.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.state.post(postID)
	if !ok {
		return models.Post{}, ErrPostNotFound
	}
	return *p, nil
}

// GetUserPosts returns the ids of posts authored by a, in publication order.
func (l *Ledger) GetUserPosts(a common.Address) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := slices.Clone(l.state.userPosts[a])
	if ids == nil {
		ids = []uint64{}
	}
	return ids
}

func (l *Ledger) CreatorBalance(a common.Address) models.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Balances[a]
}

func (l *Ledger) PlatformBalance() models.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.PlatformBalance
}

// Owner returns the current owner; the zero address after renouncement.
func (l *Ledger) Owner() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Owner
}

func (l *Ledger) NextPostID() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.nextPostID()
}

func (l *Ledger) Info() models.LedgerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.LedgerInfo{
		Owner:              l.state.Owner,
		Renounced:          l.state.Owner == (common.Address{}),
		PlatformFeePercent: l.feePercent,
		PaymentUnit:        l.unit,
		NextPostID:         l.state.nextPostID(),
		PlatformBalance:    l.state.PlatformBalance,
	}
}

// EventsSince returns up to limit events with Seq greater than seq. A limit
// of zero means no limit. Events older than the resident tail are read from
// the History.
func (l *Ledger) EventsSince(ctx context.Context, seq uint64, limit int) ([]models.Event, error) {
	l.mu.Lock()
	if seq < l.state.EventBase && l.history != nil {
		l.mu.Unlock()
		return l.history.EventsSince(ctx, seq, limit)
	}
	defer l.mu.Unlock()

	seq = max(seq, l.state.EventBase)
	events := l.state.Events
	i := seq - l.state.EventBase
	if i >= uint64(len(events)) {
		return []models.Event{}, nil
	}
	out := events[i:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return slices.Clone(out), nil
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() *State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}
