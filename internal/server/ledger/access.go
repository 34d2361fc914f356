package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// AccessContent returns the content reference of a post. Free posts and the
// author's own posts are returned without moving value, as are paid posts the
// caller already paid for. Otherwise tendered is the most the caller agrees
// to pay: exactly the post's price is captured from the caller's funds and
// split between the author and the platform. A capture that cannot be
// journaled is refunded.
func (l *Ledger) AccessContent(ctx context.Context, caller common.Address, postID uint64, tendered models.Amount) (string, []models.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.state.post(postID)
	if !ok {
		return "", nil, ErrPostNotFound
	}
	if p.ContentType == models.ContentFree || p.Author == caller || l.state.isEntitled(postID, caller) {
		return p.Content, nil, nil
	}
	if tendered < p.Price {
		return "", nil, ErrInsufficientPayment
	}

	fee, share := split(p.Price, l.feePercent)
	creatorBalance, err := add(l.state.Balances[p.Author], share)
	if err != nil {
		return "", nil, err
	}
	platformBalance, err := add(l.state.PlatformBalance, fee)
	if err != nil {
		return "", nil, err
	}

	if err := l.flush(ctx); err != nil {
		return "", nil, err
	}

	var capture *models.Capture
	if p.Price > 0 {
		capture = &models.Capture{
			ID:        uuid.NewString(),
			Payer:     caller,
			PostID:    postID,
			Amount:    p.Price,
			Status:    models.CaptureHeld,
			CreatedAt: l.now(),
		}
		if err := l.transferer.Capture(ctx, capture); err != nil {
			if errors.Is(err, ErrInsufficientPayment) {
				return "", nil, err
			}
			return "", nil, fmt.Errorf("%w: capturing %d from %s: %w", ErrTransferFailed, p.Price, caller.Hex(), err)
		}
	}

	c := l.stage()
	if capture != nil {
		applied := *capture
		applied.Status = models.CaptureApplied
		c.Capture = &applied
	}
	c.setBalance(p.Author, creatorBalance)
	c.setPlatformBalance(platformBalance)
	c.Entitlement = &models.Entitlement{PostID: postID, Account: caller, CreatedAt: c.at}
	c.emit(models.Event{
		Kind:    models.EventContentAccessed,
		PostID:  postID,
		Account: caller,
		Amount:  p.Price,
	})
	c.emit(models.Event{
		Kind:    models.EventCreatorPaid,
		PostID:  postID,
		Account: p.Author,
		Amount:  share,
	})

	if err := l.commit(ctx, c); err != nil {
		if capture != nil {
			if rerr := l.transferer.Refund(ctx, capture); rerr != nil {
				// stays held; Recover refunds it
				l.onJournal(errors.Join(fmt.Errorf("capture %s of %d from %s not refunded", capture.ID, capture.Amount, caller.Hex()), rerr))
			}
		}
		return "", nil, err
	}
	return p.Content, c.Events, nil
}

// ViewContent returns the content reference of a free post, or of any post
// to its author. It never moves value.
func (l *Ledger) ViewContent(caller common.Address, postID uint64) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.state.post(postID)
	if !ok {
		return "", ErrPostNotFound
	}
	if p.ContentType == models.ContentFree || p.Author == caller {
		return p.Content, nil
	}
	return "", ErrAccessDenied
}

// CanRead reports whether caller may read postID's content: the post is
// free, caller is its author, or caller has paid for it.
func (l *Ledger) CanRead(caller common.Address, postID uint64) (*models.Post, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.state.post(postID)
	if !ok {
		return nil, ErrPostNotFound
	}
	if p.ContentType == models.ContentFree || p.Author == caller || l.state.isEntitled(postID, caller) {
		out := *p
		return &out, nil
	}
	return nil, ErrAccessDenied
}
