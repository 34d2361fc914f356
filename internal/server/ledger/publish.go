package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// PublishFreeContent records a free post authored by caller.
func (l *Ledger) PublishFreeContent(ctx context.Context, caller common.Address, content string) (uint64, []models.Event, error) {
	return l.publish(ctx, caller, models.ContentFree, content, 0)
}

// PublishPaidContent records a post that non-authors must pay price to access.
func (l *Ledger) PublishPaidContent(ctx context.Context, caller common.Address, content string, price models.Amount) (uint64, []models.Event, error) {
	if price == 0 || price > models.MaxAmount {
		return 0, nil, ErrInvalidPrice
	}
	return l.publish(ctx, caller, models.ContentPaid, content, price)
}

func (l *Ledger) publish(ctx context.Context, caller common.Address, ct models.ContentType, content string, price models.Amount) (uint64, []models.Event, error) {
	if content == "" {
		return 0, nil, ErrEmptyContent
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.stage()
	id := l.state.nextPostID()
	c.Post = &models.Post{
		ID:          id,
		Author:      caller,
		ContentType: ct,
		Content:     content,
		Price:       price,
		Timestamp:   c.at,
		Exists:      true,
	}
	c.emit(models.Event{
		Kind:        models.EventContentPublished,
		PostID:      id,
		Account:     caller,
		ContentType: ct,
		Amount:      price,
	})

	if err := l.commit(ctx, c); err != nil {
		return 0, nil, err
	}
	return id, c.Events, nil
}
