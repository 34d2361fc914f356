package eventbus

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/logging"
)

// Audit logs every event published on the bus until ctx is done or the bus
// is closed.
func Audit(ctx context.Context, b *Bus, logger logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := b.Subscribe(ctx)
	if err != nil {
		return err
	}

	logger = logger.With("module", "audit")
	for msg := range messages {
		msg.Ack()

		e, err := Decode(msg)
		if err != nil {
			logger.Error(ctx, "undecodable event", "uuid", msg.UUID, "error", err)
			continue
		}
		logger.Info(ctx, "ledger event",
			"seq", e.Seq,
			"kind", string(e.Kind),
			"post_id", e.PostID,
			"account", e.Account.Hex(),
			"amount", uint64(e.Amount),
		)
	}
	return nil
}
