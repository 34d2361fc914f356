// Package eventbus fans committed ledger events out over an in-process
// watermill pub/sub so observers never sit on the ledger's critical path.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Bus struct {
	ch    *gochannel.GoChannel
	topic string
}

func New() *Bus {
	return &Bus{
		ch: gochannel.NewGoChannel(
			// per-message ack keeps delivery in Seq order
			gochannel.Config{BlockPublishUntilSubscriberAck: true},
			watermill.NewStdLogger(false, false),
		),
		topic: common.EventsTopic,
	}
}

// Publish sends one message per event, in order. Each payload is the JSON
// encoding of models.Event.
func (b *Bus) Publish(_ context.Context, events []models.Event) error {
	msgs := make([]*message.Message, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding event %d: %w", e.Seq, err)
		}
		msg := message.NewMessage(watermill.NewUUID(), data)
		msg.Metadata.Set("kind", string(e.Kind))
		msg.Metadata.Set("seq", strconv.FormatUint(e.Seq, 10))
		msgs = append(msgs, msg)
	}
	return b.ch.Publish(b.topic, msgs...)
}

func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.ch.Subscribe(ctx, b.topic)
}

func (b *Bus) Close() error {
	return b.ch.Close()
}

// Decode parses a message produced by Publish.
func Decode(msg *message.Message) (models.Event, error) {
	var e models.Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}
