package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Consumer consumes query events and persists them to the store.
type Consumer struct {
	subscriber message.Subscriber
	store      Store
	logger     *zap.Logger
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewConsumer creates a new analytics consumer.
func NewConsumer(subscriber message.Subscriber, store Store, logger *zap.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		store:      store,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Start begins consuming messages from both topics.
func (c *Consumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	searchMsgs, err := c.subscriber.Subscribe(ctx, TopicSearchPerformed)
	if err != nil {
		return err
	}

	checkedMsgs, err := c.subscriber.Subscribe(ctx, TopicAvailabilityChecked)
	if err != nil {
		return err
	}

	go c.consumeLoop(ctx, searchMsgs, checkedMsgs)

	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, searchMsgs, checkedMsgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-searchMsgs:
			if !ok {
				return
			}

			c.handleSearchPerformed(ctx, msg)
		case msg, ok := <-checkedMsgs:
			if !ok {
				return
			}

			c.handleAvailabilityChecked(ctx, msg)
		}
	}
}

func (c *Consumer) handleSearchPerformed(ctx context.Context, msg *message.Message) {
	var event SearchPerformedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("failed to unmarshal search event", zap.Error(err))
		msg.Nack()

		return
	}

	if err := c.store.SaveSearchPerformed(ctx, &event); err != nil {
		c.logger.Error("failed to save search event",
			zap.String("query", event.Query),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("processed search event", zap.String("query", event.Query))
}

func (c *Consumer) handleAvailabilityChecked(ctx context.Context, msg *message.Message) {
	var event AvailabilityCheckedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Error("failed to unmarshal availability event", zap.Error(err))
		msg.Nack()

		return
	}

	if err := c.store.SaveAvailabilityChecked(ctx, &event); err != nil {
		c.logger.Error("failed to save availability event",
			zap.String("isbn", event.ISBN),
			zap.Error(err),
		)
		msg.Nack()

		return
	}

	msg.Ack()

	c.logger.Debug("processed availability event", zap.String("isbn", event.ISBN))
}

// Shutdown stops the consumer and waits for in-flight messages to complete.
func (c *Consumer) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return c.subscriber.Close()
}
