package messaging

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	handleTimeout = 30 * time.Second

	// MaxAttempts bounds how often one message is handled before it is
	// dead-lettered.
	MaxAttempts = 5

	// RetryHeader counts how many times a message has already failed.
	RetryHeader = "x-retry-count"

	retryBaseDelay = 5 * time.Second
	retryMaxDelay  = 5 * time.Minute
)

// Handler processes one message body. A non-nil error schedules a delayed
// retry until MaxAttempts is reached.
type Handler func(ctx context.Context, body []byte) error

type Consumer struct {
	conn     *Connection
	queue    string
	tag      string
	prefetch int
	log      *zap.Logger
}

func NewConsumer(conn *Connection, queue, tag string, prefetch int, log *zap.Logger) *Consumer {
	return &Consumer{
		conn:     conn,
		queue:    queue,
		tag:      tag,
		prefetch: prefetch,
		log:      log.Named("consumer").With(zap.String("queue", queue)),
	}
}

// Run consumes until ctx is cancelled, redialing when the broker drops the
// channel.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		if c.conn.IsClosed() {
			if err := c.conn.Reconnect(); err != nil {
				return fmt.Errorf("reconnect: %w", err)
			}
		}

		if err := c.conn.Channel().Qos(c.prefetch, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}
		deliveries, err := c.conn.Channel().Consume(c.queue, c.tag, false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consume %s: %w", c.queue, err)
		}
		c.log.Info("consuming", zap.Int("prefetch", c.prefetch))

		if done := c.drain(ctx, deliveries, handle); done {
			return ctx.Err()
		}
		c.log.Warn("delivery channel closed, reconnecting")
		if err := c.conn.Reconnect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}
}

func (c *Consumer) drain(ctx context.Context, deliveries <-chan amqp091.Delivery, handle Handler) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			c.process(ctx, d, handle)
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp091.Delivery, handle Handler) {
	start := time.Now()
	hctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	if err := handle(hctx, d.Body); err != nil {
		c.fail(ctx, d, time.Since(start), err)
		return
	}

	if err := d.Ack(false); err != nil {
		c.log.Error("ack failed", zap.Error(err))
		return
	}
	c.log.Debug("handled", zap.Uint64("deliveryTag", d.DeliveryTag), zap.Duration("took", time.Since(start)))
}

// fail parks d in the retry queue with a growing delay, or dead-letters it
// once MaxAttempts handling attempts have failed.
func (c *Consumer) fail(ctx context.Context, d amqp091.Delivery, took time.Duration, cause error) {
	failures := retryCount(d.Headers) + 1
	fields := []zap.Field{
		zap.Uint64("deliveryTag", d.DeliveryTag),
		zap.Int("attempt", failures),
		zap.Duration("took", took),
		zap.Error(cause),
	}

	if failures >= MaxAttempts {
		c.log.Error("handle failed, dead-lettering", fields...)
		if err := d.Nack(false, false); err != nil {
			c.log.Error("nack failed", zap.Error(err))
		}
		return
	}

	delay := retryDelay(failures)
	c.log.Warn("handle failed, retrying", append(fields, zap.Duration("delay", delay))...)

	pctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()
	err := c.conn.Channel().PublishWithContext(pctx, "", RetryQueue(c.queue), false, false, amqp091.Publishing{
		Headers:      withRetryCount(d.Headers, failures),
		ContentType:  d.ContentType,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    d.Timestamp,
		Expiration:   strconv.FormatInt(delay.Milliseconds(), 10),
		Body:         d.Body,
	})
	if err != nil {
		c.log.Error("schedule retry failed, requeueing", zap.Error(err))
		if err := d.Nack(false, true); err != nil {
			c.log.Error("nack failed", zap.Error(err))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		c.log.Error("ack failed", zap.Error(err))
	}
}

// retryCount reads RetryHeader; brokers may hand integers back in any width.
func retryCount(h amqp091.Table) int {
	switch v := h[RetryHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	default:
		return 0
	}
}

func withRetryCount(h amqp091.Table, n int) amqp091.Table {
	out := make(amqp091.Table, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[RetryHeader] = int32(n)
	return out
}

// retryDelay doubles from retryBaseDelay per failure, capped at retryMaxDelay.
func retryDelay(failures int) time.Duration {
	d := retryBaseDelay
	for i := 1; i < failures; i++ {
		d *= 2
		if d >= retryMaxDelay {
			return retryMaxDelay
		}
	}
	return d
}

func (c *Consumer) Close() error {
	if !c.conn.IsClosed() {
		if err := c.conn.Channel().Cancel(c.tag, false); err != nil {
			c.log.Warn("cancel consumer", zap.Error(err))
		}
	}
	return c.conn.Close()
}
