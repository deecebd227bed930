package messaging

import (
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	OrdersExchange         = "orders"
	OrderPlacedKey         = "order.placed"
	OrderNotificationQueue = "order_notifications"

	// Messages rejected for good are routed here and parked in
	// OrderNotificationQueue + deadSuffix for an operator to inspect.
	DeadLetterExchange = "orders.dead"

	retrySuffix = ".retry"
	deadSuffix  = ".dead"
)

// RetryQueue is where a failed message waits out its backoff before
// expiring back into queue.
func RetryQueue(queue string) string {
	return queue + retrySuffix
}

// DeadQueue holds messages from queue that exhausted their attempts.
func DeadQueue(queue string) string {
	return queue + deadSuffix
}

const connectAttempts = 5

// Connection owns one AMQP connection and channel and redials on demand.
type Connection struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	url     string
	log     *zap.Logger
}

func Dial(url string, log *zap.Logger) (*Connection, error) {
	c := &Connection{url: url, log: log.Named("rabbitmq")}
	if err := c.connect(); err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	return c, nil
}

func (c *Connection) connect() error {
	var err error
	for i := 0; i < connectAttempts; i++ {
		if err = c.open(); err == nil {
			c.log.Info("connected", zap.Int("attempt", i+1))
			return nil
		}
		if i < connectAttempts-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			c.log.Warn("connect failed, retrying", zap.Duration("wait", wait), zap.Error(err))
			time.Sleep(wait)
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", connectAttempts, err)
}

func (c *Connection) open() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	c.conn, c.channel = conn, ch

	if err := c.declareTopology(); err != nil {
		c.close()
		return err
	}
	return nil
}

func (c *Connection) declareTopology() error {
	if err := c.channel.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", OrdersExchange, err)
	}
	if err := c.channel.ExchangeDeclare(DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", DeadLetterExchange, err)
	}

	queue := OrderNotificationQueue
	if _, err := c.channel.QueueDeclare(queue, true, false, false, false, amqp091.Table{
		"x-dead-letter-exchange": DeadLetterExchange,
	}); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := c.channel.QueueBind(queue, OrderPlacedKey, OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s to %s: %w", queue, OrderPlacedKey, err)
	}

	// Expired retries go back to the work queue through the default exchange.
	if _, err := c.channel.QueueDeclare(RetryQueue(queue), true, false, false, false, amqp091.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queue,
	}); err != nil {
		return fmt.Errorf("declare queue %s: %w", RetryQueue(queue), err)
	}

	if _, err := c.channel.QueueDeclare(DeadQueue(queue), true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", DeadQueue(queue), err)
	}
	if err := c.channel.QueueBind(DeadQueue(queue), "", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s to %s: %w", DeadQueue(queue), DeadLetterExchange, err)
	}
	return nil
}

func (c *Connection) Channel() *amqp091.Channel {
	return c.channel
}

func (c *Connection) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}

func (c *Connection) Reconnect() error {
	c.close()
	return c.connect()
}

func (c *Connection) Close() error {
	return c.close()
}

func (c *Connection) close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
