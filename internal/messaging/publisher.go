package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type Publisher struct {
	conn *Connection
	log  *zap.Logger
}

func NewPublisher(conn *Connection, log *zap.Logger) *Publisher {
	return &Publisher{conn: conn, log: log.Named("publisher")}
}

// Publish sends msg as persistent JSON to exchange with routingKey.
func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, msg interface{}) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.log.Error("publish failed",
			zap.String("exchange", exchange),
			zap.String("routingKey", routingKey),
			zap.Error(err),
		)
		return fmt.Errorf("publish to %s: %w", exchange, err)
	}

	p.log.Debug("published",
		zap.String("exchange", exchange),
		zap.String("routingKey", routingKey),
		zap.Int("bytes", len(body)),
	)
	return nil
}
