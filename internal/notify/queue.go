package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"catering/internal/messaging"

	"go.uber.org/zap"
)

// Publisher is the part of messaging.Publisher the queue notifier needs.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, msg interface{}) error
}

var _ Publisher = (*messaging.Publisher)(nil)

// QueueNotifier hands notifications to the worker over RabbitMQ.
type QueueNotifier struct {
	pub Publisher
	log *zap.Logger
}

func NewQueueNotifier(pub Publisher, log *zap.Logger) *QueueNotifier {
	return &QueueNotifier{pub: pub, log: log.Named("notify")}
}

func (q *QueueNotifier) Notify(ctx context.Context, msg OrderPlaced) error {
	if err := q.pub.Publish(ctx, messaging.OrdersExchange, messaging.OrderPlacedKey, msg); err != nil {
		return fmt.Errorf("queue order %s: %w", msg.OrderID, err)
	}
	q.log.Info("order notification queued", zap.String("orderID", msg.OrderID))
	return nil
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

// Worker turns queued OrderPlaced messages into emails.
type Worker struct {
	sender Notifier
	log    *zap.Logger
}

func NewWorker(sender Notifier, log *zap.Logger) *Worker {
	return &Worker{sender: sender, log: log.Named("worker")}
}

// Handle is a messaging.Handler. Malformed messages are logged and dropped;
// send failures are returned so the consumer retries the message.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var msg OrderPlaced
	if err := json.Unmarshal(body, &msg); err != nil {
		w.log.Error("dropping malformed message", zap.Error(err), zap.ByteString("body", body))
		return nil
	}
	return w.sender.Notify(ctx, msg)
}
