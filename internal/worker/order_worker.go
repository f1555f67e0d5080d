package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/laramoda/storefront-api/internal/model"
	"github.com/laramoda/storefront-api/internal/repository"
)

const (
	orderQueueName = "order.events"
	dlxExchange    = "order.events.dlx"
	dlqQueueName   = "order.events.dlq"
	idempotencyTTL = 24 * time.Hour
)

var errUnknownEvent = errors.New("unknown order event")

// Deduper remembers which events were already handled.
type Deduper interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

type redisDeduper struct{ client *redis.Client }

// NewRedisDeduper returns nil when client is nil, which disables deduplication.
func NewRedisDeduper(client *redis.Client) Deduper {
	if client == nil {
		return nil
	}
	return redisDeduper{client: client}
}

func (d redisDeduper) Seen(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (d redisDeduper) Mark(ctx context.Context, key string) error {
	return d.client.Set(ctx, key, "1", idempotencyTTL).Err()
}

// OrderWorker consumes order events and records the status history.
type OrderWorker struct {
	channel     *amqp.Channel
	historyRepo repository.OrderHistoryRepository
	deduper     Deduper
	log         *slog.Logger
	done        chan struct{}
}

func NewOrderWorker(
	ch *amqp.Channel,
	historyRepo repository.OrderHistoryRepository,
	deduper Deduper,
	log *slog.Logger,
) *OrderWorker {
	return &OrderWorker{
		channel:     ch,
		historyRepo: historyRepo,
		deduper:     deduper,
		log:         log,
		done:        make(chan struct{}),
	}
}

// SetupRabbitMQ declares the event queue with its dead-letter exchange and queue.
func SetupRabbitMQ(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, orderQueueName, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": orderQueueName,
	}); err != nil {
		return fmt.Errorf("declare order queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}
	return nil
}

func (w *OrderWorker) Start(ctx context.Context) error {
	msgs, err := w.channel.Consume(orderQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				w.processMessage(ctx, msg)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	w.log.Info("order worker started", "queue", orderQueueName)
	return nil
}

func (w *OrderWorker) Stop() { close(w.done) }

func (w *OrderWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	var event model.OrderMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		w.log.Error("unmarshal order event", "error", err)
		_ = msg.Nack(false, false)
		return
	}

	log := w.log.With("order_id", event.OrderID, "event", event.Event, "to_status", event.ToStatus)

	key := idempotencyKey(event)
	if w.deduper != nil {
		seen, err := w.deduper.Seen(ctx, key)
		if err != nil {
			log.Error("check idempotency key", "error", err)
			_ = msg.Nack(false, true)
			return
		}
		if seen {
			log.Info("order event already handled, skipping")
			_ = msg.Ack(false)
			return
		}
	}

	if err := w.handleEvent(ctx, event); err != nil {
		log.Error("handle order event", "error", err)
		_ = msg.Nack(false, false) // dead-lettered
		return
	}

	if w.deduper != nil {
		if err := w.deduper.Mark(ctx, key); err != nil {
			log.Error("set idempotency key", "error", err)
		}
	}

	_ = msg.Ack(false)
	log.Info("order event handled")
}

func (w *OrderWorker) handleEvent(ctx context.Context, event model.OrderMessage) error {
	change := &model.OrderStatusChange{
		OrderID:   event.OrderID,
		ToStatus:  event.ToStatus,
		ChangedAt: event.OccurredAt,
	}
	switch event.Event {
	case model.OrderEventCreated:
	case model.OrderEventStatusChanged:
		change.FromStatus = event.FromStatus
	default:
		return fmt.Errorf("%w: %q", errUnknownEvent, event.Event)
	}
	if change.ChangedAt.IsZero() {
		change.ChangedAt = time.Now()
	}
	if err := w.historyRepo.Record(ctx, change); err != nil {
		return fmt.Errorf("record status change: %w", err)
	}
	return nil
}

func idempotencyKey(e model.OrderMessage) string {
	return fmt.Sprintf("order_event:%s:%s:%s:%d", e.OrderID, e.Event, e.ToStatus, e.OccurredAt.UnixNano())
}
