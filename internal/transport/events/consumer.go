// Package events потребитель очереди RabbitMQ с событиями сервиса заказов.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/pos-ledger/internal/domain"
)

const (
	reconnectDelay       = 5 * time.Second
	maxReconnectAttempts = 10
	consumerTimeout      = 30 * time.Second
)

var (
	ErrMaxReconnects     = errors.New("max reconnection attempts reached")
	errMalformed         = errors.New("malformed message")
	errUnknownEventType  = errors.New("unknown event type")
	errInvalidEventID    = errors.New("event id must be a UUID")
	errChannelNotReady   = errors.New("channel is not initialized")
	errDeliveriesStopped = errors.New("deliveries channel closed")
)

type Config struct {
	URL     string
	Queue   string
	Workers int
}

// Consumer читает события из долговременной очереди с ручным подтверждением. При обрыве соединения
// переподключается с растущей задержкой.
type Consumer struct {
	cfg     Config
	handler SettlementHandler
	l       *logrus.Entry

	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex

	now func() time.Time
}

func New(cfg Config, handler SettlementHandler, l *logrus.Logger) *Consumer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Consumer{
		cfg:     cfg,
		handler: handler,
		l: l.WithFields(logrus.Fields{
			"component": "transport",
			"module":    "events",
		}),
		now: time.Now,
	}
}

// Run блокируется до отмены контекста. Возвращает ошибку, если соединение не удалось восстановить.
func (c *Consumer) Run(ctx context.Context) error {
	attempt := 0
	for {
		connected, err := c.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			attempt = 0
		}
		attempt++
		if attempt > maxReconnectAttempts {
			return fmt.Errorf("consumer: %w: %w", ErrMaxReconnects, err)
		}

		delay := reconnectDelay * time.Duration(attempt)
		c.l.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Warn("rabbitmq connection lost, reconnecting")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil
		}
	}
}

// consume держит одно соединение: объявляет очередь, запускает воркеров и ждет их завершения.
func (c *Consumer) consume(ctx context.Context) (bool, error) {
	if err := c.connect(); err != nil {
		return false, err
	}
	defer c.close()

	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	if channel == nil {
		return false, errChannelNotReady
	}

	msgs, err := channel.Consume(
		c.cfg.Queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return true, fmt.Errorf("failed to start consuming: %w", err)
	}

	c.l.WithField("workers", c.cfg.Workers).Info("starting consumer workers")

	var wg sync.WaitGroup
	for i := range c.cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(ctx, msgs, i)
		}()
	}
	wg.Wait()

	return true, errDeliveriesStopped
}

func (c *Consumer) connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err = ch.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err = ch.Qos(c.cfg.Workers, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = ch
	c.mu.Unlock()

	c.l.WithField("queue", c.cfg.Queue).Info("connected to RabbitMQ")
	return nil
}

func (c *Consumer) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *Consumer) worker(ctx context.Context, msgs <-chan amqp.Delivery, workerID int) {
	c.l.WithField("worker_id", workerID).Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			c.l.WithField("worker_id", workerID).Debug("worker stopped")
			return

		case msg, ok := <-msgs:
			if !ok {
				c.l.WithField("worker_id", workerID).Warn("message channel closed")
				return
			}
			c.processMessage(ctx, msg)
		}
	}
}

// processMessage подтверждает обработанные и повторные события. Битые сообщения и события, которые
// не пройдут проверку и при повторе, отклоняются без возврата в очередь. Прочие ошибки возвращают
// сообщение в очередь.
func (c *Consumer) processMessage(ctx context.Context, msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(ctx, consumerTimeout)
	defer cancel()

	// тело события содержит суммы и идентификаторы покупателей, в лог идут только метаданные
	entry := c.l.WithFields(logrus.Fields{
		"delivery_tag": msg.DeliveryTag,
		"body_size":    len(msg.Body),
	})

	var (
		duplicate bool
		envelope  Envelope
	)
	err := json.Unmarshal(msg.Body, &envelope)
	if err != nil {
		err = fmt.Errorf("%w: envelope: %w", errMalformed, err)
	} else {
		entry = entry.WithFields(logrus.Fields{"event_id": envelope.EventID, "type": envelope.Type})
		duplicate, err = c.dispatch(ctx, envelope)
	}
	switch {
	case err == nil:
		if duplicate {
			entry.Debug("duplicate event acknowledged")
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			entry.WithError(ackErr).Warn("failed to ack message")
		}
	case isPermanent(err):
		entry.WithError(err).Error("rejecting event")
		_ = msg.Nack(false, false)
	default:
		entry.WithError(err).Error("failed to apply event, requeueing")
		_ = msg.Nack(false, true)
	}
}

func (c *Consumer) dispatch(ctx context.Context, envelope Envelope) (bool, error) {
	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		return false, errInvalidEventID
	}

	switch envelope.Type {
	case TypeOrderCompleted:
		var message OrderCompletedMessage
		if err = json.Unmarshal(envelope.Data, &message); err != nil {
			return false, fmt.Errorf("%w: %s: %w", errMalformed, envelope.Type, err)
		}
		order, convErr := message.toCompletedOrder(c.now())
		if convErr != nil {
			return false, convErr
		}
		result, applyErr := c.handler.ApplyCompletedOrder(ctx, eventID, order)
		if applyErr != nil {
			return false, applyErr //nolint:wrapcheck
		}
		return result.Duplicate, nil

	case TypeDuePaid:
		var message DuePaidMessage
		if err = json.Unmarshal(envelope.Data, &message); err != nil {
			return false, fmt.Errorf("%w: %s: %w", errMalformed, envelope.Type, err)
		}
		event, convErr := message.toDuePaid(c.now())
		if convErr != nil {
			return false, convErr
		}
		result, applyErr := c.handler.ApplyDuePaid(ctx, eventID, event)
		if applyErr != nil {
			return false, applyErr //nolint:wrapcheck
		}
		return result.Duplicate, nil

	default:
		return false, fmt.Errorf("%w %q", errUnknownEventType, envelope.Type)
	}
}

// isPermanent ошибки, которые не исчезнут при повторной доставке.
func isPermanent(err error) bool {
	return errors.Is(err, errMalformed) ||
		errors.Is(err, errInvalidEventID) ||
		errors.Is(err, errUnknownEventType) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrRecordNotFound) ||
		errors.Is(err, domain.ErrAccessDenied)
}
