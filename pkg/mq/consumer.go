package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"portfolio/pkg/metrics"
	"portfolio/pkg/otel"
	"portfolio/pkg/trace"
	"portfolio/pkg/util"
)

type MessageHandler func(ctx context.Context, data json.RawMessage) error

// Acknowledger is the subset of amqp091.Delivery the consumer needs.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// RetryCounter counts deliveries per message; *util.RetryCounter implements it.
type RetryCounter interface {
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

type Consumer struct {
	channel    *amqp091.Channel
	queue      amqp091.Queue
	routingKey string
	handler    MessageHandler
	conn       *amqp091.Connection
	logger     *zap.Logger
	retries    RetryCounter
	maxRetries int64
	local      localCounter
}

// 计数器不可用时的进程内兜底，最多跟踪 localCounterCap 条消息
const localCounterCap = 1024

type localCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// incr 返回新的计数；表满且 key 未被跟踪时 ok=false
func (l *localCounter) incr(key string) (n int64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts == nil {
		l.counts = make(map[string]int64)
	}
	n, tracked := l.counts[key]
	if !tracked && len(l.counts) >= localCounterCap {
		return 0, false
	}
	n++
	l.counts[key] = n
	return n, true
}

func (l *localCounter) reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, key)
}

// NewConsumer creates a consumer for a specific routing key.
func NewConsumer(url, queueName, routingKey string, logger *zap.Logger) (*Consumer, error) {
	conn, ch, err := openChannel(url)
	if err != nil {
		return nil, err
	}

	if err := DeclareDLQExchange(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare dlq exchange: %w", err)
	}
	if _, err := DeclareDLQQueue(ch, routingKey); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		deadLetterArgs(),
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, ExchangeName, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	logger.Info("Consumer initialized",
		zap.String("routing_key", routingKey),
		zap.String("queue", queueName),
		zap.String("exchange", ExchangeName),
	)

	return &Consumer{
		conn:       conn,
		channel:    ch,
		queue:      q,
		routingKey: routingKey,
		logger:     logger,
	}, nil
}

func (c *Consumer) SetHandler(h MessageHandler) {
	c.handler = h
}

// WithRetryLimit caps how often one message is requeued; after limit attempts
// it is dead-lettered. Without it retryable errors requeue indefinitely.
func (c *Consumer) WithRetryLimit(rc RetryCounter, limit int64) *Consumer {
	c.retries = rc
	c.maxRetries = limit
	return c
}

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Ping reports whether the broker connection is still open.
func (c *Consumer) Ping(context.Context) error {
	if c.conn == nil || c.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed")
	}
	return nil
}

// StartConsuming blocks until ctx is done or the delivery channel closes.
func (c *Consumer) StartConsuming(ctx context.Context) error {
	if c.handler == nil {
		return fmt.Errorf("consumer handler not set")
	}

	deliveries, err := c.channel.ConsumeWithContext(ctx,
		c.queue.Name,
		"",
		false, // 手动ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Consumer started consuming messages",
		zap.String("routing_key", c.routingKey),
		zap.String("queue", c.queue.Name),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return nil
			}
			msgCtx := otel.ExtractMQ(ctx, msg.Headers)
			if id, ok := msg.Headers[trace.HeaderName].(string); ok {
				msgCtx = trace.WithContext(msgCtx, id)
			}
			c.Dispatch(msgCtx, msg, msg.MessageId, msg.Body)
		}
	}
}

// Dispatch runs the handler for one message and guarantees exactly one ack or nack.
// Retryable failures are requeued until the retry limit, everything else is
// dead-lettered.
func (c *Consumer) Dispatch(ctx context.Context, ack Acknowledger, messageID string, body []byte) {
	start := time.Now()
	ctx, span := otel.MQConsumeSpan(ctx, c.routingKey, c.queue.Name)
	defer span.End()
	defer func() {
		metrics.RecordMQConsumeLatency(c.routingKey, c.queue.Name, time.Since(start))
	}()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Handler panic recovered",
				zap.String("routing_key", c.routingKey),
				zap.Any("panic", r),
			)
			// panic 不重新入队，避免毒消息循环
			if err := ack.Nack(false, false); err != nil {
				c.logger.Error("Failed to nack message after panic", zap.Error(err))
			}
		}
	}()

	if err := c.handler(ctx, body); err != nil {
		retryable, kind := util.IsRetryableError(err)
		requeue := retryable && c.withinRetryLimit(ctx, messageID)
		c.logger.Error("Handler error",
			zap.String("routing_key", c.routingKey),
			zap.String("queue", c.queue.Name),
			zap.String("message_id", messageID),
			zap.String("error_type", kind),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if err := ack.Nack(false, requeue); err != nil {
			c.logger.Error("Failed to nack message", zap.Error(err))
		}
		return
	}
	c.resetRetries(ctx, messageID)

	if err := ack.Ack(false); err != nil {
		c.logger.Error("Failed to ack message",
			zap.String("routing_key", c.routingKey),
			zap.Error(err),
		)
	}
}

// withinRetryLimit counts this attempt. When the shared counter fails the
// attempt is counted in process instead; once that table is full the message
// is dead-lettered.
func (c *Consumer) withinRetryLimit(ctx context.Context, messageID string) bool {
	if c.retries == nil || messageID == "" {
		return true
	}
	key := util.FormatRetryKey(c.routingKey, messageID)
	n, err := c.retries.IncrementAndGet(ctx, key)
	if err != nil {
		var ok bool
		n, ok = c.local.incr(key)
		if !ok {
			c.logger.Warn("Retry counter unavailable and local table full, dead-lettering",
				zap.String("message_id", messageID),
				zap.Error(err),
			)
			return false
		}
		c.logger.Warn("Retry counter unavailable, counting locally",
			zap.String("message_id", messageID),
			zap.Int64("attempt", n),
			zap.Error(err),
		)
	}
	if n > c.maxRetries {
		c.resetRetries(ctx, messageID)
		return false
	}
	return true
}

func (c *Consumer) resetRetries(ctx context.Context, messageID string) {
	if c.retries == nil || messageID == "" {
		return
	}
	key := util.FormatRetryKey(c.routingKey, messageID)
	c.local.reset(key)
	if err := c.retries.Reset(ctx, key); err != nil {
		c.logger.Warn("Failed to reset retry counter", zap.Error(err))
	}
}
