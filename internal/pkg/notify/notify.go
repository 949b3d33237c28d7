// Package notify delivers user notifications off the request path.
//
// Producers call Notify, which only enqueues. A fixed pool of workers drains the
// queue and hands each notification to a Sink, retrying failed deliveries with
// exponential backoff. Delivery failures are logged and never reported back to
// the producer.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Type identifies what happened
type Type string

const (
	TypeRating  Type = "rating"
	TypeComment Type = "comment"
	TypeReply   Type = "reply"
)

// Notification is a single message addressed to one user
type Notification struct {
	UserID  int64
	Type    Type
	Message string
	Link    string
}

// Sink persists or forwards a notification
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}

// Notifier is the producer side used by services
type Notifier interface {
	Notify(n Notification) bool
}

// Config holds dispatcher settings
type Config struct {
	Workers         int
	QueueSize       int
	MaxRetries      int
	InitialInterval time.Duration
	DeliveryTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.QueueSize < 1 {
		c.QueueSize = 256
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 200 * time.Millisecond
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = 5 * time.Second
	}
	return c
}

// Dispatcher is an asynchronous, best-effort Notifier
type Dispatcher struct {
	sink   Sink
	config Config
	logger zerolog.Logger

	queue   chan Notification
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher creates a dispatcher. Call Start before producing.
func NewDispatcher(sink Sink, config Config, logger zerolog.Logger) *Dispatcher {
	config = config.withDefaults()
	return &Dispatcher{
		sink:   sink,
		config: config,
		logger: logger.With().Str("component", "notify").Logger(),
		queue:  make(chan Notification, config.QueueSize),
	}
}

// Start launches the worker pool
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	d.logger.Info().Int("workers", d.config.Workers).Int("queue_size", d.config.QueueSize).Msg("Starting notification dispatcher")
	for i := 0; i < d.config.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Notify enqueues n without blocking. It reports false when the notification was dropped.
func (d *Dispatcher) Notify(n Notification) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn().Int64("user_id", n.UserID).Str("type", string(n.Type)).Msg("Dispatcher stopped, dropping notification")
		return false
	}

	select {
	case d.queue <- n:
		return true
	default:
		d.logger.Warn().Int64("user_id", n.UserID).Str("type", string(n.Type)).Msg("Notification queue full, dropping notification")
		return false
	}
}

// Stop closes the queue and waits for the workers to drain it or for ctx to expire
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info().Msg("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn().Int("pending", len(d.queue)).Msg("Notification dispatcher stop timed out")
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for n := range d.queue {
		if err := d.deliver(n); err != nil {
			d.logger.Error().Err(err).
				Int("worker_id", id).
				Int64("user_id", n.UserID).
				Str("type", string(n.Type)).
				Msg("Failed to deliver notification")
		}
	}
}

func (d *Dispatcher) deliver(n Notification) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.config.InitialInterval
	b.MaxElapsedTime = 0

	attempts := 0
	operation := func() error {
		attempts++
		ctx, cancel := context.WithTimeout(context.Background(), d.config.DeliveryTimeout)
		defer cancel()
		return d.sink.Deliver(ctx, n)
	}

	err := backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(b, uint64(d.config.MaxRetries)),
		func(err error, wait time.Duration) {
			d.logger.Warn().Err(err).Int64("user_id", n.UserID).Dur("backoff", wait).Msg("Notification delivery attempt failed")
		},
	)
	if err != nil {
		return fmt.Errorf("giving up after %d attempts: %w", attempts, err)
	}
	return nil
}

// ResourceLink returns the in-app link of a resource page
func ResourceLink(resourceID string) string {
	return "/resources/" + resourceID
}

// RatingMessage formats the message sent to an owner on a first-time rating
func RatingMessage(actor, title string, value int) string {
	return fmt.Sprintf("%s rated %q %d/5", actor, title, value)
}

// CommentMessage formats the message sent to an owner on a new comment
func CommentMessage(actor, title string) string {
	return fmt.Sprintf("%s commented on %q", actor, title)
}

// ReplyMessage formats the message sent to a parent comment's author
func ReplyMessage(actor, title string) string {
	return fmt.Sprintf("%s replied to your comment on %q", actor, title)
}
