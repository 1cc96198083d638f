package mail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// ErrQueueFull is returned by Send when the message was dropped.
var ErrQueueFull = errors.New("mail queue is full")

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("mail dispatcher is closed")

var _ model.Mailer = (*Dispatcher)(nil)

// DispatcherConfig controls queueing and retries.
type DispatcherConfig struct {
	QueueSize  int
	MaxRetries uint64
	RetryBase  time.Duration
	// Timeout bounds a single message including its retries.
	Timeout time.Duration
}

type message struct {
	to      string
	subject string
	body    string
}

// Dispatcher queues messages and delivers them on a background worker so
// callers never wait for the relay.
type Dispatcher struct {
	cfg       DispatcherConfig
	sender    model.Mailer
	log       *logger.Logger
	ch        chan message
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	failed    atomic.Uint64

	// mu orders Send against Close: nothing is enqueued once done is closed.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(cfg DispatcherConfig, sender model.Mailer, log *logger.Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	d := &Dispatcher{
		cfg:    cfg,
		sender: sender,
		log:    log,
		ch:     make(chan message, cfg.QueueSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Send enqueues the message without blocking.
func (d *Dispatcher) Send(_ context.Context, to, subject, body string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	select {
	case d.ch <- message{to: to, subject: subject, body: body}:
		return nil
	default:
		d.dropped.Add(1)
		d.log.Warn("Mail dispatcher: queue full, message dropped", "to", to, "subject", subject)
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.ch:
			d.deliver(msg)
		case <-d.done:
			for {
				select {
				case msg := <-d.ch:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
	defer cancel()

	backoff := retry.WithMaxRetries(d.cfg.MaxRetries, retry.NewExponential(d.cfg.RetryBase))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := d.sender.Send(ctx, msg.to, msg.subject, msg.body); err != nil {
			d.log.Debug("Mail dispatcher: attempt failed", "to", msg.to, "attempt", attempt, "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		d.failed.Add(1)
		d.log.Error("Mail dispatcher: failed to deliver message", "to", msg.to, "subject", msg.subject, "attempts", attempt, "error", err.Error())
		return
	}

	d.log.Info("Mail dispatcher: message delivered", "to", msg.to, "subject", msg.subject)
}

// Close stops accepting messages and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.done)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Dropped returns how many messages were rejected because the queue was full.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Failed returns how many messages exhausted their retries.
func (d *Dispatcher) Failed() uint64 {
	return d.failed.Load()
}
