package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const deliveryTimeout = 30 * time.Second

// DispatcherOptions configures a Dispatcher. Zero values pick defaults.
type DispatcherOptions struct {
	Rate      float64 // messages per second, default 5
	Burst     int     // default 5
	QueueSize int     // default 256

	// Registerer, when set, receives the dispatcher counters.
	Registerer prometheus.Registerer
}

// Dispatcher is the Notifier used in production. Send enqueues and returns
// immediately; a background worker paces delivery through the Mailer and
// logs failures. A full queue drops the message with a warning.
type Dispatcher struct {
	Mailer  Mailer
	Logger  *slog.Logger
	Limiter *rate.Limiter

	queue chan Message

	sent    prometheus.Counter
	failed  prometheus.Counter
	dropped prometheus.Counter

	// stopped is set under mu before the final drain so Send never queues
	// behind it.
	mu      sync.RWMutex
	stopped bool

	// Internal channels for lifecycle management
	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewDispatcher(mailer Mailer, logger *slog.Logger, opts DispatcherOptions) *Dispatcher {
	if opts.Rate <= 0 {
		opts.Rate = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identity", Subsystem: "notifications", Name: name, Help: help,
		})
	}
	d := &Dispatcher{
		Mailer:  mailer,
		Logger:  logger,
		Limiter: rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst),
		queue:   make(chan Message, opts.QueueSize),
		sent:    counter("sent_total", "Notifications delivered."),
		failed:  counter("failed_total", "Notifications the mailer rejected."),
		dropped: counter("dropped_total", "Notifications dropped because the queue was full or the dispatcher had stopped."),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	if opts.Registerer != nil {
		opts.Registerer.MustRegister(d.sent, d.failed, d.dropped)
	}
	return d
}

// Send implements Notifier.
func (d *Dispatcher) Send(_ context.Context, msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.dropped.Inc()
		d.Logger.Warn("notification dispatcher stopped, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.dropped.Inc()
		d.Logger.Warn("notification queue full, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
		)
	}
}

// Start begins the background worker. Non-blocking.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		go d.run()
		d.Logger.Info("notification dispatcher started", slog.Int("queue_size", cap(d.queue)))
	})
}

// Stop delivers whatever is still queued, without pacing, then returns.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()

		close(d.stopCh)
		d.startOnce.Do(func() { go d.run() })
		<-d.doneCh
		d.Logger.Info("notification dispatcher stopped")
	})
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case msg := <-d.queue:
			d.paced(msg)
		case <-d.stopCh:
			d.drain()
			return
		}
	}
}

func (d *Dispatcher) paced(msg Message) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-d.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	// Stop interrupts the wait; the message is still delivered.
	_ = d.Limiter.Wait(ctx)
	d.deliver(msg)
}

func (d *Dispatcher) drain() {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := d.Mailer.Deliver(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		d.failed.Inc()
		d.Logger.Error("failed to deliver notification",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
		return
	}
	d.sent.Inc()
	d.Logger.Debug("notification delivered", slog.String("to", msg.To), slog.String("subject", msg.Subject))
}
