package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/notification"
)

// Config holds dispatcher configuration
type Config struct {
	WorkerCount     int           // default: 2
	QueueSize       int           // default: 100
	DeliveryTimeout time.Duration // default: 10 seconds
}

// Dispatcher delivers messages to a sink from background workers so that
// request handlers never wait on the chat service.
type Dispatcher struct {
	sink   notification.Sink
	config Config

	mu     sync.RWMutex
	closed bool
	queue  chan notification.Message
	wg     sync.WaitGroup
}

var _ notification.Notifier = (*Dispatcher)(nil)

// NewDispatcher starts the workers. Stop must be called on shutdown.
func NewDispatcher(sink notification.Sink, cfg Config) *Dispatcher {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 100
	}
	if cfg.DeliveryTimeout == 0 {
		cfg.DeliveryTimeout = 10 * time.Second
	}

	d := &Dispatcher{
		sink:   sink,
		config: cfg,
		queue:  make(chan notification.Message, cfg.QueueSize),
	}
	for i := 0; i < cfg.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	slog.Info("notification dispatcher started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return d
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for msg := range d.queue {
		d.deliver(context.Background(), msg, id)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg notification.Message, worker int) {
	ctx, cancel := context.WithTimeout(ctx, d.config.DeliveryTimeout)
	defer cancel()

	if err := d.sink.Deliver(ctx, msg); err != nil {
		slog.Error("notification delivery failed",
			"worker", worker,
			"type", msg.Type,
			"audience", msg.Audience,
			"employee_id", msg.EmployeeID,
			"error", err,
		)
	}
}

// Notify implements notification.Notifier. When the queue is full the
// message is delivered on the caller's goroutine; after Stop it is dropped.
func (d *Dispatcher) Notify(ctx context.Context, msg notification.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("notification dropped", "type", msg.Type, "error", notification.ErrQueueClosed)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.deliver(context.WithoutCancel(ctx), msg, -1)
	}
}

// Stop closes the queue and waits for queued messages to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
	slog.Info("notification dispatcher stopped")
}
