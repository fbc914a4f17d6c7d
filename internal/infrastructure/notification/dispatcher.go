// Package notification delivers status e-mails to clients off the request
// path.
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tsmit_os/internal/infrastructure/metrics"
	"tsmit_os/internal/usecase/interfaces"
)

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
)

var log = logrus.WithField("component", "notification")

// Dispatcher queues notifications and hands them to the wrapped notifier
// from a single background worker. Notify never blocks: when the queue is
// full the notification is dropped.
type Dispatcher struct {
	next    interfaces.INotifier
	timeout time.Duration
	queue   chan interfaces.StatusNotification
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ interfaces.INotifier = (*Dispatcher)(nil)

// NewDispatcher starts the worker. A queueSize below 1 is treated as 1.
func NewDispatcher(next interfaces.INotifier, queueSize int, timeout time.Duration) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		next:    next,
		timeout: timeout,
		queue:   make(chan interfaces.StatusNotification, queueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Notify(_ context.Context, n interfaces.StatusNotification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	n.Order = n.Order.Clone()
	select {
	case d.queue <- n:
		return nil
	default:
		metrics.RecordNotification(metrics.NotificationDropped)
		log.WithFields(logrus.Fields{
			"order_id":  n.Order.ID,
			"status_id": n.Status.ID,
		}).Warn("notification dropped, queue full")
		return ErrQueueFull
	}
}

// Close stops accepting notifications and waits for the queued ones to be
// delivered, or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n interfaces.StatusNotification) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	fields := logrus.Fields{
		"order_id":     n.Order.ID,
		"order_number": n.Order.OrderNumber,
		"status_id":    n.Status.ID,
	}
	if err := d.next.Notify(ctx, n); err != nil {
		metrics.RecordNotification(metrics.NotificationFailed)
		log.WithFields(fields).WithError(err).Error("notification failed")
		return
	}
	metrics.RecordNotification(metrics.NotificationSent)
	log.WithFields(fields).Info("notification sent")
}
