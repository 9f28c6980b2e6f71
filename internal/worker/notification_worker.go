package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-system/internal/service"
)

// ErrQueueFull is returned when the worker cannot accept another message.
var ErrQueueFull = errors.New("notification queue full")

type message struct {
	channel string
	payload []byte
}

// NotificationWorker moves event publication off the request path.
// It implements service.EventPublisher and forwards to the wrapped publisher from Run.
type NotificationWorker struct {
	next   service.EventPublisher
	queue  chan message
	logger *zap.Logger
	wg     sync.WaitGroup
}

var _ service.EventPublisher = (*NotificationWorker)(nil)

// NewNotificationWorker wraps next with a queue of the given capacity.
func NewNotificationWorker(next service.EventPublisher, capacity int, logger *zap.Logger) *NotificationWorker {
	if capacity <= 0 {
		capacity = 128
	}
	return &NotificationWorker{next: next, queue: make(chan message, capacity), logger: logger}
}

// Publish enqueues payload without blocking.
func (w *NotificationWorker) Publish(_ context.Context, channel string, payload []byte) error {
	select {
	case w.queue <- message{channel: channel, payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the drain loop. It stops when ctx is cancelled, after flushing queued messages.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Wait blocks until the drain loop has exited.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) run(ctx context.Context) {
	for {
		select {
		case msg := <-w.queue:
			w.deliver(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-w.queue:
					w.deliver(context.Background(), msg)
				default:
					return
				}
			}
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, msg message) {
	if err := w.next.Publish(ctx, msg.channel, msg.payload); err != nil {
		w.logger.Warn("notification delivery failed", zap.String("channel", msg.channel), zap.Error(err))
	}
}
