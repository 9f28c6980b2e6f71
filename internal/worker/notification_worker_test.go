package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu       sync.Mutex
	payloads []string
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, channel+":"+string(payload))
	return nil
}

func (p *recordingPublisher) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.payloads...)
}

func TestWorkerDeliversInOrder(t *testing.T) {
	next := &recordingPublisher{}
	w := NewNotificationWorker(next, 8, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	require.NoError(t, w.Publish(ctx, "ticket-events", []byte("1")))
	require.NoError(t, w.Publish(ctx, "ticket-events", []byte("2")))

	require.Eventually(t, func() bool { return len(next.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	w.Wait()
	assert.Equal(t, []string{"ticket-events:1", "ticket-events:2"}, next.snapshot())
}

func TestWorkerFlushesOnShutdown(t *testing.T) {
	next := &recordingPublisher{}
	w := NewNotificationWorker(next, 4, zap.NewNop())
	require.NoError(t, w.Publish(context.Background(), "c", []byte("queued")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	w.Wait()

	assert.Equal(t, []string{"c:queued"}, next.snapshot())
}

func TestWorkerRejectsWhenFull(t *testing.T) {
	w := NewNotificationWorker(&recordingPublisher{}, 1, zap.NewNop())
	require.NoError(t, w.Publish(context.Background(), "c", []byte("a")))
	assert.ErrorIs(t, w.Publish(context.Background(), "c", []byte("b")), ErrQueueFull)
}
