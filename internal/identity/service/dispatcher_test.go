package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/aussiebroadwan/identity/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger { return slogx.Discard() }

type failingMailer struct{}

func (failingMailer) Deliver(context.Context, string, string, string) error {
	return errors.New("smtp: connection refused")
}

type memoryMailer struct {
	mu   sync.Mutex
	sent []Message
}

func (m *memoryMailer) Deliver(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Message{To: to, Subject: subject, Body: body})
	return nil
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	t.Parallel()
	m := &memoryMailer{}
	d := NewDispatcher(m, discardLogger(), DispatcherOptions{Rate: 1000, Burst: 10})
	d.Start()

	for _, to := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		d.Send(context.Background(), Message{To: to, Subject: "hi"})
	}
	d.Stop()

	require.Len(t, m.sent, 3)
	require.Equal(t, 3.0, testutil.ToFloat64(d.sent))
}

func TestDispatcherAbsorbsFailures(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(failingMailer{}, discardLogger(), DispatcherOptions{})
	d.Start()

	d.Send(context.Background(), Message{To: "a@x.com"})
	d.Stop()

	require.Equal(t, 1.0, testutil.ToFloat64(d.failed))
	require.Zero(t, testutil.ToFloat64(d.sent))
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	t.Parallel()
	m := &memoryMailer{}
	d := NewDispatcher(m, discardLogger(), DispatcherOptions{QueueSize: 2})

	// Not started, so nothing drains the queue.
	for range 5 {
		d.Send(context.Background(), Message{To: "a@x.com"})
	}
	require.Equal(t, 3.0, testutil.ToFloat64(d.dropped))

	d.Stop()
	require.Len(t, m.sent, 2)
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	t.Parallel()
	m := &memoryMailer{}
	d := NewDispatcher(m, discardLogger(), DispatcherOptions{})
	d.Start()

	d.Send(context.Background(), Message{To: "before@x.com"})
	d.Stop()
	d.Send(context.Background(), Message{To: "after@x.com"})

	require.Equal(t, 1.0, testutil.ToFloat64(d.dropped))
	require.Len(t, d.queue, 0)
	require.Len(t, m.sent, 1)
	require.Equal(t, "before@x.com", m.sent[0].To)
}
