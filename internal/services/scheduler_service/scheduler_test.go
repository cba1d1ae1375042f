package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	calls int32
	err   error
}

func (p *fakePublisher) PublishDue(ctx context.Context, now time.Time) (int, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return 0, p.err
	}
	return 1, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_SweepInvokesPublisher(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewScheduler(testLogger(), publisher, "@every 1h")

	s.sweep()

	assert.Equal(t, int32(1), atomic.LoadInt32(&publisher.calls))
}

func TestScheduler_SweepSwallowsPublisherError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("db down")}
	s := NewScheduler(testLogger(), publisher, "@every 1h")

	// Must not panic; failures are logged and the next tick retries.
	s.sweep()

	assert.Equal(t, int32(1), atomic.LoadInt32(&publisher.calls))
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(testLogger(), &fakePublisher{}, "not a schedule")

	err := s.Start()
	require.Error(t, err)
}

func TestScheduler_StartAndStop(t *testing.T) {
	s := NewScheduler(testLogger(), &fakePublisher{}, "@every 1h")

	require.NoError(t, s.Start())
	s.Stop()
}
