package scheduler

import (
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RegisterRejectsBadSpec(t *testing.T) {
	s := New(zerolog.New(io.Discard))

	err := s.Register("reconciliation", "0 0 2 * *", func() {})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Jobs())

	require.NoError(t, s.Register("reconciliation", "0 0 2 * * *", func() {}))
	assert.Equal(t, 1, s.Jobs())
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(zerolog.New(io.Discard))

	done := make(chan struct{})
	var runs int32
	require.NoError(t, s.Register("tick", "* * * * * *", func() {
		if atomic.AddInt32(&runs, 1) == 1 {
			close(done)
		}
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	s := New(zerolog.New(io.Discard))

	done := make(chan struct{})
	var runs int32
	require.NoError(t, s.Register("flaky", "* * * * * *", func() {
		if atomic.AddInt32(&runs, 1) == 2 {
			close(done)
		}
		if atomic.LoadInt32(&runs) == 1 {
			panic("boom")
		}
	}))

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("scheduler did not survive a panicking job")
	}
}
