package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/runtime/scheduler"
)

func TestSpawnBeforeStartFails(t *testing.T) {
	s := scheduler.New()
	_, err := s.Spawn(scheduler.Task{Name: "noop", Fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, scheduler.ErrNotStarted)
}

func TestSpawnResolvesFuture(t *testing.T) {
	s := scheduler.New()
	s.Start()
	defer s.Stop()

	future, err := s.Spawn(scheduler.Task{Name: "ok", Fn: func(context.Context) error { return nil }})
	require.NoError(t, err)
	assert.NoError(t, future.Wait(context.Background()))
}

func TestSpawnPropagatesTaskError(t *testing.T) {
	s := scheduler.New()
	s.Start()
	defer s.Stop()

	boom := errors.New("boom")
	future, err := s.Spawn(scheduler.Task{Name: "fails", Fn: func(context.Context) error { return boom }})
	require.NoError(t, err)
	assert.ErrorIs(t, future.Wait(context.Background()), boom)
}

func TestSpawnRecoversPanic(t *testing.T) {
	s := scheduler.New()
	s.Start()
	defer s.Stop()

	future, err := s.Spawn(scheduler.Task{Name: "panics", Fn: func(context.Context) error {
		panic("kaboom")
	}})
	require.NoError(t, err)
	assert.Error(t, future.Wait(context.Background()))
}

func TestTasksRunInEnqueueOrder(t *testing.T) {
	s := scheduler.New()
	s.Start()
	defer s.Stop()

	var order []int
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		future, err := s.Spawn(scheduler.Task{Name: "seq", Fn: func(context.Context) error {
			order = append(order, i)
			if i == 4 {
				close(done)
			}
			return nil
		}})
		require.NoError(t, err)
		if i == 4 {
			require.NoError(t, future.Wait(context.Background()))
		}
	}
	<-done
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestShutdownDrainsQueuedTasks(t *testing.T) {
	s := scheduler.New()
	s.Start()

	ran := false
	future, err := s.Spawn(scheduler.Task{Name: "drain", Fn: func(context.Context) error {
		ran = true
		return nil
	}})
	require.NoError(t, err)
	s.Shutdown()
	require.NoError(t, future.Wait(context.Background()))
	assert.True(t, ran)

	_, err = s.Spawn(scheduler.Task{Name: "too-late", Fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, scheduler.ErrShutdown)
}

func TestWatchdogCheckAfterDeadline(t *testing.T) {
	w := scheduler.NewWatchdog(10 * time.Millisecond)
	assert.NoError(t, w.Check())
	time.Sleep(20 * time.Millisecond)
	assert.ErrorIs(t, w.Check(), scheduler.ErrTimeout)
}

func TestWatchdogDisableSuppressesTimeout(t *testing.T) {
	w := scheduler.NewWatchdog(1 * time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	w.Disable()
	assert.NoError(t, w.Check())
	w.Enable()
	assert.ErrorIs(t, w.Check(), scheduler.ErrTimeout)
}

func TestWatchdogContextDeadlineMatches(t *testing.T) {
	w := scheduler.NewWatchdog(50 * time.Millisecond)
	ctx, cancel := w.Context(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 10*time.Millisecond)
}
