package frp

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockLoop(t *testing.T) (*clock.Mock, *Loop) {
	t.Helper()

	mock := clock.NewMock()
	loop := NewLoop(WithClock(mock))
	SetLoop(loop)
	t.Cleanup(func() { SetLoop(nil) })

	return mock, loop
}

func advance(mock *clock.Mock, loop *Loop, d time.Duration) {
	mock.Add(d)
	loop.RunPending()
}

func TestThrottle(t *testing.T) {
	t.Run("emits the last event after a quiet period", func(t *testing.T) {
		mock, loop := mockLoop(t)
		start := mock.Now()

		es := NewEventStream[int]()
		got := []int{}
		var at time.Duration
		es.Throttle(50 * time.Millisecond).ForEach(func(e int) {
			got = append(got, e)
			at = mock.Now().Sub(start)
		})

		es.Emit(1)
		advance(mock, loop, 10*time.Millisecond)
		es.Emit(2)
		advance(mock, loop, 10*time.Millisecond)
		es.Emit(3)

		advance(mock, loop, 49*time.Millisecond)
		assert.Empty(t, got)

		advance(mock, loop, time.Millisecond)
		assert.Equal(t, []int{3}, got)
		assert.GreaterOrEqual(t, at, 70*time.Millisecond)

		advance(mock, loop, time.Second)
		assert.Equal(t, []int{3}, got)
	})

	t.Run("first window without events emits nothing", func(t *testing.T) {
		mock, loop := mockLoop(t)

		es := NewEventStream[string]()
		got := []string{}
		es.Throttle(20 * time.Millisecond).ForEach(func(e string) { got = append(got, e) })
		assert.Equal(t, 1, loop.Pending())

		advance(mock, loop, 20*time.Millisecond)
		assert.Empty(t, got)
		assert.Equal(t, 0, loop.Pending())

		es.Emit("late")
		advance(mock, loop, 20*time.Millisecond)
		assert.Equal(t, []string{"late"}, got)
	})

	t.Run("separate bursts emit separately", func(t *testing.T) {
		mock, loop := mockLoop(t)

		es := NewEventStream[int]()
		got := []int{}
		es.Throttle(10 * time.Millisecond).ForEach(func(e int) { got = append(got, e) })

		es.Emit(1)
		es.Emit(2)
		advance(mock, loop, 10*time.Millisecond)
		es.Emit(3)
		advance(mock, loop, 10*time.Millisecond)

		assert.Equal(t, []int{2, 3}, got)
	})
}

func TestDefer(t *testing.T) {
	t.Run("delays every event", func(t *testing.T) {
		mock, loop := mockLoop(t)

		es := NewEventStream[int]()
		got := []int{}
		es.Defer(30 * time.Millisecond).ForEach(func(e int) { got = append(got, e) })

		es.Emit(1)
		advance(mock, loop, 10*time.Millisecond)
		es.Emit(2)
		assert.Equal(t, 2, loop.Pending())

		advance(mock, loop, 20*time.Millisecond)
		assert.Equal(t, []int{1}, got)

		advance(mock, loop, 10*time.Millisecond)
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("defaults to 100ms", func(t *testing.T) {
		mock, loop := mockLoop(t)

		es := NewEventStream[int]()
		got := []int{}
		es.Defer(0).ForEach(func(e int) { got = append(got, e) })

		es.Emit(1)
		es.Emit(1)

		advance(mock, loop, 99*time.Millisecond)
		assert.Empty(t, got)

		advance(mock, loop, time.Millisecond)
		assert.Equal(t, []int{1, 1}, got)
	})
}

func TestLoop(t *testing.T) {
	t.Run("runs timers in deadline order", func(t *testing.T) {
		mock, loop := mockLoop(t)
		log := []string{}

		loop.AfterFunc(30*time.Millisecond, func() { log = append(log, "30ms") })
		loop.AfterFunc(10*time.Millisecond, func() { log = append(log, "10ms") })
		loop.AfterFunc(10*time.Millisecond, func() { log = append(log, "10ms again") })

		mock.Add(time.Second)
		assert.Equal(t, 3, loop.RunPending())
		assert.Equal(t, []string{"10ms", "10ms again", "30ms"}, log)
	})

	t.Run("stopped timers never fire", func(t *testing.T) {
		mock, loop := mockLoop(t)
		fired := false

		timer := loop.AfterFunc(10*time.Millisecond, func() { fired = true })
		assert.True(t, timer.Stop())
		assert.False(t, timer.Stop())

		advance(mock, loop, time.Second)
		assert.False(t, fired)
	})

	t.Run("posted callbacks run on the loop goroutine", func(t *testing.T) {
		_, loop := mockLoop(t)
		es := NewEventStream[int]()
		got := collect(es)

		done := make(chan struct{})
		go func() {
			defer close(done)
			loop.Post(func() { es.Emit(1) })
			loop.Post(func() { es.Emit(2) })
		}()
		<-done

		assert.Equal(t, 2, loop.RunPending())
		assert.Equal(t, []int{1, 2}, *got)
	})

	t.Run("run returns when the context is done", func(t *testing.T) {
		loop := NewLoop()
		SetLoop(loop)
		t.Cleanup(func() { SetLoop(nil) })

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		es := NewEventStream[int]()
		got := []int{}
		es.Defer(time.Millisecond).ForEach(func(e int) {
			got = append(got, e)
			cancel()
		})

		go loop.Post(func() { es.Emit(42) })

		err := loop.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []int{42}, got)
	})

	t.Run("each goroutine has its own loop", func(t *testing.T) {
		_, loop := mockLoop(t)

		other := make(chan *Loop)
		go func() {
			defer Release()
			other <- CurrentLoop()
		}()

		assert.Same(t, loop.scheduler, CurrentLoop().scheduler)
		assert.NotSame(t, loop.scheduler, (<-other).scheduler)
	})

	t.Run("release drops the goroutine's loop", func(t *testing.T) {
		mock, loop := mockLoop(t)

		es := NewEventStream[int]()
		got := collect(es.Defer(time.Millisecond))

		Release()
		assert.NotSame(t, loop.scheduler, CurrentLoop().scheduler)

		es.Emit(1)
		advance(mock, loop, time.Millisecond)
		assert.Equal(t, []int{1}, *got)
	})
}
