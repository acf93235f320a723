package frp

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[T any](s *EventStream[T]) *[]T {
	got := []T{}
	s.ForEach(func(e T) { got = append(got, e) })
	return &got
}

func TestEventStream(t *testing.T) {
	t.Run("emit reaches every listener in order", func(t *testing.T) {
		log := []string{}

		es := NewEventStream[string]()
		assert.Equal(t, 0, es.Emit("nobody"))

		es.ForEach(func(e string) { log = append(log, "first "+e) })
		es.ForEach(func(e string) { log = append(log, "second "+e) })

		assert.Equal(t, 2, es.Emit("a"))
		assert.Equal(t, []string{"first a", "second a"}, log)
	})

	t.Run("default event", func(t *testing.T) {
		es := NewEventStreamWithDefault(Fixed("ping"))
		got := collect(es)

		es.EmitDefault()
		es.Emit("pong")

		assert.Equal(t, []string{"ping", "pong"}, *got)
	})

	t.Run("computed default event", func(t *testing.T) {
		n := 0
		es := NewEventStreamWithDefault(Computed(func() int { n++; return n * 10 }))
		got := collect(es)

		es.EmitDefault()
		es.EmitDefault()

		assert.Equal(t, []int{10, 20}, *got)
	})

	t.Run("listeners added during emit wait for the next emit", func(t *testing.T) {
		log := []string{}

		es := NewEventStream[int]()
		es.ForEach(func(e int) {
			log = append(log, fmt.Sprintf("outer %d", e))
			if e == 1 {
				es.ForEach(func(e int) { log = append(log, fmt.Sprintf("inner %d", e)) })
			}
		})

		assert.Equal(t, 1, es.Emit(1))
		assert.Equal(t, 2, es.Emit(2))

		assert.Equal(t, []string{"outer 1", "outer 2", "inner 2"}, log)
	})

	t.Run("listeners disposed during emit are skipped", func(t *testing.T) {
		log := []string{}

		es := NewEventStream[int]()
		var second *Listener[int]
		es.ForEach(func(e int) {
			log = append(log, "first")
			second.Dispose()
		})
		second = es.ForEach(func(int) { log = append(log, "second") })
		es.ForEach(func(int) { log = append(log, "third") })

		assert.Equal(t, 2, es.Emit(1))
		assert.Equal(t, []string{"first", "third"}, log)
		assert.Equal(t, 2, es.CountListeners())
	})

	t.Run("listener disposing itself during emit", func(t *testing.T) {
		log := []string{}

		es := NewEventStream[int]()
		var self *Listener[int]
		self = es.ForEach(func(int) {
			log = append(log, "self")
			self.Dispose()
		})
		es.ForEach(func(int) { log = append(log, "other") })

		assert.Equal(t, 2, es.Emit(1))
		assert.Equal(t, 1, es.Emit(2))
		assert.Equal(t, []string{"self", "other", "other"}, log)
	})

	t.Run("remove", func(t *testing.T) {
		es := NewEventStream[int]()
		other := NewEventStream[int]()

		l := es.ForEach(func(int) {})
		foreign := other.ForEach(func(int) {})

		assert.Same(t, es, es.Remove(foreign))
		assert.Equal(t, 1, es.CountListeners())
		assert.False(t, foreign.Disposed())

		es.Remove(l)
		assert.Equal(t, 0, es.CountListeners())
		assert.True(t, l.Disposed())

		es.Remove(l)
		es.Remove(nil)
		assert.Equal(t, 0, es.CountListeners())
	})

	t.Run("remove all", func(t *testing.T) {
		calls := 0

		es := NewEventStream[int]()
		a := es.ForEach(func(int) { calls++ })
		b := es.ForEach(func(int) { calls++ })

		es.RemoveAll()

		assert.Equal(t, 0, es.CountListeners())
		assert.Equal(t, 0, es.Emit(1))
		assert.True(t, a.Disposed())
		assert.True(t, b.Disposed())

		a.Notify(1)
		b.Dispose()
		assert.Equal(t, 0, calls)
	})

	t.Run("nil callbacks panic", func(t *testing.T) {
		es := NewEventStream[int]()

		assert.ErrorIs(t, recoverErr(t, func() { es.ForEach(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.Filter(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.Map(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.Collect(nil, identity[int]) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.Collect(always[int], nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.TakeWhile(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.TakeUntil(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { es.DistinctFunc(nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { FlatMap[int, int](es, nil) }), ErrNotFunc)
		assert.ErrorIs(t, recoverErr(t, func() { Fold[int, int](es, nil, 0) }), ErrNotFunc)

		assert.Equal(t, 0, es.CountListeners())
	})

	t.Run("listen to", func(t *testing.T) {
		es := NewEventStream[int]()
		got := 0
		ListenTo(es, func(e int) { got = e })
		es.Emit(7)
		assert.Equal(t, 7, got)

		err := recoverErr(t, func() { ListenTo[int](nil, func(int) {}) })
		assert.ErrorIs(t, err, ErrNotStream)
	})

	t.Run("create streams", func(t *testing.T) {
		streams := CreateStreams(map[string]string{
			"cancels": "cancel",
			"submits": "submit",
		})
		require.Len(t, streams, 2)

		got := collect(streams["cancels"])
		streams["cancels"].EmitDefault()
		streams["submits"].EmitDefault()

		assert.Equal(t, []string{"cancel"}, *got)
	})
}

func TestEventStreamCombinators(t *testing.T) {
	t.Run("collect", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(Collect(es,
			func(e int) bool { return e%2 == 0 },
			func(e int) string { return strconv.Itoa(e * 10) },
		))

		for i := 1; i <= 4; i++ {
			es.Emit(i)
		}

		assert.Equal(t, []string{"20", "40"}, *got)
	})

	t.Run("filter", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.Filter(func(e int) bool { return e > 1 }))

		es.Emit(1)
		es.Emit(2)

		assert.Equal(t, []int{2}, *got)
	})

	t.Run("map", func(t *testing.T) {
		es := NewEventStream[int]()
		doubled := collect(es.Map(func(e int) int { return e * 2 }))
		labels := collect(Map(es, func(e int) string { return fmt.Sprintf("#%d", e) }))

		es.Emit(1)
		es.Emit(2)

		assert.Equal(t, []int{2, 4}, *doubled)
		assert.Equal(t, []string{"#1", "#2"}, *labels)
	})

	t.Run("fold", func(t *testing.T) {
		es := NewEventStream[int]()
		sums := collect(es.Fold(func(acc, e int) int { return acc + e }, 10))
		lines := collect(Fold(es, func(acc []int, e int) []int { return append(acc, e) }, nil))

		es.Emit(1)
		es.Emit(5)

		assert.Equal(t, []int{11, 16}, *sums)
		assert.Equal(t, [][]int{{1}, {1, 5}}, *lines)
	})

	t.Run("distinct", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.Distinct())

		es.Emit(1)
		es.Emit(1)
		es.Emit(2)

		assert.Equal(t, []int{1, 2}, *got)
	})

	t.Run("distinct compares with the last emitted event", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.DistinctFunc(func(a, b int) bool { return b-a == 1 || a == b }))

		es.Emit(1)
		es.Emit(2)
		es.Emit(3)
		es.Emit(5)

		assert.Equal(t, []int{1, 3, 5}, *got)
	})

	t.Run("distinct on slices", func(t *testing.T) {
		es := NewEventStream[[]int]()
		got := collect(es.Distinct())

		es.Emit([]int{1})
		es.Emit([]int{1})
		es.Emit([]int{1, 2})

		assert.Equal(t, [][]int{{1}, {1, 2}}, *got)
	})

	t.Run("pipe", func(t *testing.T) {
		es := NewEventStream[int]()
		piped := es.Pipe(nil)
		got := collect(piped)

		target := NewEventStream[int]()
		assert.Same(t, target, es.Pipe(target))
		fromTarget := collect(target)

		es.Emit(1)

		assert.Equal(t, []int{1}, *got)
		assert.Equal(t, []int{1}, *fromTarget)
	})

	t.Run("broadcast", func(t *testing.T) {
		es := NewEventStream[int]()
		a := NewEventStream[int]()
		b := NewEventStream[int]()
		gotA, gotB := collect(a), collect(b)

		assert.Same(t, es, es.Broadcast(a, nil, b))
		es.Emit(1)

		assert.Equal(t, []int{1}, *gotA)
		assert.Equal(t, []int{1}, *gotB)
	})

	t.Run("merge keeps source order", func(t *testing.T) {
		a := NewEventStream[string]()
		b := NewEventStream[string]()
		got := collect(Merge(a, nil, b))

		a.Emit("a1")
		b.Emit("b1")
		a.Emit("a2")

		assert.Equal(t, []string{"a1", "b1", "a2"}, *got)
	})

	t.Run("merge slice and method", func(t *testing.T) {
		streams := []*EventStream[int]{NewEventStream[int](), NewEventStream[int]()}
		fromSlice := collect(MergeSlice(streams))
		fromMethod := collect(streams[0].Merge(streams[1]))

		streams[0].Emit(0)
		streams[1].Emit(1)

		assert.Equal(t, []int{0, 1}, *fromSlice)
		assert.Equal(t, []int{0, 1}, *fromMethod)
	})

	t.Run("flat map switches to the latest inner stream", func(t *testing.T) {
		outer := NewEventStream[string]()
		inners := map[string]*EventStream[int]{
			"a": NewEventStream[int](),
			"b": NewEventStream[int](),
		}
		got := collect(FlatMap(outer, func(key string) *EventStream[int] { return inners[key] }))

		outer.Emit("a")
		inners["a"].Emit(1)
		inners["b"].Emit(100)

		outer.Emit("b")
		inners["a"].Emit(2)
		inners["b"].Emit(200)

		outer.Emit("missing")
		inners["b"].Emit(300)

		assert.Equal(t, []int{1, 200}, *got)
		assert.Equal(t, 0, inners["a"].CountListeners())
		assert.Equal(t, 0, inners["b"].CountListeners())
	})

	t.Run("once", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.Once())

		es.Emit(1)
		es.Emit(2)

		assert.Equal(t, []int{1}, *got)
		assert.Equal(t, 0, es.CountListeners())
	})

	t.Run("take forwards n+1 events", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.Take(2))

		for i := 1; i <= 5; i++ {
			es.Emit(i)
		}

		assert.Equal(t, []int{1, 2, 3}, *got)
		assert.Equal(t, 0, es.CountListeners())
	})

	t.Run("take after", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.TakeAfter(2))

		for i := 1; i <= 4; i++ {
			es.Emit(i)
		}

		assert.Equal(t, []int{3, 4}, *got)
	})

	t.Run("take while", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(es.TakeWhile(func(e int) bool { return e < 3 }))

		for _, e := range []int{1, 2, 3, 1} {
			es.Emit(e)
		}

		assert.Equal(t, []int{1, 2}, *got)
		assert.Equal(t, 0, es.CountListeners())
	})

	t.Run("take until", func(t *testing.T) {
		es := NewEventStream[string]()
		got := collect(es.TakeUntil(func(e string) bool { return e == "stop" }))

		for _, e := range []string{"a", "b", "stop", "c"} {
			es.Emit(e)
		}

		assert.Equal(t, []string{"a", "b"}, *got)
	})

	t.Run("chained combinators", func(t *testing.T) {
		es := NewEventStream[int]()
		got := collect(
			es.Filter(func(e int) bool { return e%2 == 1 }).
				Map(func(e int) int { return e * e }).
				Distinct().
				TakeAfter(1),
		)

		for _, e := range []int{1, 2, 3, 3, 4, 5} {
			es.Emit(e)
		}

		assert.Equal(t, []int{9, 25}, *got)
	})
}
