package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	type point struct{ X, Y int }
	err := errors.New("oops")

	cases := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, 0, false},
		{"same int", 1, 1, true},
		{"different int", 1, 2, false},
		{"different types", 1, int64(1), false},
		{"structs", point{1, 2}, point{1, 2}, true},
		{"same pointer", err, err, true},
		{"distinct pointers", err, errors.New("oops"), false},
		{"slices by content", []int{1, 2}, []int{1, 2}, true},
		{"slices differ", []int{1, 2}, []int{2, 1}, false},
		{"maps by content", map[string]int{"a": 1}, map[string]int{"a": 1}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Equal(c.a, c.b))
		})
	}
}

func TestValue(t *testing.T) {
	calls := 0
	v := Computed(func() any {
		calls++
		return calls
	})

	assert.True(t, v.IsComputed())
	assert.Equal(t, 1, v.Get())
	assert.Equal(t, 2, v.Get())

	fixed := Fixed("x")
	assert.False(t, fixed.IsComputed())
	assert.Equal(t, "x", fixed.Get())

	assert.Nil(t, Value{}.Get())
	assert.Panics(t, func() { Computed(nil) })
}
