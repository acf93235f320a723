package internal

import (
	"errors"
	"fmt"
)

var (
	ErrNotFunc   = errors.New("not a function")
	ErrNotStream = errors.New("not an event stream")
)

// NotFunc wraps ErrNotFunc with the name of the misused operation.
func NotFunc(op string) error {
	return fmt.Errorf("%s: %w", op, ErrNotFunc)
}

// NotStream wraps ErrNotStream with the name of the misused operation.
func NotStream(op string) error {
	return fmt.Errorf("%s: %w", op, ErrNotStream)
}
