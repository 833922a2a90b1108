package core

import (
	"fmt"
	"runtime/debug"
)

// PanicError carries a recovered panic value and the stack at recovery
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes a wrapped error when the panic value was one
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Guard runs fn and converts a panic into a *PanicError
// Used to isolate per-entity callbacks so one widget cannot abort a tick
func Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// Go runs fn in a new goroutine, handing any panic to onPanic instead of crashing the process
func Go(fn func(), onPanic func(*PanicError)) {
	go func() {
		defer func() {
			if r := recover(); r != nil && onPanic != nil {
				onPanic(&PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		fn()
	}()
}
