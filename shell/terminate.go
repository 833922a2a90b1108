package shell

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/lixenwraith/retain/engine"
)

// TickError runs one tick of a and classifies the result
// A normal close yields done with no error; any other failure yields done with the error
func TickError(a Adapter) (done bool, err error) {
	err = a.Tick()
	switch {
	case err == nil:
		return a.Terminated(), nil
	case errors.Is(err, engine.ErrTerminated):
		return true, nil
	default:
		return true, errors.Wrapf(err, "window %s", a.ID())
	}
}

// Collect appends err to the aggregate of window failures
func Collect(agg *error, err error) {
	*agg = multierr.Append(*agg, err)
}
