package runner

import (
	"fmt"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/framework"
	"github.com/pl/testbridge/internal/location"
)

// BaseCommands carries the per-framework base commands, resolved once
// at startup from config and flags.
type BaseCommands struct {
	RSpec string
	Cargo string
}

// Dispatcher routes requests to the matching validator/compiler pair.
// Its configuration is immutable after construction, so one Dispatcher
// is safe for any number of concurrent requests without locking.
type Dispatcher struct {
	bases BaseCommands
}

// NewDispatcher creates a Dispatcher over the given base commands.
func NewDispatcher(bases BaseCommands) *Dispatcher {
	return &Dispatcher{bases: bases}
}

// Dispatch compiles a request into a runnable command without spawning
// anything. Spec-file requests run through location parsing and RSpec
// validation; cargo requests go straight to compilation. Every
// rejection surfaces as a *errors.BridgeError naming the kind and the
// offending input, and no partial command ever escapes.
func (d *Dispatcher) Dispatch(req Request) (framework.Command, error) {
	switch r := req.(type) {
	case RunSpecFile:
		loc, err := location.Parse(r.RawLocation)
		if err != nil {
			return framework.Command{}, normalize(err)
		}
		target, err := framework.ValidateSpec(loc)
		if err != nil {
			return framework.Command{}, normalize(err)
		}
		cmd, err := framework.CompileSpec(d.bases.RSpec, target)
		if err != nil {
			return framework.Command{}, normalize(err)
		}
		return cmd, nil

	case RunCargoTests:
		cmd, err := framework.CompileCargo(d.bases.Cargo, framework.CargoArgs{
			Pattern:   r.Pattern,
			ExtraArgs: r.ExtraArgs,
		})
		if err != nil {
			return framework.Command{}, normalize(err)
		}
		return cmd, nil

	default:
		// Unreachable: the request marker method closes the variant set.
		// A new variant without a case here is a bug, not caller error.
		return framework.Command{}, errors.New(fmt.Sprintf("BUG: unhandled request type %T", req))
	}
}

// normalize guarantees the single external error shape. The pipeline
// stages only produce *errors.BridgeError values; anything else gets
// wrapped so the transport layer never sees internal stage types.
func normalize(err error) error {
	if _, ok := err.(*errors.BridgeError); ok {
		return err
	}
	return errors.Wrap(err, "request rejected")
}
