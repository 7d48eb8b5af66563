package memfsm

import (
	"errors"
	"fmt"

	"github.com/sarchlab/cosim/mem/store"
)

// ErrZeroLatency is returned when the access latency is configured as zero.
var ErrZeroLatency = errors.New("latency must be at least one cycle")

// Spec holds immutable configuration values for the memory.
type Spec struct {
	// LatencyCycles is the number of rising edges a request waits in the
	// awaiting state before it completes.
	LatencyCycles uint32

	// Capacity is the size of the store in bytes. It is ignored when an
	// external store is provided to the builder.
	Capacity uint32

	// Aperture is the external window remapped into the top of a new store.
	// A prefix whose upper half is zero selects store.DefaultAperture.
	Aperture store.Aperture

	// Debug attaches a LogHook that prints every access.
	Debug bool
}

// Validate checks the spec.
func (s Spec) Validate() error {
	if s.LatencyCycles == 0 {
		return ErrZeroLatency
	}

	if s.Capacity < store.ApertureSize {
		return fmt.Errorf("capacity %d: %w", s.Capacity, store.ErrCapacityTooSmall)
	}

	return nil
}

// Defaults returns a Spec with sane defaults.
func Defaults() Spec {
	return Spec{
		LatencyCycles: 4,
		Capacity:      1 << 20,
		Aperture:      store.DefaultAperture(),
	}
}
