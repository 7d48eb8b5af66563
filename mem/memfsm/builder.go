package memfsm

import (
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/cosim/mem/store"
)

// Builder constructs a Comp either from a Spec or per-field setters.
type Builder struct {
	spec    Spec
	storage *store.Store
	logger  *log.Logger
}

// MakeBuilder returns a new Builder with default Spec.
func MakeBuilder() Builder {
	return Builder{spec: Defaults()}
}

// WithSpec replaces the whole spec.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// WithLatency sets the number of cycles a request waits before it completes.
func (b Builder) WithLatency(cycles uint32) Builder {
	b.spec.LatencyCycles = cycles
	return b
}

// WithNewStorage asks the builder to create a store of the given capacity.
func (b Builder) WithNewStorage(capacity uint32) Builder {
	b.storage = nil
	b.spec.Capacity = capacity
	return b
}

// WithStore uses an existing store. The store keeps its own aperture. A nil
// store makes the builder create one again.
func (b Builder) WithStore(s *store.Store) Builder {
	b.storage = s
	if s != nil {
		b.spec.Capacity = s.Size()
	}

	return b
}

// WithAperture sets the result aperture of the store the builder creates.
func (b Builder) WithAperture(a store.Aperture) Builder {
	b.spec.Aperture = a
	return b
}

// WithDebug turns access logging on or off.
func (b Builder) WithDebug(debug bool) Builder {
	b.spec.Debug = debug
	return b
}

// WithLogger sets the logger for error and debug messages.
func (b Builder) WithLogger(logger *log.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) aperture() store.Aperture {
	if b.spec.Aperture.Prefix>>16 == 0 {
		return store.DefaultAperture()
	}

	return b.spec.Aperture
}

// Build creates the memory.
func (b Builder) Build(name string) (*Comp, error) {
	if err := b.spec.Validate(); err != nil {
		return nil, fmt.Errorf("memory %s: %w", name, err)
	}

	logger := b.logger
	if logger == nil {
		logger = log.New(os.Stderr, "[MEM] ", 0)
	}

	storage := b.storage
	if storage == nil {
		var err error

		storage, err = store.NewWithAperture(b.spec.Capacity, b.aperture())
		if err != nil {
			return nil, fmt.Errorf("memory %s: %w", name, err)
		}

		storage.SetLogger(logger)
	}

	c := &Comp{
		Spec:    b.spec,
		name:    name,
		storage: storage,
		logger:  logger,
	}

	if b.spec.Debug {
		c.AcceptHook(NewLogHook(logger))
	}

	logger.Printf("Memory model initialized: %d bytes, %d cycle delay",
		storage.Size(), b.spec.LatencyCycles)

	return c, nil
}
