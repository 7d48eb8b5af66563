package harness

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarchlab/cosim/cosim"
	"github.com/sarchlab/cosim/mem/memfsm"
	"github.com/sarchlab/cosim/mem/store"
	"github.com/sarchlab/cosim/sim"
	"github.com/sarchlab/cosim/tracing"
)

// Builder can build runners.
type Builder struct {
	dut            cosim.DUT
	memSpec        memfsm.Spec
	wave           cosim.Waveform
	protocol       Protocol
	stuckThreshold uint64
	resetCycles    int
	freq           sim.Freq
	logOutput      io.Writer
	skipReset      bool
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		memSpec:        memfsm.Defaults(),
		protocol:       DefaultProtocol(),
		stuckThreshold: DefaultStuckThreshold,
		resetCycles:    cosim.DefaultResetCycles,
		freq:           1 * sim.GHz,
		logOutput:      os.Stderr,
	}
}

// WithDUT sets the core under test.
func (b Builder) WithDUT(dut cosim.DUT) Builder {
	b.dut = dut
	return b
}

// WithMemorySpec sets the configuration of the timing memory.
func (b Builder) WithMemorySpec(spec memfsm.Spec) Builder {
	b.memSpec = spec
	return b
}

// WithLatency sets the memory access latency in cycles.
func (b Builder) WithLatency(cycles uint32) Builder {
	b.memSpec.LatencyCycles = cycles
	return b
}

// WithCapacity sets the memory size in bytes.
func (b Builder) WithCapacity(bytes uint32) Builder {
	b.memSpec.Capacity = bytes
	return b
}

// WithMemoryDebug turns memory access logging on or off.
func (b Builder) WithMemoryDebug(debug bool) Builder {
	b.memSpec.Debug = debug
	return b
}

// WithWaveform sets the waveform that receives port samples.
func (b Builder) WithWaveform(w cosim.Waveform) Builder {
	b.wave = w
	return b
}

// WithProtocol sets the result protocol. The memory remaps the 64 KiB window
// that holds the result address.
func (b Builder) WithProtocol(p Protocol) Builder {
	b.protocol = p
	return b
}

// WithStuckThreshold sets how many unchanged program counters are tolerated.
func (b Builder) WithStuckThreshold(n uint64) Builder {
	b.stuckThreshold = n
	return b
}

// WithResetCycles sets the number of cycles reset is held for.
func (b Builder) WithResetCycles(n int) Builder {
	b.resetCycles = n
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLogOutput sets where the runner and the memory log to.
func (b Builder) WithLogOutput(w io.Writer) Builder {
	b.logOutput = w
	return b
}

// WithoutInitialReset leaves the core in its pre-reset state after Build.
func (b Builder) WithoutInitialReset() Builder {
	b.skipReset = true
	return b
}

// Build creates the memory, the driver and the runner, and resets the core.
func (b Builder) Build(name string) (*Runner, error) {
	if b.dut == nil {
		return nil, fmt.Errorf("runner %s: %w", name, cosim.ErrNoDUT)
	}

	mem, err := memfsm.MakeBuilder().
		WithSpec(b.memSpec).
		WithAperture(store.Aperture{Prefix: b.protocol.ResultAddr}).
		WithLogger(log.New(b.logOutput, "[MEM] ", 0)).
		Build(name + ".Mem")
	if err != nil {
		return nil, err
	}

	driver, err := cosim.MakeBuilder().
		WithDUT(b.dut).
		WithMemory(mem).
		WithWaveform(b.wave).
		WithResetCycles(b.resetCycles).
		WithFreq(b.freq).
		Build(name + ".Driver")
	if err != nil {
		return nil, err
	}

	r := &Runner{
		name:     name,
		driver:   driver,
		protocol: b.protocol,
		stuck:    stuckDetector{threshold: b.stuckThreshold},
		logger:   log.New(b.logOutput, "[TEST] ", 0),
		latency: tracing.NewAverageTimeTracer(
			driver, tracing.KindWhatFilter("mem_req", "")),
	}

	tracing.CollectTrace(mem, r.latency)

	if !b.skipReset {
		r.Reset()
	}

	r.logger.Printf("Runner initialized for test: %s", name)

	return r, nil
}
