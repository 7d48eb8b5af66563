package cosim

import (
	"errors"

	"github.com/sarchlab/cosim/mem/memfsm"
	"github.com/sarchlab/cosim/sim"
)

// Errors returned by Build.
var (
	ErrNoDUT    = errors.New("no DUT given")
	ErrNoMemory = errors.New("no memory given")
)

// DefaultResetCycles is the number of cycles reset is held for.
const DefaultResetCycles = 10

// Builder can build drivers.
type Builder struct {
	dut         DUT
	mem         *memfsm.Comp
	wave        Waveform
	freq        sim.Freq
	resetCycles int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.GHz,
		resetCycles: DefaultResetCycles,
	}
}

// WithDUT sets the core under test.
func (b Builder) WithDUT(dut DUT) Builder {
	b.dut = dut
	return b
}

// WithMemory sets the timing memory.
func (b Builder) WithMemory(mem *memfsm.Comp) Builder {
	b.mem = mem
	return b
}

// WithWaveform sets the waveform that receives samples. Nil disables it.
func (b Builder) WithWaveform(w Waveform) Builder {
	b.wave = w
	return b
}

// WithResetCycles sets the number of cycles reset is held for.
func (b Builder) WithResetCycles(n int) Builder {
	b.resetCycles = n
	return b
}

// WithFreq sets the clock frequency used to convert cycles into time.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates the driver and evaluates the core once with the clock low and
// reset asserted.
func (b Builder) Build(name string) (*Driver, error) {
	if b.dut == nil {
		return nil, ErrNoDUT
	}

	if b.mem == nil {
		return nil, ErrNoMemory
	}

	d := &Driver{
		name:        name,
		dut:         b.dut,
		mem:         b.mem,
		wave:        b.wave,
		freq:        b.freq,
		resetCycles: b.resetCycles,
	}

	p := d.dut.Ports()
	p.Clk = false
	p.ResetN = false
	p.MemRData = 0
	p.MemResp = false
	d.dut.Eval()

	return d, nil
}
