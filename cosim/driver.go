package cosim

import (
	"github.com/sarchlab/cosim/mem/memfsm"
	"github.com/sarchlab/cosim/sim"
)

// Driver advances a core and its memory one clock cycle at a time.
type Driver struct {
	name        string
	dut         DUT
	mem         *memfsm.Comp
	wave        Waveform
	freq        sim.Freq
	resetCycles int

	cycles  uint64
	simTime uint64
}

// Name returns the name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Cycles returns the number of full cycles since the end of the last reset.
func (d *Driver) Cycles() uint64 {
	return d.cycles
}

// SimTime returns the number of half periods evaluated so far, reset
// included. It is the timestamp given to the waveform.
func (d *Driver) SimTime() uint64 {
	return d.simTime
}

// CurrentTime returns the simulated time of the last evaluation.
func (d *Driver) CurrentTime() sim.VTimeInSec {
	return d.freq.HalfPeriodsToTime(d.simTime)
}

// Freq returns the clock frequency.
func (d *Driver) Freq() sim.Freq {
	return d.freq
}

// PC returns the program counter the core currently drives.
func (d *Driver) PC() uint32 {
	return d.dut.Ports().PC
}

// Memory returns the timing memory.
func (d *Driver) Memory() *memfsm.Comp {
	return d.mem
}

// DUT returns the core under test.
func (d *Driver) DUT() DUT {
	return d.dut
}

// AdvanceOneCycle evaluates a rising and then a falling half period. In each
// half the memory samples the core's outputs before the core is evaluated.
func (d *Driver) AdvanceOneCycle() {
	p := d.dut.Ports()

	p.Clk = true
	d.evalHalf(p)

	p.Clk = false
	d.evalHalf(p)

	d.cycles++
}

func (d *Driver) evalHalf(p *Ports) {
	rsp := d.mem.Step(memfsm.Request{
		Clk:    p.Clk,
		ResetN: p.ResetN,
		Read:   p.MemRead,
		Write:  p.MemWrite,
		Addr:   p.MemAddr,
		Data:   p.MemWData,
	})

	p.MemRData = rsp.Data
	p.MemResp = rsp.Valid

	d.dut.Eval()

	if d.wave != nil {
		d.wave.Dump(d.simTime)
	}
	d.simTime++
}

// Reset holds reset for the configured number of cycles, releases it and lets
// the core settle with the clock low. The cycle counter restarts from zero.
func (d *Driver) Reset() {
	p := d.dut.Ports()

	p.ResetN = false
	p.Clk = false
	d.dut.Eval()

	for i := 0; i < d.resetCycles; i++ {
		d.AdvanceOneCycle()
	}

	p.ResetN = true
	p.Clk = false
	d.dut.Eval()

	d.cycles = 0
}

// Final tears down the core and closes the waveform.
func (d *Driver) Final() error {
	d.dut.Final()

	if d.wave == nil {
		return nil
	}

	return d.wave.Close()
}
