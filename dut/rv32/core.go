// Package rv32 is a multi-cycle RV32I core that talks to the timing memory
// through the co-simulation ports. Each instruction is fetched, executed and,
// for loads and stores, followed by a data access; every memory request is a
// one-cycle pulse separated from the previous response by at least one idle
// cycle.
package rv32

import (
	"log"

	"github.com/sarchlab/cosim/cosim"
)

type state int

const (
	stateStart state = iota
	stateFetchWait
	stateExecute
	stateMemWait
	stateMemDone
	stateHalt
)

type memOp int

const (
	opNone memOp = iota
	opLoad
	opStore
	opMergeRead
)

// Core is the reference RV32I core. Outputs change only on rising clock
// edges; reset is asynchronous and active low.
type Core struct {
	ports cosim.Ports

	regs    [32]uint32
	pc      uint32
	ir      uint32
	state   state
	prevClk bool

	op      memOp
	opAddr  uint32
	opData  uint32
	memRead bool
	memWr   bool
	memAddr uint32
	memData uint32

	cycles  uint64
	retired uint64

	finalized bool
}

// New creates a core in its reset state.
func New() *Core {
	c := &Core{}
	c.reset()

	return c
}

// Ports returns the signals of the core.
func (c *Core) Ports() *cosim.Ports {
	return &c.ports
}

// Reg returns the value of a general purpose register.
func (c *Core) Reg(i int) uint32 {
	return c.regs[i]
}

// SetReg sets a general purpose register. Writes to x0 are ignored.
func (c *Core) SetReg(i int, v uint32) {
	if i != 0 {
		c.regs[i] = v
	}
}

// Halted tells whether the core stopped on ECALL, EBREAK or an illegal
// instruction.
func (c *Core) Halted() bool {
	return c.state == stateHalt
}

// Retired returns the number of instructions completed since reset.
func (c *Core) Retired() uint64 {
	return c.retired
}

// Final marks the core as finalized. Evaluating a finalized core panics.
func (c *Core) Final() {
	c.finalized = true
}

// Eval settles the core for the current input levels.
func (c *Core) Eval() {
	if c.finalized {
		log.Panic("eval after final")
	}

	p := &c.ports
	rising := p.Clk && !c.prevClk
	c.prevClk = p.Clk

	switch {
	case !p.ResetN:
		c.reset()
	case rising:
		c.cycles++
		c.step()
	}

	p.MemRead = c.memRead
	p.MemWrite = c.memWr
	p.MemAddr = c.memAddr
	p.MemWData = c.memData
	p.PC = c.pc
}

func (c *Core) reset() {
	c.regs = [32]uint32{}
	c.pc = 0
	c.ir = 0
	c.state = stateStart
	c.op = opNone
	c.cycles = 0
	c.retired = 0
	c.idle()
}

func (c *Core) idle() {
	c.memRead = false
	c.memWr = false
}

func (c *Core) request(write bool, addr, data uint32) {
	c.memRead = !write
	c.memWr = write
	c.memAddr = addr
	c.memData = data
}

func (c *Core) fetch() {
	c.request(false, c.pc, 0)
	c.state = stateFetchWait
}

func (c *Core) step() {
	switch c.state {
	case stateStart:
		c.fetch()
	case stateFetchWait:
		c.idle()
		if c.ports.MemResp {
			c.ir = c.ports.MemRData
			c.state = stateExecute
		}
	case stateExecute:
		c.execute()
	case stateMemWait:
		c.idle()
		if c.ports.MemResp {
			c.opData = c.ports.MemRData
			c.state = stateMemDone
		}
	case stateMemDone:
		c.completeMemOp()
	case stateHalt:
		c.idle()
	}
}

func (c *Core) writeReg(rd uint32, v uint32) {
	if rd != 0 {
		c.regs[rd] = v
	}
}

func (c *Core) retire(nextPC uint32) {
	c.pc = nextPC
	c.retired++
	c.fetch()
}

func (c *Core) halt() {
	c.idle()
	c.state = stateHalt
}
