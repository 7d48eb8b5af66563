// Package memfsm provides a memory that answers word requests after a fixed
// number of clock cycles, driven one evaluation at a time by a clocked
// co-simulation.
package memfsm

import (
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/cosim/mem/store"
	"github.com/sarchlab/cosim/sim"
	"github.com/sarchlab/cosim/tracing"
)

// HookPosStateChange marks a committed state change. The item is a
// Transition.
var HookPosStateChange = &sim.HookPos{Name: "Mem State Change"}

// HookPosAccess marks a completed store access. The item is an Access.
var HookPosAccess = &sim.HookPos{Name: "Mem Access"}

// A Transition is a committed change of state.
type Transition struct {
	From State
	To   State
}

// AccessKind tells reads from writes.
type AccessKind int

// The kinds of accesses.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	if k == AccessWrite {
		return "write"
	}

	return "read"
}

// An Access describes one word moved between the store and the response
// buffer.
type Access struct {
	Kind     AccessKind
	Addr     uint32
	Phys     uint32
	Data     uint32
	Aperture bool
	OK       bool
}

// Snapshot is a serializable copy of the mutable state of a Comp.
type Snapshot struct {
	Control Control
	Output  uint32
}

// Comp is a word-addressed memory with a fixed access latency.
type Comp struct {
	sim.HookableBase

	Spec Spec

	name    string
	ctrl    Control
	output  uint32
	storage *store.Store
	logger  *log.Logger
	taskID  string
}

// Name returns the name of the memory.
func (c *Comp) Name() string {
	return c.name
}

// Store returns the storage owned by the memory.
func (c *Comp) Store() *store.Store {
	return c.storage
}

// Control returns a copy of the current control state.
func (c *Comp) Control() Control {
	return c.ctrl
}

// SnapshotState returns a copy of the mutable state.
func (c *Comp) SnapshotState() Snapshot {
	return Snapshot{Control: c.ctrl, Output: c.output}
}

// RestoreState restores the state captured by SnapshotState.
func (c *Comp) RestoreState(s Snapshot) {
	c.ctrl = s.Control
	c.output = s.Output
}

// Reset returns the control state and the output buffer to their power-on
// values. The store is left untouched.
func (c *Comp) Reset() {
	c.endTask()
	c.ctrl = Control{}
	c.output = 0
}

// Step evaluates the memory once with the given signal levels. State only
// changes when Clk rises between two consecutive calls.
func (c *Comp) Step(req Request) Response {
	rising := req.Clk && !c.ctrl.Sample.PrevClk
	c.ctrl.Sample.PrevClk = req.Clk

	if !req.ResetN {
		c.holdInReset()
		return Response{Data: c.output}
	}

	c.ctrl.Next = Next(c.ctrl, req, c.Spec.LatencyCycles)

	if rising {
		c.commit(req)
	}

	return Response{
		Data:  c.output,
		Valid: c.ctrl.State.Complete(),
	}
}

func (c *Comp) holdInReset() {
	c.endTask()
	c.ctrl.State = StateIdle
	c.ctrl.Next = StateIdle
	c.ctrl.Sample.PrevRead = false
	c.ctrl.Sample.PrevWrite = false
	c.ctrl.Count = 0
}

func (c *Comp) commit(req Request) {
	from := c.ctrl.State
	to := c.ctrl.Next
	changed := from != to

	c.ctrl.State = to
	c.ctrl.Sample.PrevRead = req.Read
	c.ctrl.Sample.PrevWrite = req.Write

	if to.Waiting() {
		if changed {
			c.ctrl.Count = 0
		} else {
			c.ctrl.Count++
		}
	}

	if changed {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosStateChange,
			Item:   Transition{From: from, To: to},
		})
	}

	switch to {
	case StateAwaitingRead, StateAwaitingWrite:
		if changed {
			c.startTask(to, req)
		}
	case StateReadComplete:
		c.stepTask("latency_elapsed")
		c.read(req.Addr)
		c.endTask()
	case StateWriteComplete:
		c.stepTask("latency_elapsed")
		c.write(req.Addr, req.Data)
		c.endTask()
	}
}

func (c *Comp) read(addr uint32) {
	access := Access{Kind: AccessRead, Addr: addr, Phys: addr}

	v, err := c.storage.LoadWord(addr)
	if err != nil {
		c.logger.Printf("ERROR: Invalid read address 0x%08x", addr)
		c.output = store.ErrorPattern
	} else {
		c.output = v
		c.storage.RecordRead()
		access.OK = true
	}

	access.Data = c.output
	c.invokeAccessHook(access)
}

func (c *Comp) write(addr, data uint32) {
	phys, inAperture := c.storage.Translate(addr)
	access := Access{
		Kind:     AccessWrite,
		Addr:     addr,
		Phys:     phys,
		Data:     data,
		Aperture: inAperture,
	}

	if err := c.storage.StoreWord(phys, data); err != nil {
		c.logger.Printf("ERROR: Invalid write address 0x%08x", addr)
	} else {
		c.storage.RecordWrite()
		access.OK = true
	}

	c.invokeAccessHook(access)
}

func (c *Comp) invokeAccessHook(access Access) {
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   access,
	})
}

func (c *Comp) startTask(s State, req Request) {
	if c.NumHooks() == 0 {
		return
	}

	what := "read"
	if s == StateAwaitingWrite {
		what = "write"
	}

	c.taskID = xid.New().String()
	tracing.StartTask(c.taskID, "", c, "mem_req", what, req)
}

func (c *Comp) stepTask(what string) {
	if c.taskID == "" {
		return
	}

	tracing.AddTaskStep(c.taskID, c, what)
}

func (c *Comp) endTask() {
	if c.taskID == "" {
		return
	}

	tracing.EndTask(c.taskID, c)
	c.taskID = ""
}
