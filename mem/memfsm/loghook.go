package memfsm

import (
	"log"

	"github.com/sarchlab/cosim/sim"
)

var _ sim.LogHook = (*LogHook)(nil)

// LogHook prints every store access made by the memory.
type LogHook struct {
	sim.LogHookBase
}

// NewLogHook creates a LogHook that writes to the logger.
func NewLogHook(logger *log.Logger) *LogHook {
	h := new(LogHook)
	h.Logger = logger

	return h
}

// Func writes the access to the log.
func (h *LogHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosAccess {
		return
	}

	access, ok := ctx.Item.(Access)
	if !ok || !access.OK {
		return
	}

	switch access.Kind {
	case AccessRead:
		h.Printf("READ  addr=0x%08x data=0x%08x", access.Addr, access.Data)
	case AccessWrite:
		if access.Aperture {
			h.Printf("WRITE addr=0x%08x data=0x%08x (magic address)",
				access.Addr, access.Data)
		} else {
			h.Printf("WRITE addr=0x%08x data=0x%08x", access.Addr, access.Data)
		}
	}
}
