package harness

import "fmt"

// Result is the report of one run.
type Result struct {
	Outcome Outcome
	Cycles  uint64
	PC      uint32

	// Value is what the result address held when the run ended.
	Value uint32
}

func (r Result) String() string {
	return fmt.Sprintf("%s after %d cycles, pc=0x%08x, result=0x%08x",
		r.Outcome, r.Cycles, r.PC, r.Value)
}

// CycleInfo is the item of HookPosCycle.
type CycleInfo struct {
	Cycle uint64
	PC    uint32
}
