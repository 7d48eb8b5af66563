package harness

import (
	"fmt"
	"io"
	"log"

	"github.com/sarchlab/cosim/cosim"
	"github.com/sarchlab/cosim/mem/store"
	"github.com/sarchlab/cosim/sim"
	"github.com/sarchlab/cosim/tracing"
)

// HookPosCycle is invoked after every cycle of a run, before the completion
// checks. The item is a CycleInfo.
var HookPosCycle = &sim.HookPos{Name: "Runner Cycle"}

// HookPosFinish is invoked when a run ends. The item is the Result.
var HookPosFinish = &sim.HookPos{Name: "Runner Finish"}

// Runner runs programs on a core under test.
type Runner struct {
	sim.HookableBase

	name     string
	driver   *cosim.Driver
	protocol Protocol
	stuck    stuckDetector
	logger   *log.Logger
	cycles   uint64
	latency  *tracing.AverageTimeTracer
}

// Name returns the name of the runner.
func (r *Runner) Name() string {
	return r.name
}

// Driver returns the co-simulation driver.
func (r *Runner) Driver() *cosim.Driver {
	return r.driver
}

// Memory returns the store behind the timing memory.
func (r *Runner) Memory() *store.Store {
	return r.driver.Memory().Store()
}

// Protocol returns the result protocol.
func (r *Runner) Protocol() Protocol {
	return r.protocol
}

// Cycles returns the number of cycles of the current or last run.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}

// PC returns the program counter of the core.
func (r *Runner) PC() uint32 {
	return r.driver.PC()
}

// ResultValue reads the result address without going through the timing
// memory.
func (r *Runner) ResultValue() uint32 {
	return r.Memory().ReadWord(r.protocol.ResultAddr)
}

// MemoryLatency returns the average number of cycles between a memory
// request and its response, and the number of completed requests.
func (r *Runner) MemoryLatency() (float64, uint64) {
	avg := float64(r.latency.AverageTime()) * float64(r.driver.Freq())

	return avg, r.latency.TotalCount()
}

// LoadProgram loads a hex image file into memory from address 0.
func (r *Runner) LoadProgram(path string) error {
	if err := r.Memory().LoadHexFile(path); err != nil {
		r.logger.Printf("Failed to load program: %s", path)
		return fmt.Errorf("loading program %s: %w", path, err)
	}

	r.logger.Printf("Program loaded: %s", path)

	return nil
}

// LoadImage loads a hex image into memory from address 0.
func (r *Runner) LoadImage(reader io.Reader) error {
	return r.Memory().LoadHex(reader)
}

// Clear zero-fills the memory.
func (r *Runner) Clear() {
	r.Memory().Clear()
}

// Reset resets the core and the timing memory. Memory contents are kept.
func (r *Runner) Reset() {
	r.driver.Reset()
	r.stuck.reset()
	r.cycles = 0

	r.logger.Printf("Reset complete")
}

// Run advances the core until the program reports a result, the program
// counter stops changing or maxCycles cycles have passed.
func (r *Runner) Run(maxCycles uint64) Result {
	r.logger.Printf("Starting simulation (max %d cycles)", maxCycles)

	r.cycles = 0
	r.stuck.reset()

	for r.cycles < maxCycles {
		r.driver.AdvanceOneCycle()
		r.cycles++

		pc := r.driver.PC()
		r.InvokeHook(sim.HookCtx{
			Domain: r,
			Pos:    HookPosCycle,
			Item:   CycleInfo{Cycle: r.cycles, PC: pc},
		})

		value := r.ResultValue()
		if outcome, done := r.protocol.Classify(value); done {
			r.logger.Printf("Test completed in %d cycles", r.cycles)
			return r.finish(outcome, value)
		}

		if r.stuck.observe(pc) {
			r.logger.Printf(
				"PC stuck at 0x%08x for %d cycles without test completion",
				pc, r.stuck.count)
			outcome, _ := r.protocol.Classify(value)

			return r.finish(outcome, value)
		}
	}

	r.logger.Printf("Timeout after %d cycles", maxCycles)
	r.logger.Printf("Final PC: 0x%08x", r.driver.PC())
	value := r.ResultValue()
	outcome, _ := r.protocol.Classify(value)

	return r.finish(outcome, value)
}

func (r *Runner) finish(outcome Outcome, value uint32) Result {
	result := Result{
		Outcome: outcome,
		Cycles:  r.cycles,
		PC:      r.driver.PC(),
		Value:   value,
	}

	r.logger.Printf("Result: %s", outcome)

	r.InvokeHook(sim.HookCtx{
		Domain: r,
		Pos:    HookPosFinish,
		Item:   result,
	})

	return result
}

// CheckWord compares a memory word with the expected value and logs the
// comparison.
func (r *Runner) CheckWord(addr, expected uint32) bool {
	actual := r.Memory().ReadWord(addr)
	if actual == expected {
		r.logger.Printf("[PASS] MEM[0x%08x] = 0x%08x", addr, actual)
		return true
	}

	r.logger.Printf("[FAIL] MEM[0x%08x] = 0x%08x, expected 0x%08x",
		addr, actual, expected)

	return false
}

// Final tears down the core and closes the waveform.
func (r *Runner) Final() error {
	stats := r.Memory().Stats()
	r.logger.Printf("Memory statistics - Reads: %d, Writes: %d",
		stats.Reads, stats.Writes)

	latency, requests := r.MemoryLatency()
	r.logger.Printf("Average memory latency: %.2f cycles over %d requests",
		latency, requests)

	return r.driver.Final()
}
