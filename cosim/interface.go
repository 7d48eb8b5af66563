// Package cosim couples a clocked core with the timing memory and steps both
// through two evaluations per clock cycle.
package cosim

//go:generate mockgen -destination "mock_cosim_test.go" -package $GOPACKAGE -write_package_comment=false github.com/sarchlab/cosim/cosim DUT,Waveform

// Ports are the signals a core exposes to the harness. The harness writes the
// inputs and reads the outputs; nothing else about the core is visible.
type Ports struct {
	// Inputs
	Clk      bool
	ResetN   bool
	MemRData uint32
	MemResp  bool

	// Outputs
	MemRead  bool
	MemWrite bool
	MemAddr  uint32
	MemWData uint32
	PC       uint32
}

// A DUT is a core under test. Eval settles the core for the current input
// levels. Final releases whatever the core holds.
type DUT interface {
	Ports() *Ports
	Eval()
	Final()
}

// A Waveform receives a sample after every evaluation of the core.
type Waveform interface {
	Dump(time uint64)
	Close() error
}
