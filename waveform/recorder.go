package waveform

import (
	"github.com/sarchlab/cosim/cosim"
	"github.com/sarchlab/cosim/datarecording"
)

// SampleTableName is the table the Recorder writes into.
const SampleTableName = "port_samples"

// PortSample is one row of the sample table.
type PortSample struct {
	Time     uint64
	Clk      bool
	ResetN   bool
	MemRData uint32
	MemResp  bool
	MemRead  bool
	MemWrite bool
	MemAddr  uint32
	MemWData uint32
	PC       uint32
}

// Recorder stores port samples into a data recorder.
type Recorder struct {
	ports    *cosim.Ports
	recorder datarecording.DataRecorder

	// one sample out of interval is kept; zero and one keep all
	interval uint64
}

// NewRecorder creates the sample table and returns a Recorder.
func NewRecorder(
	recorder datarecording.DataRecorder,
	ports *cosim.Ports,
) *Recorder {
	recorder.CreateTable(SampleTableName, PortSample{})

	return &Recorder{
		ports:    ports,
		recorder: recorder,
	}
}

// WithInterval keeps only the samples whose time is a multiple of n.
func (r *Recorder) WithInterval(n uint64) *Recorder {
	r.interval = n
	return r
}

// Dump buffers one sample.
func (r *Recorder) Dump(time uint64) {
	if r.interval > 1 && time%r.interval != 0 {
		return
	}

	p := r.ports
	r.recorder.InsertData(SampleTableName, PortSample{
		Time:     time,
		Clk:      p.Clk,
		ResetN:   p.ResetN,
		MemRData: p.MemRData,
		MemResp:  p.MemResp,
		MemRead:  p.MemRead,
		MemWrite: p.MemWrite,
		MemAddr:  p.MemAddr,
		MemWData: p.MemWData,
		PC:       p.PC,
	})
}

// Close flushes the buffered samples. The data recorder stays open.
func (r *Recorder) Close() error {
	r.recorder.Flush()
	return nil
}

// Multi fans samples out to several waveforms.
type Multi []cosim.Waveform

// Dump forwards the sample to every waveform.
func (m Multi) Dump(time uint64) {
	for _, w := range m {
		w.Dump(time)
	}
}

// Close closes every waveform and returns the first error.
func (m Multi) Close() error {
	var first error

	for _, w := range m {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
