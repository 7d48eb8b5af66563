package memfsm

import "fmt"

// State is the committed state of the memory timing machine.
type State int

// All the states of the memory timing machine.
const (
	StateIdle State = iota
	StateAwaitingRead
	StateAwaitingWrite
	StateReadComplete
	StateWriteComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingRead:
		return "AwaitingRead"
	case StateAwaitingWrite:
		return "AwaitingWrite"
	case StateReadComplete:
		return "ReadComplete"
	case StateWriteComplete:
		return "WriteComplete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Waiting returns true for the states that count latency cycles.
func (s State) Waiting() bool {
	return s == StateAwaitingRead || s == StateAwaitingWrite
}

// Complete returns true for the states that drive a valid response.
func (s State) Complete() bool {
	return s == StateReadComplete || s == StateWriteComplete
}

// A Request is the set of signals the memory samples on each evaluation.
type Request struct {
	Clk    bool
	ResetN bool
	Read   bool
	Write  bool
	Addr   uint32
	Data   uint32
}

// A Response is what the memory drives back.
type Response struct {
	Data  uint32
	Valid bool
}

// RequestSample holds the signal levels seen at the previous evaluation.
type RequestSample struct {
	PrevRead  bool
	PrevWrite bool
	PrevClk   bool
}

// Control is the mutable control state of the memory. Memory contents and
// the output buffer are not part of it.
type Control struct {
	State  State
	Next   State
	Sample RequestSample
	Count  uint32
}

// Next computes the state that the next rising edge commits. It only reads
// the committed state, the previous samples and the current request lines.
func Next(c Control, in Request, latency uint32) State {
	switch c.State {
	case StateIdle:
		switch {
		case in.Read && !c.Sample.PrevRead:
			return StateAwaitingRead
		case in.Write && !c.Sample.PrevWrite:
			return StateAwaitingWrite
		default:
			return StateIdle
		}
	case StateAwaitingRead:
		if c.Count >= latency-1 {
			return StateReadComplete
		}
		return StateAwaitingRead
	case StateAwaitingWrite:
		if c.Count >= latency-1 {
			return StateWriteComplete
		}
		return StateAwaitingWrite
	default:
		return StateIdle
	}
}
