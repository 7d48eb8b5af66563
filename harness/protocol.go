// Package harness runs a program on a core under test until the program
// reports its result, stops making progress or runs out of cycles.
package harness

import "fmt"

// Outcome is how a run ended.
type Outcome int

// The possible outcomes of a run.
const (
	OutcomePass Outcome = iota
	OutcomeFail
	OutcomeTimeout
	OutcomeIndeterminateError
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "PASS"
	case OutcomeFail:
		return "FAIL"
	case OutcomeTimeout:
		return "TIMEOUT"
	case OutcomeIndeterminateError:
		return "ERROR"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Protocol is the convention a program uses to report its result: it writes
// PassValue or FailValue to ResultAddr.
type Protocol struct {
	ResultAddr uint32
	PassValue  uint32
	FailValue  uint32
}

// DefaultProtocol returns the 0xDEAD0000 protocol.
func DefaultProtocol() Protocol {
	return Protocol{
		ResultAddr: 0xDEAD0000,
		PassValue:  0x00000001,
		FailValue:  0xFFFFFFFF,
	}
}

// Classify maps a value read from the result address to an outcome. The
// boolean is true only when the value is one of the two completion values.
// Zero means nothing was written and classifies as a timeout; any other value
// is an indeterminate error.
func (p Protocol) Classify(v uint32) (Outcome, bool) {
	switch v {
	case p.PassValue:
		return OutcomePass, true
	case p.FailValue:
		return OutcomeFail, true
	case 0:
		return OutcomeTimeout, false
	default:
		return OutcomeIndeterminateError, false
	}
}
