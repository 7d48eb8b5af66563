package sim

import (
	"log"
	"math"
)

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}

	return VTimeInSec(1.0 / f)
}

// HalfPeriod returns the time between a rising edge and the following falling
// edge.
func (f Freq) HalfPeriod() VTimeInSec {
	return f.Period() / 2
}

// Cycle converts a time to the number of cycles passed since time 0.
func (f Freq) Cycle(time VTimeInSec) uint64 {
	return uint64(math.Round(float64(time) * float64(f)))
}

// HalfPeriodsToTime converts a number of elapsed half periods into a time.
//
//	n:  0    1    2    3    4
//	    |‾‾‾‾|____|‾‾‾‾|____|
func (f Freq) HalfPeriodsToTime(n uint64) VTimeInSec {
	return VTimeInSec(float64(n)) * f.HalfPeriod()
}
