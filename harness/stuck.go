package harness

// DefaultStuckThreshold is the number of consecutive cycles the program
// counter may stay unchanged before a run is considered deadlocked.
const DefaultStuckThreshold = 100

type stuckDetector struct {
	threshold  uint64
	previousPC uint32
	count      uint64
}

func (s *stuckDetector) reset() {
	s.previousPC = 0
	s.count = 0
}

// observe records the program counter after a cycle and reports whether it
// has stayed unchanged for more than threshold cycles.
func (s *stuckDetector) observe(pc uint32) bool {
	if pc == s.previousPC {
		s.count++
		if s.count > s.threshold {
			return true
		}
	} else {
		s.count = 0
	}

	s.previousPC = pc

	return false
}
