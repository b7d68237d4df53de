package adapt

// Default warm-up phase sizes (iterations).
const (
	// DefaultInitBuffer is the leading step-size-only phase.
	DefaultInitBuffer = 75

	// DefaultTermBuffer is the trailing step-size-only phase.
	DefaultTermBuffer = 50

	// DefaultBaseWindow is the first variance-estimation window; each
	// following window doubles.
	DefaultBaseWindow = 25
)

// Schedule partitions a warm-up of fixed length into the three phases
// described in the package doc. A zero-value Schedule adapts nothing.
type Schedule struct {
	initBuffer int
	ends       []int // exclusive end iteration of each variance window
}

// NewSchedule builds the window layout for the given warm-up length.
// Warm-ups shorter than init+base+term collapse to step-size-only
// adaptation (no variance windows).
func NewSchedule(warmup int) Schedule {
	s := Schedule{initBuffer: DefaultInitBuffer}
	if warmup < DefaultInitBuffer+DefaultBaseWindow+DefaultTermBuffer {
		return s
	}

	lo := DefaultInitBuffer
	hi := warmup - DefaultTermBuffer
	w := DefaultBaseWindow
	for lo < hi {
		end := lo + w
		// If the next doubling would not fit, absorb the remainder now so
		// the final window is the longest, not a fragment.
		if end+2*w > hi {
			end = hi
		}
		s.ends = append(s.ends, end)
		lo = end
		w *= 2
	}

	return s
}

// InWindow reports whether iteration iter (0-based) lies inside a
// variance-estimation window.
func (s Schedule) InWindow(iter int) bool {
	if len(s.ends) == 0 {
		return false
	}

	return iter >= s.initBuffer && iter < s.ends[len(s.ends)-1]
}

// CloseWindow reports whether iteration iter is the last of a variance
// window, i.e. the mass matrix should be re-estimated after it.
func (s Schedule) CloseWindow(iter int) bool {
	for _, end := range s.ends {
		if iter == end-1 {
			return true
		}
	}

	return false
}

// Windows returns the number of variance-estimation windows.
func (s Schedule) Windows() int { return len(s.ends) }
