package teleprompter

import "time"

// TickKind identifies which of the two tickers fired.
type TickKind int

const (
	ScrollTick TickKind = iota
	ElapsedTick
)

const (
	ScrollInterval  = 50 * time.Millisecond
	ElapsedInterval = time.Second
)

// Interval is the ticker's cadence.
func (k TickKind) Interval() time.Duration {
	if k == ScrollTick {
		return ScrollInterval
	}
	return ElapsedInterval
}

func (k TickKind) String() string {
	switch k {
	case ScrollTick:
		return "scroll"
	case ElapsedTick:
		return "elapsed"
	default:
		return "unknown"
	}
}

// Tick is one firing of a ticker armed during the given epoch.
type Tick struct {
	Kind  TickKind
	Epoch uint64
}
