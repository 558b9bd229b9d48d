package tempo

import "sort"

// Converter maps absolute ticks to absolute seconds.
type Converter struct {
	ticks   []int64
	offsets []float64 // seconds elapsed at ticks[i]
	micros  []float64
	denom   float64 // ticks per quarter * 1e6

	fixedRate float64
}

// NewConverter prepares a converter for metrical time. ticksPerQuarter must be
// positive.
func NewConverter(m Map, ticksPerQuarter uint16) *Converter {
	bps := m.breakpoints
	if len(bps) == 0 {
		bps = DefaultMap().breakpoints
	}
	c := &Converter{
		ticks:   make([]int64, len(bps)),
		offsets: make([]float64, len(bps)),
		micros:  make([]float64, len(bps)),
		denom:   float64(ticksPerQuarter) * 1e6,
	}
	for i, bp := range bps {
		c.ticks[i] = bp.Tick
		c.micros[i] = float64(bp.MicrosPerQuarter)
		if i > 0 {
			c.offsets[i] = c.segment(i-1, bp.Tick)
		}
	}
	return c
}

// NewSMPTEConverter ignores tempo entirely: every tick lasts
// 1/(framesPerSecond*ticksPerFrame) seconds.
func NewSMPTEConverter(framesPerSecond, ticksPerFrame uint8) *Converter {
	return &Converter{fixedRate: 1 / (float64(framesPerSecond) * float64(ticksPerFrame))}
}

func (c *Converter) segment(i int, tick int64) float64 {
	return c.offsets[i] + float64(tick-c.ticks[i])*c.micros[i]/c.denom
}

// Seconds returns the elapsed time at tick. Negative ticks map to zero.
func (c *Converter) Seconds(tick int64) float64 {
	if tick <= 0 {
		return 0
	}
	if c.fixedRate > 0 {
		return float64(tick) * c.fixedRate
	}
	i := sort.Search(len(c.ticks), func(i int) bool {
		return c.ticks[i] > tick
	})
	if i == 0 {
		return float64(tick) * c.micros[0] / c.denom
	}
	return c.segment(i-1, tick)
}
