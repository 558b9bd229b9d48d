package tempo

import (
	"fmt"
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/constants"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
)

// Marker is a tempo meta event as found in a track, before validation.
type Marker struct {
	Tick             int64
	MicrosPerQuarter int64
	Track            int
}

// Map is the piecewise-constant tempo of a file. The first breakpoint is
// always at tick 0.
type Map struct {
	breakpoints []model.TempoBreakpoint
}

// BuildMap sorts markers by tick and resolves duplicates at the same tick in
// favour of the one seen last. A non-positive tempo is replaced by the tempo in
// effect at that point and reported as MalformedTempoData.
func BuildMap(markers []Marker) (Map, []model.Diagnostic) {
	sorted := make([]Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tick < sorted[j].Tick
	})

	var diags []model.Diagnostic
	bps := []model.TempoBreakpoint{{Tick: 0, MicrosPerQuarter: constants.DefaultMicrosPerQuarter}}
	for _, m := range sorted {
		current := bps[len(bps)-1]
		micros := m.MicrosPerQuarter
		if micros <= 0 {
			diags = append(diags, model.Diagnostic{
				Kind:    model.MalformedTempoData,
				Track:   m.Track,
				Tick:    m.Tick,
				Message: fmt.Sprintf("tempo %d is not positive, keeping %d", micros, current.MicrosPerQuarter),
			})
			micros = current.MicrosPerQuarter
		}
		tick := m.Tick
		if tick < 0 {
			tick = 0
		}
		if tick == current.Tick {
			bps[len(bps)-1].MicrosPerQuarter = micros
			continue
		}
		bps = append(bps, model.TempoBreakpoint{Tick: tick, MicrosPerQuarter: micros})
	}
	return Map{breakpoints: bps}, diags
}

func DefaultMap() Map {
	m, _ := BuildMap(nil)
	return m
}

func (m Map) Breakpoints() []model.TempoBreakpoint {
	res := make([]model.TempoBreakpoint, len(m.breakpoints))
	copy(res, m.breakpoints)
	return res
}

// TempoAt returns the microseconds per quarter note in effect at tick.
func (m Map) TempoAt(tick int64) int64 {
	if len(m.breakpoints) == 0 {
		return constants.DefaultMicrosPerQuarter
	}
	i := sort.Search(len(m.breakpoints), func(i int) bool {
		return m.breakpoints[i].Tick > tick
	})
	if i == 0 {
		return m.breakpoints[0].MicrosPerQuarter
	}
	return m.breakpoints[i-1].MicrosPerQuarter
}
