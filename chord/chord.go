package chord

import (
	"fmt"
	"math"
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
)

type triad struct {
	kind      model.ChordType
	intervals [3]int
}

// checked in this order for every candidate root
var triads = []triad{
	{model.Major, [3]int{0, 4, 7}},
	{model.Minor, [3]int{0, 3, 7}},
	{model.Diminished, [3]int{0, 3, 6}},
}

func CreateChordKey(pitchClasses []int) string {
	sorted := append([]int{}, pitchClasses...)
	sort.Ints(sorted)
	var res string
	for i, pc := range sorted {
		res += fmt.Sprintf("%v", pc)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// Classify names the first triad found when scanning roots upward from C.
// Extra pitch classes do not prevent a match. Sets without a triad are
// clusters and have no root.
func Classify(pitchClasses []int) (root string, kind model.ChordType) {
	present := make(map[int]bool)
	for _, pc := range pitchClasses {
		present[((pc%12)+12)%12] = true
	}
	for r := 0; r < 12; r++ {
		if !present[r] {
			continue
		}
		for _, t := range triads {
			if present[(r+t.intervals[1])%12] && present[(r+t.intervals[2])%12] {
				return model.NoteNames[r], t.kind
			}
		}
	}
	return "", model.Cluster
}

// windowSpan returns the first and last window indexes the note sounds in. A
// note sounds in [k*w, (k+1)*w) when [start, end) intersects it; zero-length
// notes count in the window holding their start.
func windowSpan(n model.NoteEvent, window float64) (int, int) {
	first := int(math.Floor(n.Start / window))
	if n.End <= n.Start {
		return first, first
	}
	last := int(math.Ceil(n.End/window)) - 1
	if last < first {
		last = first
	}
	return first, last
}

// Analyze splits the timeline into windows of the given width starting at
// zero and classifies the pitch classes sounding in each. Empty windows are
// skipped. A window that is not a positive finite number yields nothing.
func Analyze(notes []model.NoteEvent, window float64) []model.ChordObservation {
	if !(window > 0) || math.IsInf(window, 0) || len(notes) == 0 {
		return nil
	}

	sounding := make(map[int]map[int]bool)
	for _, n := range notes {
		first, last := windowSpan(n, window)
		for k := first; k <= last; k++ {
			if sounding[k] == nil {
				sounding[k] = make(map[int]bool)
			}
			sounding[k][n.PitchClass()] = true
		}
	}

	var res []model.ChordObservation
	for _, k := range util.SortedKeys(sounding) {
		pcs := util.SortedKeys(sounding[k])
		root, kind := Classify(pcs)
		res = append(res, model.ChordObservation{
			Time:         float64(k) * window,
			Root:         root,
			Type:         kind,
			PitchClasses: pcs,
		})
	}
	return res
}

// MergeRepeated collapses runs of consecutive observations that share root,
// type and pitch classes into the first observation of the run.
func MergeRepeated(chords []model.ChordObservation) []model.ChordObservation {
	var res []model.ChordObservation
	lastKey := ""
	for i, c := range chords {
		key := c.Name() + "/" + CreateChordKey(c.PitchClasses)
		if i > 0 && key == lastKey {
			continue
		}
		res = append(res, c)
		lastKey = key
	}
	return res
}
