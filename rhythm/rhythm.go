package rhythm

import (
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
)

// Onsets returns the start times of notes in ascending order.
func Onsets(notes []model.NoteEvent) []float64 {
	res := make([]float64, len(notes))
	for i, n := range notes {
		res[i] = n.Start
	}
	sort.Float64s(res)
	return res
}

// Intervals returns the positive gaps between consecutive onsets.
func Intervals(onsets []float64) []float64 {
	var res []float64
	for i := 1; i < len(onsets); i++ {
		if d := onsets[i] - onsets[i-1]; d > 0 {
			res = append(res, d)
		}
	}
	return res
}

// Patterns counts identical inter-onset intervals and returns the topK most
// frequent, ties going to the shorter interval. Intervals are compared exactly.
func Patterns(notes []model.NoteEvent, topK int) []model.RhythmPattern {
	if topK <= 0 {
		return nil
	}

	counts := make(map[float64]int)
	for _, d := range Intervals(Onsets(notes)) {
		counts[d]++
	}

	res := make([]model.RhythmPattern, 0, len(counts))
	for interval, count := range counts {
		res = append(res, model.RhythmPattern{Interval: interval, Count: count})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Interval < res[j].Interval
	})

	if len(res) > topK {
		res = res[:topK]
	}
	if len(res) == 0 {
		return nil
	}
	return res
}
