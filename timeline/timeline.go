package timeline

import (
	"math"
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
)

type voice struct {
	pitch   uint8
	channel uint8
	track   int
}

type cell struct {
	note  model.NoteEvent
	si    int64
	ei    int64
	order int
}

func snap(seconds, grid float64) int64 {
	return int64(math.Round(seconds / grid))
}

// Align snaps every note boundary to the nearest multiple of grid, keeping
// notes at least one cell long, then merges notes of the same pitch, channel
// and track whose snapped spans overlap or touch. A merged note spans the
// union and takes the loudest velocity. Aligning an aligned sequence with the
// same grid changes nothing. A grid that is not a positive finite number
// returns an unchanged copy.
func Align(notes []model.NoteEvent, grid float64) []model.NoteEvent {
	if !(grid > 0) || math.IsInf(grid, 0) {
		return append([]model.NoteEvent{}, notes...)
	}

	voices := make(map[voice][]cell)
	var order []voice
	for i, n := range notes {
		c := cell{note: n, si: snap(n.Start, grid), ei: snap(n.End, grid), order: i}
		if c.ei <= c.si {
			c.ei = c.si + 1
		}
		v := voice{pitch: n.Pitch, channel: n.Channel, track: n.Track}
		if _, ok := voices[v]; !ok {
			order = append(order, v)
		}
		voices[v] = append(voices[v], c)
	}

	var merged []cell
	for _, v := range order {
		cells := voices[v]
		sort.SliceStable(cells, func(i, j int) bool {
			return cells[i].si < cells[j].si
		})
		cur := cells[0]
		for _, next := range cells[1:] {
			if next.si <= cur.ei {
				cur.ei = util.Max(cur.ei, next.ei)
				cur.note.Velocity = util.Max(cur.note.Velocity, next.note.Velocity)
				continue
			}
			merged = append(merged, cur)
			cur = next
		}
		merged = append(merged, cur)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].si != merged[j].si {
			return merged[i].si < merged[j].si
		}
		return merged[i].order < merged[j].order
	})

	res := make([]model.NoteEvent, len(merged))
	for i, c := range merged {
		n := c.note
		n.Start = float64(c.si) * grid
		n.End = float64(c.ei) * grid
		res[i] = n
	}
	return res
}

// GenerateSequence interleaves the notes of every role into one sequence
// ordered by start time. Equal starts are ordered by role name, then by their
// position in the role's list.
func GenerateSequence(byRole map[string][]model.NoteEvent) []model.RoledNote {
	var res []model.RoledNote
	for _, role := range util.SortedKeys(byRole) {
		for _, n := range byRole[role] {
			res = append(res, model.RoledNote{NoteEvent: n, Role: role})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res
}

// GroupByRole splits notes by the role their track is mapped to. mapping is
// keyed by track index as produced by trackmap.
func GroupByRole(notes []model.NoteEvent, mapping map[int]string) map[string][]model.NoteEvent {
	res := make(map[string][]model.NoteEvent)
	for _, n := range notes {
		role, ok := mapping[n.Track]
		if !ok {
			role = "unknown"
		}
		res[role] = append(res[role], n)
	}
	return res
}
