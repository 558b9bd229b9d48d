package midi

import (
	"fmt"
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
)

type noteKey struct {
	channel uint8
	pitch   uint8
}

type pendingOnset struct {
	key      noteKey
	start    float64
	tick     int64
	velocity uint8
	program  int
	order    int
}

type assembledNote struct {
	note  model.NoteEvent
	order int
}

// AssembleNotes pairs onsets and releases per (track, channel, pitch). Repeated
// onsets of a sounding pitch queue up and are closed oldest first. Onsets still
// open at the end of their track are closed at f.Duration and reported as
// DanglingOnset. The result is ordered by start time, then by onset order.
func AssembleNotes(f *File) ([]model.NoteEvent, []model.Diagnostic) {
	var assembled []assembledNote
	var diags []model.Diagnostic
	order := 0

	for _, track := range f.Tracks {
		name := ""
		programs := make(map[uint8]int)
		queues := make(map[noteKey][]pendingOnset)

		emit := func(p pendingOnset, end float64) {
			assembled = append(assembled, assembledNote{
				order: p.order,
				note: model.NoteEvent{
					Pitch:     p.key.pitch,
					Velocity:  p.velocity,
					Start:     p.start,
					End:       end,
					Channel:   p.key.channel,
					Track:     track.Index,
					TrackName: name,
					Program:   p.program,
				},
			})
		}

		for _, ev := range track.Events {
			switch ev.Kind {
			case TrackName:
				name = ev.Text
			case ProgramChange:
				programs[ev.Channel] = int(ev.Program)
			case NoteOn:
				program, ok := programs[ev.Channel]
				if !ok {
					program = model.NoProgram
				}
				key := noteKey{channel: ev.Channel, pitch: ev.Key}
				queues[key] = append(queues[key], pendingOnset{
					key:      key,
					start:    ev.Seconds,
					tick:     ev.Tick,
					velocity: ev.Velocity,
					program:  program,
					order:    order,
				})
				order++
			case NoteOff:
				key := noteKey{channel: ev.Channel, pitch: ev.Key}
				queue := queues[key]
				if len(queue) == 0 {
					continue
				}
				emit(queue[0], ev.Seconds)
				queues[key] = queue[1:]
			}
		}

		var dangling []pendingOnset
		for _, queue := range queues {
			dangling = append(dangling, queue...)
		}
		sort.Slice(dangling, func(i, j int) bool {
			return dangling[i].order < dangling[j].order
		})
		for _, p := range dangling {
			emit(p, f.Duration)
			diags = append(diags, model.Diagnostic{
				Kind:    model.DanglingOnset,
				Track:   track.Index,
				Tick:    p.tick,
				Message: fmt.Sprintf("note %d on channel %d never released, closed at %.6fs", p.key.pitch, p.key.channel, f.Duration),
			})
		}
	}

	sort.SliceStable(assembled, func(i, j int) bool {
		if assembled[i].note.Start != assembled[j].note.Start {
			return assembled[i].note.Start < assembled[j].note.Start
		}
		return assembled[i].order < assembled[j].order
	})

	notes := make([]model.NoteEvent, len(assembled))
	for i, a := range assembled {
		notes[i] = a.note
	}
	return notes, diags
}
