package sample

import (
	"bytes"
	"math"
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type timedMessage struct {
	tick    uint32
	release bool
	msg     []byte
}

// FromNotes writes notes into a new SMF at a constant tempo. Every track index
// up to the highest one used gets its own track, so indexes survive a round
// trip. The tempo is set on the first track.
func FromNotes(notes []model.NoteEvent, ticksPerQuarter uint16, bpm float64) (*smf.SMF, error) {
	if ticksPerQuarter == 0 || bpm <= 0 {
		return nil, errors.Errorf("invalid timing: %d ticks per quarter at %v bpm", ticksPerQuarter, bpm)
	}
	ticksPerSecond := float64(ticksPerQuarter) * bpm / 60
	toTick := func(seconds float64) uint32 {
		return uint32(math.Round(seconds * ticksPerSecond))
	}

	numTracks := 1
	for _, n := range notes {
		if n.Track+1 > numTracks {
			numTracks = n.Track + 1
		}
	}

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	for ti := 0; ti < numTracks; ti++ {
		var own []model.NoteEvent
		name := ""
		for _, n := range notes {
			if n.Track != ti {
				continue
			}
			own = append(own, n)
			if name == "" {
				name = n.TrackName
			}
		}

		var track smf.Track
		if name != "" {
			track.Add(0, smf.MetaTrackSequenceName(name))
		}
		if ti == 0 {
			track.Add(0, smf.MetaTempo(bpm))
		}

		var timed []timedMessage
		programs := make(map[uint8]bool)
		for _, n := range own {
			if n.Program >= 0 && !programs[n.Channel] {
				programs[n.Channel] = true
				track.Add(0, midi.ProgramChange(n.Channel, uint8(n.Program)))
			}
			timed = append(timed,
				timedMessage{tick: toTick(n.Start), msg: midi.NoteOn(n.Channel, n.Pitch, n.Velocity)},
				timedMessage{tick: toTick(n.End), release: true, msg: midi.NoteOff(n.Channel, n.Pitch)},
			)
		}

		// releases go first so that back-to-back notes of one pitch stay separate
		sort.SliceStable(timed, func(i, j int) bool {
			if timed[i].tick != timed[j].tick {
				return timed[i].tick < timed[j].tick
			}
			return timed[i].release && !timed[j].release
		})

		var last uint32
		for _, tm := range timed {
			track.Add(tm.tick-last, tm.msg)
			last = tm.tick
		}
		track.Close(0)

		if err := res.Add(track); err != nil {
			return nil, errors.Wrapf(err, "Could not add track %d", ti)
		}
	}
	return res, nil
}

func Bytes(s *smf.SMF) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "Could not write smf")
	}
	return buf.Bytes(), nil
}

// CMajorScale plays C4 up to C5, each note lasting step seconds, repeats times.
func CMajorScale(repeats int, step float64) []model.NoteEvent {
	pitches := []uint8{60, 62, 64, 65, 67, 69, 71, 72}
	var res []model.NoteEvent
	t := 0.0
	for r := 0; r < repeats; r++ {
		for _, p := range pitches {
			res = append(res, model.NoteEvent{
				Pitch:     p,
				Velocity:  100,
				Start:     t,
				End:       t + step,
				TrackName: "Piano",
				Program:   0,
			})
			t += step
		}
	}
	return res
}
