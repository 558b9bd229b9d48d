package timeline

import (
	"math"
	"testing"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/stretchr/testify/assert"
)

func n(pitch uint8, start, end float64) model.NoteEvent {
	return model.NoteEvent{Pitch: pitch, Velocity: 100, Start: start, End: end, Program: model.NoProgram}
}

func TestAlignSnapsToNearestCell(t *testing.T) {
	aligned := Align([]model.NoteEvent{n(60, 0.06, 0.19)}, 0.125)

	assert.Equal(t, []model.NoteEvent{n(60, 0, 0.25)}, aligned)
}

func TestAlignEnforcesMinimumCell(t *testing.T) {
	aligned := Align([]model.NoteEvent{n(60, 0.26, 0.3), n(62, 1, 1)}, 0.25)

	assert.Equal(t, []model.NoteEvent{n(60, 0.25, 0.5), n(62, 1, 1.25)}, aligned)
}

func TestAlignMergesTouchingNotes(t *testing.T) {
	quiet := n(60, 0.2, 0.5)
	quiet.Velocity = 40
	loud := n(60, 0, 0.3)
	loud.Velocity = 110

	aligned := Align([]model.NoteEvent{loud, quiet}, 0.25)

	want := n(60, 0, 0.5)
	want.Velocity = 110
	assert.Equal(t, []model.NoteEvent{want}, aligned)
}

func TestAlignKeepsVoicesApart(t *testing.T) {
	other := n(60, 0.25, 0.5)
	other.Channel = 1
	otherTrack := n(60, 0.25, 0.5)
	otherTrack.Track = 2
	notes := []model.NoteEvent{n(60, 0, 0.25), other, otherTrack, n(62, 0.25, 0.5)}

	aligned := Align(notes, 0.25)

	assert.Equal(t, notes, aligned)
}

func TestAlignMergesChains(t *testing.T) {
	notes := []model.NoteEvent{n(60, 0, 0.5), n(60, 0.4, 1), n(60, 1, 1.5), n(60, 2, 2.5)}

	aligned := Align(notes, 0.5)

	assert.Equal(t, []model.NoteEvent{n(60, 0, 1.5), n(60, 2, 2.5)}, aligned)
}

func TestAlignSortsByStart(t *testing.T) {
	notes := []model.NoteEvent{n(64, 0.51, 1), n(60, 0.49, 1), n(67, 0, 0.2)}

	aligned := Align(notes, 0.5)

	var pitches []uint8
	for _, a := range aligned {
		pitches = append(pitches, a.Pitch)
	}
	assert.Equal(t, []uint8{67, 64, 60}, pitches)
}

func TestAlignIsIdempotent(t *testing.T) {
	notes := []model.NoteEvent{
		n(60, 0.03, 0.41), n(60, 0.37, 0.52), n(64, 0.1, 0.11),
		n(67, 0.333, 0.777), n(67, 0.9, 1.3), n(72, 2.01, 1.99),
	}
	for _, grid := range []float64{0.1, 0.125, 1.0 / 3, 0.25} {
		once := Align(notes, grid)
		assert.Equal(t, once, Align(once, grid), "grid %v", grid)
	}
}

func TestAlignNonPositiveGridCopies(t *testing.T) {
	notes := []model.NoteEvent{n(60, 0.06, 0.19)}

	aligned := Align(notes, 0)
	aligned[0].Start = 5

	assert.Equal(t, 0.06, notes[0].Start)
	assert.Empty(t, Align(nil, 0.25))
}

func TestAlignNonFiniteGridCopies(t *testing.T) {
	notes := []model.NoteEvent{n(60, 0.06, 0.19)}

	for _, grid := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		aligned := Align(notes, grid)
		assert.Equal(t, notes, aligned, "grid %v", grid)
	}
}

func TestGenerateSequence(t *testing.T) {
	byRole := map[string][]model.NoteEvent{
		"piano": {n(60, 0, 1), n(64, 1, 2)},
		"bass":  {n(36, 0, 2), n(43, 0, 2)},
	}

	seq := GenerateSequence(byRole)

	var got []string
	for _, r := range seq {
		got = append(got, r.Role)
	}
	assert.Equal(t, []string{"bass", "bass", "piano", "piano"}, got)
	assert.Equal(t, uint8(43), seq[1].Pitch)
	assert.Equal(t, uint8(64), seq[3].Pitch)
}

func TestGroupByRole(t *testing.T) {
	drums := n(36, 0, 1)
	drums.Track = 1
	stray := n(70, 0, 1)
	stray.Track = 4

	groups := GroupByRole([]model.NoteEvent{n(60, 0, 1), drums, stray}, map[int]string{0: "piano", 1: "drums"})

	assert.Equal(t, map[string][]model.NoteEvent{
		"piano":   {n(60, 0, 1)},
		"drums":   {drums},
		"unknown": {stray},
	}, groups)
}
