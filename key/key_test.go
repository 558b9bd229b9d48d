package key

import (
	"testing"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/stretchr/testify/assert"
)

func held(pitches ...uint8) []model.NoteEvent {
	var res []model.NoteEvent
	for _, p := range pitches {
		res = append(res, model.NoteEvent{Pitch: p, Velocity: 100, Start: 0, End: 1})
	}
	return res
}

func TestDetect(t *testing.T) {
	cases := []struct {
		name  string
		notes []model.NoteEvent
		want  string
	}{
		{"c major scale", held(60, 62, 64, 65, 67, 69, 71, 72), "C major"},
		{"diatonic set", held(60, 62, 64, 65, 67, 69, 71), "C major"},
		{"c major triad", held(60, 64, 67), "C major"},
		{"a minor triad", held(57, 60, 64), "A minor"},
		{"g major triad", held(55, 59, 62), "G major"},
		{"empty", nil, Unknown},
		{"chromatic", held(60, 61, 62, 63, 64, 65, 66, 67, 68, 69, 70, 71), Unknown},
		{"zero length", []model.NoteEvent{{Pitch: 60, Start: 1, End: 1}}, Unknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Detect(c.notes))
		})
	}
}

func TestRepeatedScaleIsCMajor(t *testing.T) {
	var notes []model.NoteEvent
	for r := 0; r < 4; r++ {
		for i, p := range []uint8{60, 62, 64, 65, 67, 69, 71, 72} {
			start := float64(r*8+i) * 0.25
			notes = append(notes, model.NoteEvent{Pitch: p, Velocity: 90, Start: start, End: start + 0.25})
		}
	}

	est, ok := EstimateKey(notes)

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(0, est.Root)
	assert.Equal(Major, est.Mode)
	assert.InDelta(0.901, est.Correlation, 0.001)
}

func TestProfileWeightsByDuration(t *testing.T) {
	notes := []model.NoteEvent{
		{Pitch: 60, Start: 0, End: 2},
		{Pitch: 72, Start: 2, End: 3},
		{Pitch: 67, Start: 0, End: 0.5},
	}

	profile := Profile(notes)

	assert.Equal(t, 3.0, profile[0])
	assert.Equal(t, 0.5, profile[7])
}

func TestBestBreaksTies(t *testing.T) {
	var flat [2][12]float64
	assert.Equal(t, Estimate{Root: 0, Mode: Major}, best(flat))

	var minorFirst [2][12]float64
	minorFirst[1][0] = 0.8
	minorFirst[0][5] = 0.8
	minorFirst[0][9] = 0.8
	assert.Equal(t, Estimate{Root: 5, Mode: Major, Correlation: 0.8}, best(minorFirst))

	var minorOnly [2][12]float64
	minorOnly[1][9] = 0.7
	minorOnly[1][2] = 0.7
	assert.Equal(t, Estimate{Root: 2, Mode: Minor, Correlation: 0.7}, best(minorOnly))
}
