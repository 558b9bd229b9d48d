package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/config"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/file"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/key"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/midi"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func heldTriad() []model.NoteEvent {
	var res []model.NoteEvent
	for _, p := range []uint8{60, 64, 67} {
		res = append(res, model.NoteEvent{Pitch: p, Velocity: 100, Start: 0, End: 1, TrackName: "Piano", Program: 0})
	}
	return res
}

func midiBytes(t *testing.T, notes []model.NoteEvent) []byte {
	t.Helper()
	s, err := sample.FromNotes(notes, 480, 120)
	require.NoError(t, err)
	data, err := sample.Bytes(s)
	require.NoError(t, err)
	return data
}

func newAnalyzer(t *testing.T, cfg config.Config) *Analyzer {
	t.Helper()
	a, err := New(cfg, nil)
	require.NoError(t, err)
	return a
}

func TestAnalyzeHeldTriad(t *testing.T) {
	a := newAnalyzer(t, config.Default())

	res, err := a.AnalyzeBytes("triad.mid", midiBytes(t, heldTriad()))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("C major", res.Key)
	if assert.Len(res.Chords, 1) {
		assert.Equal("C major", res.Chords[0].Name())
	}
	assert.Equal(heldTriad(), res.Events)
	assert.Equal(heldTriad(), res.AlignedEvents)
	assert.Empty(res.RhythmPatterns)
	assert.Equal(map[string]string{"Piano": "piano"}, res.TrackMapping)
	assert.Empty(res.Diagnostics)
	if assert.Len(res.Tracks, 1) {
		assert.Equal("Piano", res.Tracks[0].Name)
		assert.Equal(3, res.Tracks[0].NoteCount)
	}
	if assert.Len(res.Sequence, 3) {
		assert.Equal("piano", res.Sequence[0].Role)
	}

	assert.Equal("triad.mid", res.Metadata["source"])
	assert.Equal(3, res.Metadata["note_count"])
	assert.Equal(480, res.Metadata["ticks_per_quarter"])
	assert.Equal(1, res.Metadata["track_count"])
	assert.Equal(1.0, res.Metadata["duration"])
	assert.NotEmpty(res.Metadata["run_id"])
}

func TestAnalyzeWithoutMerging(t *testing.T) {
	cfg := config.Default()
	cfg.MergeRepeatedChords = false

	res, err := newAnalyzer(t, cfg).AnalyzeBytes("triad.mid", midiBytes(t, heldTriad()))
	require.NoError(t, err)

	assert.Len(t, res.Chords, 2)
}

func TestAnalyzeScale(t *testing.T) {
	notes := sample.CMajorScale(2, 0.5)

	res, err := newAnalyzer(t, config.Default()).AnalyzeBytes("scale.mid", midiBytes(t, notes))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("C major", res.Key)
	assert.Equal([]model.RhythmPattern{{Interval: 0.5, Count: 15}}, res.RhythmPatterns)
	// the top C and the following low C share a pitch class and merge
	assert.Len(res.Chords, 15)
}

func TestAnalyzeEmptyFile(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a, err := New(config.Default(), zap.New(core))
	require.NoError(t, err)

	res, err := a.AnalyzeBytes("empty.mid", midiBytes(t, nil))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(key.Unknown, res.Key)
	assert.NotNil(res.Chords)
	assert.Empty(res.Chords)
	assert.NotNil(res.Events)
	assert.Empty(res.RhythmPatterns)
	if assert.Len(res.Diagnostics, 1) {
		assert.Equal(model.EmptyInput, res.Diagnostics[0].Kind)
	}
	assert.Equal(1, logs.FilterField(zap.String("file", "empty.mid")).Len())
}

func TestAnalyzeMalformedContainer(t *testing.T) {
	_, err := newAnalyzer(t, config.Default()).AnalyzeBytes("junk.mid", []byte("not a midi file"))

	assert.ErrorIs(t, err, midi.ErrMalformedContainer)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ChordWindow = 0

	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	a := newAnalyzer(t, config.Default())
	_, err = a.WithConfig(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestProcessAllSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mid")
	bad := filepath.Join(dir, "bad.mid")
	require.NoError(t, os.WriteFile(good, midiBytes(t, heldTriad()), 0666))
	require.NoError(t, os.WriteFile(bad, []byte("MThd"), 0666))

	var handled []string
	outcomes, summary, err := newAnalyzer(t, config.Default()).ProcessAll(
		file.CreateFileNumMap([]string{bad, good}),
		func(o Outcome) error {
			handled = append(handled, o.Path)
			return nil
		})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]string{good}, handled)
	if assert.Len(outcomes, 1) {
		assert.Equal(uint32(1), outcomes[0].FileNum)
	}
	assert.Equal(Summary{Files: 2, Analyzed: 1, Skipped: 1, Notes: 3}, summary)
}
