package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticKindText(t *testing.T) {
	data, err := json.Marshal([]DiagnosticKind{DanglingOnset, EmptyInput})
	require.NoError(t, err)
	assert.Equal(t, `["DanglingOnset","EmptyInput"]`, string(data))

	var kinds []DiagnosticKind
	require.NoError(t, json.Unmarshal(data, &kinds))
	assert.Equal(t, []DiagnosticKind{DanglingOnset, EmptyInput}, kinds)

	assert.Error(t, json.Unmarshal([]byte(`["Loud"]`), &kinds))
}

func TestDiagnosticString(t *testing.T) {
	assert.Equal(t, "MalformedTrackData (track 2, tick 480): cut", Diagnostic{Kind: MalformedTrackData, Track: 2, Tick: 480, Message: "cut"}.String())
	assert.Equal(t, "EmptyInput: no notes", Diagnostic{Kind: EmptyInput, Track: -1, Message: "no notes"}.String())
}

func TestNoteEvent(t *testing.T) {
	n := NoteEvent{Pitch: 61, Start: 2, End: 1}

	assert.Equal(t, 1, n.PitchClass())
	assert.Equal(t, 0.0, n.Duration())
}

func TestChordName(t *testing.T) {
	assert.Equal(t, "C# minor", ChordObservation{Root: "C#", Type: Minor}.Name())
	assert.Equal(t, "cluster", ChordObservation{Type: Cluster}.Name())
}

func TestResultDuration(t *testing.T) {
	r := &AnalysisResult{Events: []NoteEvent{{Start: 1, End: 2}, {Start: 0.5, End: 1.5}}}

	assert.Equal(t, 1.5, r.Duration())
	assert.Equal(t, 0.0, (&AnalysisResult{}).Duration())
}
