package cmd

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/analysis"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/config"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTriad(t *testing.T, path string) {
	t.Helper()
	var notes []model.NoteEvent
	for _, p := range []uint8{60, 64, 67} {
		notes = append(notes, model.NoteEvent{Pitch: p, Velocity: 100, End: 1, TrackName: "Piano", Program: 0})
	}
	s, err := sample.FromNotes(notes, 480, 120)
	require.NoError(t, err)
	data, err := sample.Bytes(s)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0666))
}

func defaultAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.New(config.Default(), nil)
	require.NoError(t, err)
	return a
}

func TestBatchAndReport(t *testing.T) {
	media := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTriad(t, filepath.Join(media, "a.mid"))
	require.NoError(t, os.WriteFile(filepath.Join(media, "b.mid"), []byte("junk"), 0666))

	summary, err := Batch(defaultAnalyzer(t), media, out, 0)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(analysis.Summary{Files: 2, Analyzed: 1, Skipped: 1, Notes: 3}, summary)
	assert.FileExists(filepath.Join(out, "00000_a.json"))
	assert.FileExists(filepath.Join(out, summaryFilename))
	assert.NoFileExists(filepath.Join(out, "00001_b.json"))

	r, err := analyzeResults(out)
	require.NoError(t, err)
	assert.Equal(1, r.numFiles)
	assert.Equal(3, r.numNotes)
	assert.Equal(map[string]int{"C major": 1}, r.keys)

	var buf bytes.Buffer
	r.print(&buf)
	assert.Equal("files: 1\nnotes: 3\nchords: 1\nkey C major: 1\n", buf.String())
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triad.mid")
	writeTriad(t, path)

	var buf bytes.Buffer
	require.NoError(t, inspect(&buf, path))

	assert.Contains(t, buf.String(), "tempo: tick 0, 500000 us per quarter\n")
	assert.Contains(t, buf.String(), "track 0: name \"Piano\", programs [0], notes 3\n")
	assert.NotContains(t, buf.String(), "diagnostic")
}

func TestInspectMissingFile(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, inspect(&buf, filepath.Join(t.TempDir(), "nope.mid")))
}

func TestQueryOverrides(t *testing.T) {
	a := defaultAnalyzer(t)

	req := httptest.NewRequest("POST", "/analyze?window=1&grid=0.25&top_k=2", nil)
	local, err := withQueryOverrides(a, req)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(1.0, local.Config.ChordWindow)
	assert.Equal(0.25, local.Config.QuantizeGrid)
	assert.Equal(2, local.Config.RhythmTopK)
	assert.Equal(0.5, a.Config.ChordWindow)

	for _, query := range []string{"window=wide", "grid=0", "top_k=-1", "window=NaN", "grid=Inf", "window=0.00001"} {
		_, err := withQueryOverrides(a, httptest.NewRequest("POST", "/analyze?"+query, nil))
		assert.Error(err, query)
	}
}

func TestAnalyzeRejectsUnusableWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triad.mid")
	writeTriad(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	router := NewRouter(defaultAnalyzer(t))

	for _, query := range []string{"window=0.00001", "window=NaN", "grid=-Inf"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/analyze?"+query, bytes.NewReader(data)))
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/analyze?window=0.001", bytes.NewReader(data)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWriteJSONReportsEncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()

	err := writeJSON(w, http.StatusOK, map[string]float64{"start": math.NaN()})

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
}
