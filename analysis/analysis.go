package analysis

import (
	"os"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/chord"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/config"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/key"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/logging"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/midi"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/rhythm"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/timeline"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/trackmap"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Analyzer runs the whole pipeline for one file at a time. It holds no state
// between calls and may be shared.
type Analyzer struct {
	Config config.Config
	Logger *zap.Logger
	mapper *trackmap.Mapper
}

func New(cfg config.Config, logger *zap.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mapper, err := trackmap.New(cfg.MappingRules)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Analyzer{Config: cfg, Logger: logger, mapper: mapper}, nil
}

// WithConfig returns a copy using cfg for the numeric settings. Mapping rules
// are not recompiled.
func (a *Analyzer) WithConfig(cfg config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res := *a
	res.Config = cfg
	return &res, nil
}

func (a *Analyzer) AnalyzeFile(path string) (*model.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading midi file")
	}
	return a.AnalyzeBytes(path, data)
}

// AnalyzeBytes decodes data and runs every analysis on it. The error is only
// set when the container itself is unusable; everything else ends up in the
// result's diagnostics.
func (a *Analyzer) AnalyzeBytes(source string, data []byte) (res *model.AnalysisResult, e error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			e = errors.Wrapf(midi.ErrMalformedContainer, "decoder panicked on %s: %v", source, r)
		}
	}()

	f, diags, err := midi.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing midi file %s", source)
	}
	notes, noteDiags := midi.AssembleNotes(f)
	diags = append(diags, noteDiags...)

	res = a.AnalyzeNotes(source, notes)
	res.Tracks = midi.DetectTracks(f)
	res.Diagnostics = append(diags, res.Diagnostics...)
	res.Metadata["format"] = int(f.Header.Format)
	res.Metadata["ticks_per_quarter"] = int(f.Header.TicksPerQuarter())
	res.Metadata["track_count"] = len(f.Tracks)
	res.Metadata["duration"] = f.Duration

	for _, d := range diags {
		logging.Diagnostic(a.Logger, source, d)
	}
	return res, nil
}

// AnalyzeNotes runs the analyses on an already assembled note list.
func (a *Analyzer) AnalyzeNotes(source string, notes []model.NoteEvent) *model.AnalysisResult {
	res := &model.AnalysisResult{
		Key:            key.Detect(notes),
		Chords:         chord.Analyze(notes, a.Config.ChordWindow),
		RhythmPatterns: rhythm.Patterns(notes, a.Config.RhythmTopK),
		Events:         notes,
		AlignedEvents:  timeline.Align(notes, a.Config.QuantizeGrid),
		Tracks:         []model.TrackInfo{},
		TrackMapping:   a.mapper.AutoMap(notes),
		Metadata: map[string]any{
			"run_id":     uuid.NewString(),
			"source":     source,
			"note_count": len(notes),
		},
		Diagnostics: []model.Diagnostic{},
	}
	if a.Config.MergeRepeatedChords {
		res.Chords = chord.MergeRepeated(res.Chords)
	}
	res.Sequence = timeline.GenerateSequence(timeline.GroupByRole(res.AlignedEvents, a.mapper.TrackRoles(notes)))

	if len(notes) == 0 {
		d := model.Diagnostic{Kind: model.EmptyInput, Track: -1, Message: "no notes to analyze"}
		res.Diagnostics = append(res.Diagnostics, d)
		logging.Diagnostic(a.Logger, source, d)
	}

	// empty lists rather than nulls in encoded output
	if res.Events == nil {
		res.Events = []model.NoteEvent{}
	}
	if res.Chords == nil {
		res.Chords = []model.ChordObservation{}
	}
	if res.RhythmPatterns == nil {
		res.RhythmPatterns = []model.RhythmPattern{}
	}
	return res
}
