package model

type AnalysisResult struct {
	Key            string             `json:"key" yaml:"key"`
	Chords         []ChordObservation `json:"chords" yaml:"chords"`
	RhythmPatterns []RhythmPattern    `json:"rhythm_patterns" yaml:"rhythm_patterns"`
	Events         []NoteEvent        `json:"events" yaml:"events"`
	AlignedEvents  []NoteEvent        `json:"aligned_events" yaml:"aligned_events"`
	Sequence       []RoledNote        `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Tracks         []TrackInfo        `json:"tracks" yaml:"tracks"`
	TrackMapping   map[string]string  `json:"track_mapping" yaml:"track_mapping"`
	Metadata       map[string]any     `json:"metadata" yaml:"metadata"`
	Diagnostics    []Diagnostic       `json:"diagnostics" yaml:"diagnostics"`
}

// Duration spans from the earliest start to the latest end of the events.
func (r *AnalysisResult) Duration() float64 {
	if len(r.Events) == 0 {
		return 0
	}
	start, end := r.Events[0].Start, r.Events[0].End
	for _, ev := range r.Events[1:] {
		if ev.Start < start {
			start = ev.Start
		}
		if ev.End > end {
			end = ev.End
		}
	}
	return end - start
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
