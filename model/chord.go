package model

type ChordType string

const (
	Major      ChordType = "major"
	Minor      ChordType = "minor"
	Diminished ChordType = "diminished"
	Cluster    ChordType = "cluster"
)

var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ChordObservation describes the pitch classes sounding in one analysis window.
// Root is empty for clusters.
type ChordObservation struct {
	Time         float64   `json:"time" yaml:"time"`
	Root         string    `json:"root,omitempty" yaml:"root,omitempty"`
	Type         ChordType `json:"type" yaml:"type"`
	PitchClasses []int     `json:"notes" yaml:"notes"`
}

func (c ChordObservation) Name() string {
	if c.Root == "" {
		return string(c.Type)
	}
	return c.Root + " " + string(c.Type)
}

type RhythmPattern struct {
	Interval float64 `json:"interval" yaml:"interval"`
	Count    int     `json:"count" yaml:"count"`
}
