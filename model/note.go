package model

// NoProgram marks a note whose (track, channel) never saw a program change.
const NoProgram = -1

type NoteEvent struct {
	Pitch     uint8   `json:"note" yaml:"note"`
	Velocity  uint8   `json:"velocity" yaml:"velocity"`
	Start     float64 `json:"start" yaml:"start"`
	End       float64 `json:"end" yaml:"end"`
	Channel   uint8   `json:"channel" yaml:"channel"`
	Track     int     `json:"track" yaml:"track"`
	TrackName string  `json:"track_name,omitempty" yaml:"track_name,omitempty"`
	Program   int     `json:"program" yaml:"program"`
}

func (n NoteEvent) Duration() float64 {
	if n.End < n.Start {
		return 0
	}
	return n.End - n.Start
}

func (n NoteEvent) PitchClass() int {
	return int(n.Pitch) % 12
}

// TempoBreakpoint starts a tempo segment that lasts until the next breakpoint.
type TempoBreakpoint struct {
	Tick             int64 `json:"tick" yaml:"tick"`
	MicrosPerQuarter int64 `json:"micros_per_quarter" yaml:"micros_per_quarter"`
}

type TrackInfo struct {
	Index     int    `json:"track_id" yaml:"track_id"`
	Name      string `json:"track_name,omitempty" yaml:"track_name,omitempty"`
	Programs  []int  `json:"programs" yaml:"programs"`
	NoteCount int    `json:"note_count" yaml:"note_count"`
}

// RoledNote is a note tagged with the role its track was mapped to.
type RoledNote struct {
	NoteEvent `yaml:",inline"`
	Role      string `json:"role" yaml:"role"`
}
