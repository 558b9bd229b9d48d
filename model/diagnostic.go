package model

import (
	"fmt"

	"github.com/pkg/errors"
)

type DiagnosticKind int

const (
	MalformedContainer DiagnosticKind = iota
	MalformedTrackData
	MalformedTempoData
	DanglingOnset
	EmptyInput
)

func (k DiagnosticKind) String() string {
	switch k {
	case MalformedContainer:
		return "MalformedContainer"
	case MalformedTrackData:
		return "MalformedTrackData"
	case MalformedTempoData:
		return "MalformedTempoData"
	case DanglingOnset:
		return "DanglingOnset"
	case EmptyInput:
		return "EmptyInput"
	default:
		return "Unknown"
	}
}

func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DiagnosticKind) UnmarshalText(text []byte) error {
	for c := MalformedContainer; c <= EmptyInput; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return errors.Errorf("unknown diagnostic kind %q", text)
}

// Diagnostic records a condition that was recovered from locally. Track is -1
// when the condition is not tied to a single track.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Track   int            `json:"track" yaml:"track"`
	Tick    int64          `json:"tick" yaml:"tick"`
	Message string         `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Track < 0 {
		return fmt.Sprintf("%v: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%v (track %d, tick %d): %s", d.Kind, d.Track, d.Tick, d.Message)
}
