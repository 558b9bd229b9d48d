package midi

import (
	"fmt"
	"os"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/pkg/errors"
)

// ErrMalformedContainer is the only fatal decoding failure: the header chunk is
// missing or unusable, so nothing in the file can be trusted.
var ErrMalformedContainer = errors.New("malformed container")

// ReadMidiFile reads and decodes the file at path.
func ReadMidiFile(filepath string) (f *File, diags []model.Diagnostic, e error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Error reading midi file")
	}

	defer func() {
		if r := recover(); r != nil {
			f, diags = nil, nil
			e = errors.Wrapf(ErrMalformedContainer, "decoder panicked: %v", r)
		}
	}()

	f, diags, err = Decode(dat)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "Error parsing midi file %s", filepath)
	}
	return f, diags, nil
}

// ReadNotes is ReadMidiFile followed by AssembleNotes.
func ReadNotes(filepath string) ([]model.NoteEvent, []model.Diagnostic, error) {
	f, diags, err := ReadMidiFile(filepath)
	if err != nil {
		return nil, nil, err
	}
	notes, noteDiags := AssembleNotes(f)
	return notes, append(diags, noteDiags...), nil
}

func trackDiagnostic(track int, tick int64, format string, args ...any) model.Diagnostic {
	return model.Diagnostic{
		Kind:    model.MalformedTrackData,
		Track:   track,
		Tick:    tick,
		Message: fmt.Sprintf(format, args...),
	}
}
