package midi

import (
	"encoding/binary"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/tempo"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
)

const trackChunkID = "MTrk"

type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
	ProgramChange
	TrackName
	Tempo
	EndOfTrack
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case ProgramChange:
		return "ProgramChange"
	case TrackName:
		return "TrackName"
	case Tempo:
		return "Tempo"
	case EndOfTrack:
		return "EndOfTrack"
	default:
		return "Unknown"
	}
}

// Event is a decoded track event of one of the kinds the analysis cares about.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Tick    int64
	Seconds float64

	Channel  uint8
	Key      uint8
	Velocity uint8
	Program  uint8

	Text             string
	MicrosPerQuarter int64
}

type Track struct {
	Index  int
	Events []Event
	// Truncated is set when decoding stopped before the end of the chunk.
	Truncated bool
}

type File struct {
	Header Header
	Tracks []Track
	Tempo  tempo.Map
	// Duration is the time of the latest event in any track.
	Duration float64
}

var (
	errTruncated = errors.New("stream ends mid-event")
	errNoStatus  = errors.New("data byte without a running status")
	errVarLen    = errors.New("variable-length quantity longer than 4 bytes")
)

// Decode parses a complete Standard MIDI File. Only a bad header is fatal;
// damaged tracks are cut at their last complete event and reported.
func Decode(data []byte) (*File, []model.Diagnostic, error) {
	h, pos, err := readHeader(data)
	if err != nil {
		return nil, nil, err
	}

	f := &File{Header: h}
	var diags []model.Diagnostic
	var markers []tempo.Marker

	for pos < len(data) {
		index := len(f.Tracks)
		if len(data)-pos < 8 {
			diags = append(diags, trackDiagnostic(index, 0, "%d trailing bytes are too short for a chunk header", len(data)-pos))
			break
		}
		id := string(data[pos : pos+4])
		length := uint64(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8

		body := data[pos:]
		if length > uint64(len(body)) {
			diags = append(diags, trackDiagnostic(index, 0, "chunk declares %d bytes but only %d remain", length, len(body)))
		} else {
			body = body[:length]
		}
		pos += len(body)

		// unknown chunk types are allowed by the container and carry nothing for us
		if id != trackChunkID {
			continue
		}

		track, trackDiags := decodeTrack(index, body)
		diags = append(diags, trackDiags...)
		for _, ev := range track.Events {
			if ev.Kind == Tempo {
				markers = append(markers, tempo.Marker{Tick: ev.Tick, MicrosPerQuarter: ev.MicrosPerQuarter, Track: index})
			}
		}
		f.Tracks = append(f.Tracks, track)
	}

	if len(f.Tracks) < int(h.TrackCount) {
		diags = append(diags, trackDiagnostic(-1, 0, "header declares %d tracks, found %d", h.TrackCount, len(f.Tracks)))
	}

	tempoMap, tempoDiags := tempo.BuildMap(markers)
	diags = append(diags, tempoDiags...)
	f.Tempo = tempoMap

	conv := converterFor(h, tempoMap)
	for ti := range f.Tracks {
		events := f.Tracks[ti].Events
		for ei := range events {
			events[ei].Seconds = conv.Seconds(events[ei].Tick)
			if events[ei].Seconds > f.Duration {
				f.Duration = events[ei].Seconds
			}
		}
	}
	return f, diags, nil
}

func converterFor(h Header, m tempo.Map) *tempo.Converter {
	if tpq := h.TicksPerQuarter(); tpq != 0 {
		return tempo.NewConverter(m, tpq)
	}
	fps, tpf := h.SMPTE()
	return tempo.NewSMPTEConverter(fps, tpf)
}

func decodeTrack(index int, body []byte) (Track, []model.Diagnostic) {
	track := Track{Index: index}
	s := &decoderState{data: body}
	for s.pos < len(s.data) {
		start := s.pos
		ev, ok, err := s.next()
		if err != nil {
			track.Truncated = true
			return track, []model.Diagnostic{
				trackDiagnostic(index, s.tick, "track cut at byte %d: %v", start, err),
			}
		}
		if !ok {
			continue
		}
		track.Events = append(track.Events, ev)
		if ev.Kind == EndOfTrack {
			if rest := len(s.data) - s.pos; rest > 0 {
				return track, []model.Diagnostic{
					trackDiagnostic(index, s.tick, "%d bytes after end of track", rest),
				}
			}
			break
		}
	}
	return track, nil
}

// decoderState walks one track chunk. running holds the running status. Meta
// and sysex events cancel it, as the SMF format requires, so a data byte right
// after one of them cuts the track.
type decoderState struct {
	data    []byte
	pos     int
	tick    int64
	running byte
}

func (s *decoderState) readByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, errTruncated
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *decoderState) take(n int) ([]byte, error) {
	if n < 0 || len(s.data)-s.pos < n {
		return nil, errTruncated
	}
	b := s.data[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}

func (s *decoderState) readVarLen() (uint32, error) {
	var value uint32
	for i := 0; i < 4; i++ {
		b, err := s.readByte()
		if err != nil {
			return 0, err
		}
		value = value<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, errVarLen
}

// next decodes one delta-time and event pair. ok is false for events that are
// valid but not of interest.
func (s *decoderState) next() (ev Event, ok bool, err error) {
	delta, err := s.readVarLen()
	if err != nil {
		return ev, false, err
	}
	s.tick += int64(delta)

	status, err := s.readByte()
	if err != nil {
		return ev, false, err
	}
	if status < 0x80 {
		if s.running == 0 {
			return ev, false, errNoStatus
		}
		status = s.running
		s.pos--
	}

	switch {
	case status < 0xF0:
		s.running = status
		return s.channelEvent(status)
	case status == 0xFF:
		s.running = 0
		return s.metaEvent()
	case status == 0xF0 || status == 0xF7:
		s.running = 0
		n, err := s.readVarLen()
		if err != nil {
			return ev, false, err
		}
		_, err = s.take(int(n))
		return ev, false, err
	default:
		return ev, false, errors.Errorf("unexpected status byte 0x%02X", status)
	}
}

func (s *decoderState) channelEvent(status byte) (Event, bool, error) {
	n := 2
	if kind := status & 0xF0; kind == 0xC0 || kind == 0xD0 {
		n = 1
	}
	data, err := s.take(n)
	if err != nil {
		return Event{}, false, err
	}
	for _, b := range data {
		if b >= 0x80 {
			return Event{}, false, errors.Errorf("data byte 0x%02X has the status bit set", b)
		}
	}

	msg := gomidi.Message(append([]byte{status}, data...))
	ev := Event{Tick: s.tick}
	switch {
	case msg.GetNoteStart(&ev.Channel, &ev.Key, &ev.Velocity):
		ev.Kind = NoteOn
	case msg.GetNoteEnd(&ev.Channel, &ev.Key):
		ev.Kind = NoteOff
	case msg.GetProgramChange(&ev.Channel, &ev.Program):
		ev.Kind = ProgramChange
	default:
		return Event{}, false, nil
	}
	return ev, true, nil
}

func (s *decoderState) metaEvent() (Event, bool, error) {
	typ, err := s.readByte()
	if err != nil {
		return Event{}, false, err
	}
	n, err := s.readVarLen()
	if err != nil {
		return Event{}, false, err
	}
	payload, err := s.take(int(n))
	if err != nil {
		return Event{}, false, err
	}

	ev := Event{Tick: s.tick}
	switch typ {
	case 0x03:
		ev.Kind = TrackName
		ev.Text = string(payload)
	case 0x51:
		if len(payload) != 3 {
			return Event{}, false, nil
		}
		ev.Kind = Tempo
		ev.MicrosPerQuarter = int64(payload[0])<<16 | int64(payload[1])<<8 | int64(payload[2])
	case 0x2F:
		ev.Kind = EndOfTrack
	default:
		return Event{}, false, nil
	}
	return ev, true, nil
}
