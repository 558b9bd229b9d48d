package midi

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const headerChunkID = "MThd"

// Header is the content of the MThd chunk.
type Header struct {
	Format     uint16
	TrackCount uint16
	Division   uint16
}

// TicksPerQuarter returns 0 when the division is SMPTE based.
func (h Header) TicksPerQuarter() uint16 {
	if h.Division&0x8000 != 0 {
		return 0
	}
	return h.Division
}

// SMPTE returns frames per second and ticks per frame, or 0, 0 for metrical
// divisions.
func (h Header) SMPTE() (uint8, uint8) {
	if h.Division&0x8000 == 0 {
		return 0, 0
	}
	// the high byte is a negative two's complement frame rate
	fps := uint8(-int8(h.Division >> 8))
	return fps, uint8(h.Division & 0xff)
}

func (h Header) String() string {
	if tpq := h.TicksPerQuarter(); tpq != 0 {
		return fmt.Sprintf("format %d, %d track(s), %d ticks per quarter note", h.Format, h.TrackCount, tpq)
	}
	fps, tpf := h.SMPTE()
	return fmt.Sprintf("format %d, %d track(s), %d fps / %d ticks per frame", h.Format, h.TrackCount, fps, tpf)
}

// readHeader validates the MThd chunk and returns the offset of the first
// chunk after it.
func readHeader(data []byte) (Header, int, error) {
	var h Header
	if len(data) < 14 {
		return h, 0, errors.Wrapf(ErrMalformedContainer, "%d bytes is too short for a header chunk", len(data))
	}
	if string(data[:4]) != headerChunkID {
		return h, 0, errors.Wrapf(ErrMalformedContainer, "expected %q, found %q", headerChunkID, data[:4])
	}
	length := uint64(binary.BigEndian.Uint32(data[4:8]))
	if length < 6 {
		return h, 0, errors.Wrapf(ErrMalformedContainer, "header length %d is shorter than 6", length)
	}
	if uint64(len(data)) < 8+length {
		return h, 0, errors.Wrapf(ErrMalformedContainer, "header declares %d bytes, file has %d", length, len(data)-8)
	}

	h.Format = binary.BigEndian.Uint16(data[8:10])
	h.TrackCount = binary.BigEndian.Uint16(data[10:12])
	h.Division = binary.BigEndian.Uint16(data[12:14])

	if h.Format > 2 {
		return h, 0, errors.Wrapf(ErrMalformedContainer, "unknown format %d", h.Format)
	}
	if h.TicksPerQuarter() == 0 {
		if fps, tpf := h.SMPTE(); fps == 0 || tpf == 0 {
			return h, 0, errors.Wrapf(ErrMalformedContainer, "invalid division 0x%04X", h.Division)
		}
	}
	return h, 8 + int(length), nil
}
