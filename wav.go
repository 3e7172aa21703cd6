package wavstream

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrMalformedHeader is returned when the RIFF/WAVE envelope or the fmt
	// section is short or carries the wrong literal.
	ErrMalformedHeader = errors.New("malformed wav header")
	// ErrUnsupportedFormat is returned for anything but 2-channel linear PCM.
	ErrUnsupportedFormat = errors.New("unsupported wav format")
	// ErrTruncatedChunk is returned when a data sub-chunk header or payload
	// is shorter than declared.
	ErrTruncatedChunk = errors.New("truncated data chunk")
	// ErrMalformedChunk is returned when a sub-chunk is not a data chunk or
	// its length does not hold a whole number of stereo frames.
	ErrMalformedChunk = errors.New("malformed data chunk")
	// ErrClosed is returned by NextSample after Close.
	ErrClosed = errors.New("decoder closed")
)

const (
	riffHeaderSize = 12
	fmtSectionSize = 24
	chunkHdrSize   = 8
	frameSize      = 4

	wavFormatPCM   = 1
	stereoChannels = 2
)

// decodeLE decodes n (2 or 4) bytes of b starting at off as an unsigned
// little-endian integer.
func decodeLE(b []byte, off, n int) uint32 {
	var v uint32
	for i := off + n - 1; i >= off; i-- {
		v = v<<8 | uint32(b[i])
	}

	return v
}

func sampleDuration(sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Second / time.Duration(math.Abs(float64(sampleRate)))
}
