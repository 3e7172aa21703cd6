package wavstream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// readRIFF consumes the 12-byte RIFF/WAVE envelope and returns the declared
// package length. The length is not checked against the source size.
func readRIFF(r io.Reader) (uint32, error) {
	var hdr [riffHeaderSize]byte

	_, err := io.ReadFull(r, hdr[:])
	if err != nil {
		return 0, fmt.Errorf("%w: riff header: %w", ErrMalformedHeader, err)
	}

	if !bytes.Equal(hdr[0:4], riff.RiffID[:]) {
		return 0, fmt.Errorf("%w: %q is not a RIFF id", ErrMalformedHeader, hdr[0:4])
	}

	if !bytes.Equal(hdr[8:12], riff.WavFormatID[:]) {
		return 0, fmt.Errorf("%w: %q is not a WAVE form", ErrMalformedHeader, hdr[8:12])
	}

	return decodeLE(hdr[:], 4, 4), nil
}

// readFormat consumes the 24-byte fmt section. The section length at
// bytes 4-7 is skipped; only the canonical 16-byte body is supported.
func readFormat(r io.Reader) (FormatInfo, error) {
	var sec [fmtSectionSize]byte

	_, err := io.ReadFull(r, sec[:])
	if err != nil {
		return FormatInfo{}, fmt.Errorf("%w: fmt section: %w", ErrMalformedHeader, err)
	}

	if !bytes.Equal(sec[0:4], riff.FmtID[:]) {
		return FormatInfo{}, fmt.Errorf("%w: %q is not a fmt chunk", ErrMalformedHeader, sec[0:4])
	}

	if tag := decodeLE(sec[:], 8, 2); tag != wavFormatPCM {
		return FormatInfo{}, fmt.Errorf("%w: format tag %d, want %d (PCM)", ErrUnsupportedFormat, tag, wavFormatPCM)
	}

	if chans := decodeLE(sec[:], 10, 2); chans != stereoChannels {
		return FormatInfo{}, fmt.Errorf("%w: %d channels, want %d", ErrUnsupportedFormat, chans, stereoChannels)
	}

	return FormatInfo{
		SampleRate:     decodeLE(sec[:], 12, 4),
		BytesPerSecond: decodeLE(sec[:], 16, 4),
		BytesPerSample: uint16(decodeLE(sec[:], 20, 2)),
		BitsPerSample:  uint16(decodeLE(sec[:], 22, 2)),
	}, nil
}
