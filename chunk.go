package wavstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// NextSample returns the next stereo frame. It loads the next data sub-chunk
// whenever the current one is exhausted and returns io.EOF once the source
// has no more bytes at a sub-chunk boundary. io.EOF and decode errors are
// terminal: later calls return them again without reading.
func (d *Decoder) NextSample() (Frame, error) {
	if d.closed {
		return Frame{}, ErrClosed
	}

	if d.mode == ModeSynthetic {
		return Frame{}, io.EOF
	}

	if d.err != nil {
		return Frame{}, d.err
	}

	// zero-length chunks carry no frames
	for d.chunkPos >= d.chunkLen {
		err := d.loadNextChunk()
		if err != nil {
			d.release()
			d.err = err

			if errors.Is(err, io.EOF) {
				d.tracef("end of stream after %d chunks", d.chunks)
			}

			return Frame{}, err
		}
	}

	fr := Frame{
		Left:  uint16(decodeLE(d.chunk, d.chunkPos, 2)),
		Right: uint16(decodeLE(d.chunk, d.chunkPos+2, 2)),
	}

	d.chunkPos += frameSize
	if d.chunkPos >= d.chunkLen {
		d.tracef("end of chunk %d", d.chunks)
		d.release()
	}

	return fr, nil
}

// loadNextChunk replaces the resident buffer with the payload of the next
// data sub-chunk.
func (d *Decoder) loadNextChunk() error {
	var hdr [chunkHdrSize]byte

	n, err := io.ReadFull(d.src, hdr[:])
	if n == 0 && errors.Is(err, io.EOF) {
		return io.EOF
	}

	if err != nil {
		return fmt.Errorf("%w: sub-chunk header, got %d of %d bytes: %w", ErrTruncatedChunk, n, chunkHdrSize, err)
	}

	id := [4]byte(hdr[0:4])
	if id != riff.DataFormatID {
		return fmt.Errorf("%w: unexpected sub-chunk %q", ErrMalformedChunk, id[:])
	}

	size := decodeLE(hdr[:], 4, 4)
	if size%frameSize != 0 {
		return fmt.Errorf("%w: length %d is not a whole number of %d-byte frames", ErrMalformedChunk, size, frameSize)
	}

	chnk := &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(d.src, int64(size)),
	}

	// the buffer grows with the bytes actually read, so a bogus length
	// cannot force a large allocation
	var buf bytes.Buffer

	_, err = buf.ReadFrom(chnk)
	if err != nil {
		return fmt.Errorf("%w: payload: %w", ErrTruncatedChunk, err)
	}

	if !chnk.IsFullyRead() {
		return fmt.Errorf("%w: payload has %d of %d bytes", ErrTruncatedChunk, chnk.Pos, size)
	}

	d.chunk = buf.Bytes()
	d.chunkLen = int(size)
	d.chunkPos = 0
	d.chunks++
	d.tracef("chunk %d: %d bytes", d.chunks, size)

	return nil
}

func (d *Decoder) release() {
	d.chunk = nil
	d.chunkLen = 0
	d.chunkPos = 0
}
