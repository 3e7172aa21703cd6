package wavstream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	errNilEncoder      = errors.New("can't write a nil encoder")
	errNilWriter       = errors.New("can't write to a nil writer")
	errNilBuffer       = errors.New("can't add a nil buffer")
	errOddSampleCount  = errors.New("interleaved stereo buffer has an odd sample count")
	errEncoderFinished = errors.New("encoder already closed")
)

// Encoder writes canonical 16-bit PCM stereo files: the 12-byte RIFF
// envelope, a 16-byte fmt chunk and one data sub-chunk per WriteChunk call.
type Encoder struct {
	w io.WriteSeeker

	// Format is written to the fmt chunk as is.
	Format FormatInfo

	WrittenBytes int
	Chunks       int

	wroteHeader bool
	closed      bool
}

// NewEncoder creates an encoder for 16-bit stereo at the given sample rate.
func NewEncoder(w io.WriteSeeker, sampleRate int) *Encoder {
	return &Encoder{
		w: w,
		Format: FormatInfo{
			SampleRate:     uint32(sampleRate),
			BytesPerSecond: uint32(sampleRate * frameSize),
			BytesPerSample: frameSize,
			BitsPerSample:  16,
		},
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if e.wroteHeader {
		return nil
	}

	if e.w == nil {
		return errNilWriter
	}

	e.wroteHeader = true

	// the package length is patched on Close
	fields := []struct {
		be  bool
		val any
	}{
		{true, riff.RiffID},
		{false, uint32(0)},
		{true, riff.WavFormatID},
		{true, riff.FmtID},
		{false, uint32(16)},
		{false, uint16(wavFormatPCM)},
		{false, uint16(stereoChannels)},
		{false, e.Format.SampleRate},
		{false, e.Format.BytesPerSecond},
		{false, e.Format.BytesPerSample},
		{false, e.Format.BitsPerSample},
	}

	for _, f := range fields {
		var err error
		if f.be {
			err = e.AddBE(f.val)
		} else {
			err = e.AddLE(f.val)
		}

		if err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	return nil
}

// WriteChunk writes frames as one data sub-chunk. An empty slice produces a
// zero-length chunk.
func (e *Encoder) WriteChunk(frames []Frame) error {
	if e == nil {
		return errNilEncoder
	}

	if e.closed {
		return errEncoderFinished
	}

	err := e.writeHeader()
	if err != nil {
		return err
	}

	payload := bytes.NewBuffer(make([]byte, 0, chunkHdrSize+len(frames)*frameSize))
	payload.Write(riff.DataFormatID[:])

	err = binary.Write(payload, binary.LittleEndian, uint32(len(frames)*frameSize))
	if err != nil {
		return fmt.Errorf("failed to write chunk length: %w", err)
	}

	err = binary.Write(payload, binary.LittleEndian, frames)
	if err != nil {
		return fmt.Errorf("failed to write frames: %w", err)
	}

	n, err := e.w.Write(payload.Bytes())
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write data chunk: %w", err)
	}

	e.Chunks++

	return nil
}

// Write writes an interleaved stereo buffer as one data sub-chunk. Values
// are truncated to their low 16 bits.
func (e *Encoder) Write(buf *audio.IntBuffer) error {
	if buf == nil {
		return errNilBuffer
	}

	if len(buf.Data)%stereoChannels != 0 {
		return fmt.Errorf("%w: %d", errOddSampleCount, len(buf.Data))
	}

	frames := make([]Frame, len(buf.Data)/stereoChannels)
	for i := range frames {
		frames[i] = Frame{
			Left:  uint16(buf.Data[2*i]),
			Right: uint16(buf.Data[2*i+1]),
		}
	}

	return e.WriteChunk(frames)
}

// Close writes the header if nothing was written yet and patches the RIFF
// package length. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e == nil {
		return errNilEncoder
	}

	if e.closed {
		return nil
	}

	err := e.writeHeader()
	if err != nil {
		return err
	}

	e.closed = true

	_, err = e.w.Seek(4, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to the package length: %w", err)
	}

	err = binary.Write(e.w, binary.LittleEndian, uint32(e.WrittenBytes-8))
	if err != nil {
		return fmt.Errorf("failed to write package length: %w", err)
	}

	_, err = e.w.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to the end: %w", err)
	}

	return nil
}
