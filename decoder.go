package wavstream

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
)

var errNilSource = errors.New("nil source")

// Frame is one stereo sample pair. Values are the raw 16-bit words of the
// file; no sign interpretation is applied.
type Frame struct {
	Left  uint16
	Right uint16
}

// Decoder streams the frames of a PCM stereo WAV source. A Decoder must be
// used by one goroutine at a time.
type Decoder struct {
	src  io.ReadCloser
	name string
	mode Mode

	// PackageLength is the length declared in the RIFF header. It is kept
	// for diagnostics and never used to bound reads.
	PackageLength uint32
	// Format holds the validated fmt section.
	Format FormatInfo

	chunk    []byte
	chunkLen int
	chunkPos int
	chunks   int

	// err is io.EOF or the first decode error; both are terminal.
	err    error
	closed bool

	logger  *log.Logger
	verbose bool
}

// Open opens the file at path and validates its headers. In ModeSynthetic
// the path is not opened.
func Open(path string, opts ...Option) (*Decoder, error) {
	d := newDecoder(opts)
	d.name = path

	if d.mode == ModeSynthetic {
		d.tracef("synthetic mode, not opening %s", path)
		return d, nil
	}

	d.tracef("opening wav %s", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	err = d.attach(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// NewDecoder validates the headers of rc and returns a Decoder positioned
// at the first data sub-chunk. The Decoder takes ownership of rc; it is
// closed on failure and by Close.
func NewDecoder(rc io.ReadCloser, opts ...Option) (*Decoder, error) {
	d := newDecoder(opts)
	d.name = "stream"

	if rc == nil && d.mode != ModeSynthetic {
		return nil, errNilSource
	}

	err := d.attach(rc)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func newDecoder(opts []Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Decoder) attach(rc io.ReadCloser) error {
	d.src = rc
	if d.mode == ModeSynthetic {
		return nil
	}

	err := d.readHeaders()
	if err != nil {
		d.Close()
		return err
	}

	return nil
}

func (d *Decoder) readHeaders() error {
	size, err := readRIFF(d.src)
	if err != nil {
		return err
	}

	d.PackageLength = size
	d.tracef("riff package length: %d", size)

	f, err := readFormat(d.src)
	if err != nil {
		return err
	}

	d.Format = f
	d.tracef("sample rate: %d", f.SampleRate)
	d.tracef("bytes per second: %d", f.BytesPerSecond)
	d.tracef("bytes per sample: %d", f.BytesPerSample)
	d.tracef("bits per sample: %d", f.BitsPerSample)

	return nil
}

// Mode returns the mode the decoder was opened with.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Chunks returns the number of data sub-chunks loaded so far.
func (d *Decoder) Chunks() int {
	if d == nil {
		return 0
	}

	return d.chunks
}

// AudioFormat returns the audio format of the decoded content.
func (d *Decoder) AudioFormat() *audio.Format {
	if d == nil {
		return nil
	}

	return d.Format.AudioFormat()
}

// Err returns the first non-EOF error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if d == nil || errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// PCMBuffer fills buf with interleaved samples taken from successive frames,
// read as signed 16-bit values. It stops at the end of the stream and
// returns io.EOF only when no sample was written.
func (d *Decoder) PCMBuffer(buf *audio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	buf.Format = d.AudioFormat()
	buf.SourceBitDepth = 16

	n := 0
	for n+stereoChannels <= len(buf.Data) {
		fr, err := d.NextSample()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return n, err
		}

		buf.Data[n] = int(int16(fr.Left))
		buf.Data[n+1] = int(int16(fr.Right))
		n += stereoChannels
	}

	if n == 0 && len(buf.Data) >= stereoChannels {
		return 0, io.EOF
	}

	return n, nil
}

// Close releases the chunk buffer and the source. It is safe to call more
// than once and always returns nil.
func (d *Decoder) Close() error {
	if d == nil || d.closed {
		return nil
	}

	d.closed = true
	d.release()

	if d.src != nil {
		err := d.src.Close()
		if err != nil {
			d.tracef("closing %s: %v", d.name, err)
		}

		d.src = nil
	}

	return nil
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	if d.mode == ModeSynthetic {
		return fmt.Sprintf("%s (synthetic)", d.name)
	}

	return fmt.Sprintf("%s: %s, package length %d, %d chunks read", d.name, d.Format, d.PackageLength, d.chunks)
}
