package wavstream

import "log"

// Mode selects between decoding a real source and the synthetic test mode.
type Mode int

const (
	// ModeReal decodes the headers and data chunks of the source.
	ModeReal Mode = iota
	// ModeSynthetic skips all header and chunk handling; NextSample reports
	// io.EOF on every call so playback loops can run without a file.
	ModeSynthetic
)

func (m Mode) String() string {
	switch m {
	case ModeReal:
		return "real"
	case ModeSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMode sets the decoding mode. The default is ModeReal.
func WithMode(m Mode) Option {
	return func(d *Decoder) {
		d.mode = m
	}
}

// WithLogger sets the destination of trace lines. When verbose output is on
// and no logger is set, log.Default() is used.
func WithLogger(l *log.Logger) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// WithVerbose turns trace lines (header fields, chunk loads and boundaries)
// on or off.
func WithVerbose(v bool) Option {
	return func(d *Decoder) {
		d.verbose = v
	}
}

func (d *Decoder) tracef(format string, args ...any) {
	if !d.verbose {
		return
	}

	l := d.logger
	if l == nil {
		l = log.Default()
	}

	l.Printf(format, args...)
}
