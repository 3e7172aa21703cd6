// Package tty writes sample text to serial output devices.
package tty

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

var errShortWrite = errors.New("short write")

// Options control how a port is opened and written.
type Options struct {
	// Raw asserts raw mode, 8 data bits, no parity, 2 stop bits at 9600
	// baud. It is skipped with a warning when the path is not a terminal.
	Raw bool
	// Delay is the pause after every byte. Zero writes the whole buffer at
	// once.
	Delay time.Duration
	// Echo receives a copy of every write, prefixed with the port name.
	Echo io.Writer
	// Logger receives warnings and open notices. Nil disables them.
	Logger *log.Logger
}

// Port is an opened output device.
type Port struct {
	f    *os.File
	name string
	opts Options

	sleep func(time.Duration)
}

// Open opens the device at path for writing.
func Open(path string, opts Options) (*Port, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	p := &Port{f: f, name: path, opts: opts, sleep: time.Sleep}
	p.logf("opened tty %s as %d", path, f.Fd())

	if opts.Raw {
		if !isatty.IsTerminal(f.Fd()) {
			p.logf("%s is not a terminal, leaving line settings alone", path)
			return p, nil
		}

		p.logf("asserting stty settings on %s", path)

		err = makeRaw(f.Fd())
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set line discipline on %s: %w", path, err)
		}
	}

	return p, nil
}

// Name returns the path the port was opened with.
func (p *Port) Name() string {
	return p.name
}

// Write sends b to the device, one byte at a time when a delay is set.
func (p *Port) Write(b []byte) (int, error) {
	var (
		n   int
		err error
	)

	if p.opts.Delay > 0 {
		n, err = p.writeSlow(b)
	} else {
		n, err = p.f.Write(b)
		if err == nil && n != len(b) {
			err = errShortWrite
		}
	}

	if err != nil {
		return n, fmt.Errorf("write failed %s: %w", p.name, err)
	}

	if p.opts.Echo != nil {
		fmt.Fprintf(p.opts.Echo, "%s: %s\n", p.name, b)
	}

	return n, nil
}

func (p *Port) writeSlow(b []byte) (int, error) {
	for i := range b {
		n, err := p.f.Write(b[i : i+1])
		if err != nil {
			return i, err
		}

		if n != 1 {
			return i, errShortWrite
		}

		p.sleep(p.opts.Delay)
	}

	return len(b), nil
}

// Close closes the device.
func (p *Port) Close() error {
	return p.f.Close()
}

func (p *Port) logf(format string, args ...any) {
	if p.opts.Logger != nil {
		p.opts.Logger.Printf(format, args...)
	}
}
