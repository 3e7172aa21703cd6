// Package player drives a decoder at a fixed pace and forwards every frame,
// as fixed-width decimal text, to a left and a right sink.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/wavstream"
)

// DefaultCountdown is the number of ramp-up ticks before each pass.
const DefaultCountdown = 10

// DefaultWidth is the number of digits written per sample.
const DefaultWidth = 8

// Opener returns a fresh decoder positioned at the start of the source.
type Opener func() (*wavstream.Decoder, error)

// Config controls pacing and looping.
type Config struct {
	// Interval is the pause after each sample pair.
	Interval time.Duration
	// Countdown is the number of digit ticks emitted before each pass.
	Countdown int
	// Loops stops the player after that many passes. Zero loops forever.
	Loops int
	// Width is the zero-padded width of each sample. Zero means DefaultWidth.
	Width int
}

// Stats reports the progress of a run.
type Stats struct {
	Frames int
	Passes int
	Ticks  int
}

// Player forwards samples from a decoder to two sinks.
type Player struct {
	open        Opener
	left, right io.Writer
	cfg         Config
	logger      *log.Logger

	stats Stats
	wait  func(context.Context, time.Duration) error
}

// New creates a player. logger may be nil.
func New(open Opener, left, right io.Writer, cfg Config, logger *log.Logger) *Player {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}

	if cfg.Countdown < 0 {
		cfg.Countdown = 0
	}

	return &Player{
		open:   open,
		left:   left,
		right:  right,
		cfg:    cfg,
		logger: logger,
		wait:   sleepCtx,
	}
}

// Stats returns the counters of the current or last run.
func (p *Player) Stats() Stats {
	return p.stats
}

// Run plays passes until the loop limit is reached, ctx is done or a
// decode or write error occurs. It returns ctx.Err() on cancellation.
func (p *Player) Run(ctx context.Context) error {
	dec, err := p.open()
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}

	defer func() {
		dec.Close()
	}()

	countdown := p.cfg.Countdown
	passStart := p.stats.Ticks

	for {
		err := ctx.Err()
		if err != nil {
			return err
		}

		var left, right string

		if countdown > 0 {
			countdown--
			left = strings.Repeat(strconv.Itoa(countdown%10), p.cfg.Width)
			right = left
		} else {
			fr, err := dec.NextSample()
			if errors.Is(err, io.EOF) {
				dec.Close()
				p.stats.Passes++
				p.logf("pass %d done: %s", p.stats.Passes, dec)

				if p.cfg.Loops > 0 && p.stats.Passes >= p.cfg.Loops {
					return nil
				}

				// an empty pass still takes one interval
				if p.stats.Ticks == passStart {
					err = p.wait(ctx, p.cfg.Interval)
					if err != nil {
						return err
					}
				}

				dec, err = p.open()
				if err != nil {
					return fmt.Errorf("failed to reopen source: %w", err)
				}

				countdown = p.cfg.Countdown
				passStart = p.stats.Ticks

				continue
			}

			if err != nil {
				return fmt.Errorf("failed to decode sample: %w", err)
			}

			p.stats.Frames++
			left = FormatSample(fr.Left, p.cfg.Width)
			right = FormatSample(fr.Right, p.cfg.Width)
		}

		err = p.emit(left, right)
		if err != nil {
			return err
		}

		p.stats.Ticks++

		err = p.wait(ctx, p.cfg.Interval)
		if err != nil {
			return err
		}
	}
}

func (p *Player) emit(left, right string) error {
	_, err := io.WriteString(p.left, left)
	if err != nil {
		return fmt.Errorf("left channel: %w", err)
	}

	_, err = io.WriteString(p.right, right)
	if err != nil {
		return fmt.Errorf("right channel: %w", err)
	}

	return nil
}

func (p *Player) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// FormatSample renders v as a zero-padded decimal of the given width.
func FormatSample(v uint16, width int) string {
	return fmt.Sprintf("%0*d", width, v)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
