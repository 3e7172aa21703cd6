// This tool cycles through a stereo WAV file and writes each sample pair, as
// two 8-digit numbers, to a pair of serial ports.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/wavstream"
	"github.com/cwbudde/wavstream/internal/cli"
	"github.com/cwbudde/wavstream/internal/config"
	"github.com/cwbudde/wavstream/internal/player"
	"github.com/cwbudde/wavstream/internal/tty"
)

// version is set via ldflags at build time
var version = "dev"

var errUsage = errors.New("usage")

type options struct {
	File      string          `short:"f" help:"WAV file to decode." default:"in.wav"`
	LeftTTY   string          `name:"left-tty" short:"l" help:"Output for the left channel." default:"/dev/ttys000"`
	RightTTY  string          `name:"right-tty" short:"r" help:"Output for the right channel." default:"/dev/ttys001"`
	Interval  time.Duration   `short:"i" help:"Pause between sample pairs." default:"1s"`
	Delay     time.Duration   `short:"d" help:"Pause between characters written to a port." default:"10ms"`
	Test      bool            `short:"t" help:"Test mode: ignore the file and cycle through the countdown."`
	Silent    bool            `short:"s" help:"Silent mode."`
	NoStty    bool            `name:"no-stty" short:"n" help:"Don't assert stty settings."`
	Loops     int             `help:"Stop after this many passes, 0 loops forever." default:"0"`
	Countdown int             `help:"Countdown ticks before each pass." default:"10"`
	Config    kong.ConfigFlag `help:"Load defaults from a YAML file."`
	Version   bool            `help:"Show version information."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Exit)

	stop()

	if err == nil {
		return
	}

	cli.PrintError(os.Stderr, err.Error())

	if errors.Is(err, errUsage) {
		os.Exit(1)
	}

	os.Exit(2)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) error {
	var opts options

	parser, err := kong.New(&opts,
		kong.Name("playwav"),
		kong.Description("Cycle through a WAV file, writing each stereo sample to a pair of serial ports."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.Configuration(config.Loader, "/etc/playwav.yaml", "~/.config/playwav.yaml"),
	)
	if err != nil {
		return err
	}

	_, err = parser.Parse(args)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if opts.Version {
		cli.PrintVersion(stdout, "playwav", version)
		return nil
	}

	verbose := !opts.Silent

	var logger *log.Logger
	if verbose {
		logger = log.New(stderr, "", log.LstdFlags)
		cli.PrintInfo(stderr, "interval", opts.Interval.String())
	}

	mode := wavstream.ModeReal
	if opts.Test {
		mode = wavstream.ModeSynthetic
	}

	decOpts := []wavstream.Option{
		wavstream.WithMode(mode),
		wavstream.WithLogger(logger),
		wavstream.WithVerbose(verbose),
	}

	// the first decoder is opened up front so a bad file fails before the
	// ports are touched
	first, err := wavstream.Open(opts.File, decOpts...)
	if err != nil {
		return err
	}

	open := func() (*wavstream.Decoder, error) {
		if first != nil {
			dec := first
			first = nil

			return dec, nil
		}

		return wavstream.Open(opts.File, decOpts...)
	}

	portOpts := tty.Options{
		Raw:    !opts.NoStty,
		Delay:  opts.Delay,
		Logger: logger,
	}
	if verbose {
		portOpts.Echo = stderr
	}

	left, err := tty.Open(opts.LeftTTY, portOpts)
	if err != nil {
		first.Close()
		return err
	}
	defer left.Close()

	right, err := tty.Open(opts.RightTTY, portOpts)
	if err != nil {
		first.Close()
		return err
	}
	defer right.Close()

	p := player.New(open, left, right, player.Config{
		Interval:  opts.Interval,
		Countdown: opts.Countdown,
		Loops:     opts.Loops,
	}, logger)

	err = p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if verbose {
		stats := p.Stats()
		cli.PrintInfo(stderr, "frames", fmt.Sprint(stats.Frames))
		cli.PrintInfo(stderr, "passes", fmt.Sprint(stats.Passes))
	}

	return err
}
