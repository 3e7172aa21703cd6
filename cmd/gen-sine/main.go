package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/cwbudde/wavstream"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz of the left channel, the right one is an octave up")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")
	chunkFrames := flagSet.Int("chunk", 4096, "frames per data chunk")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *chunkFrames < 1 {
		return fmt.Errorf("invalid chunk size %d", *chunkFrames)
	}

	log.Printf("generating a %f sec stereo sine wav at %f hz", *length, *frequency)

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}
	defer file.Close()

	wavOut := wavstream.NewEncoder(file, *sampleRate)
	numFrames := int(float64(*sampleRate) * *length)
	rate := float64(*sampleRate)

	chunk := make([]wavstream.Frame, 0, *chunkFrames)

	for i := 0; i < numFrames; i++ {
		t := float64(i) / rate
		chunk = append(chunk, wavstream.Frame{
			Left:  toPCM16(math.Sin(t * *frequency * 2 * math.Pi)),
			Right: toPCM16(math.Sin(t * *frequency * 4 * math.Pi)),
		})

		if len(chunk) == *chunkFrames {
			err := wavOut.WriteChunk(chunk)
			if err != nil {
				return err
			}

			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		err := wavOut.WriteChunk(chunk)
		if err != nil {
			return err
		}
	}

	return wavOut.Close()
}

// toPCM16 scales v in [-1, 1] to a 16-bit two's complement word.
func toPCM16(v float64) uint16 {
	v = math.Max(-1, math.Min(1, v))

	return uint16(int16(math.Round(v * 32767)))
}
