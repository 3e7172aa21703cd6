// This tool converts a stereo wav file into an AIFF file and stores it in
// the same folder as the source.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wavstream"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

var (
	errMissingPath = errors.New("you must set the -path flag")
	errBadFrames   = errors.New("-frames must be positive")
)

func main() {
	outPath, err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wav file converted to %s\n", outPath)
}

func run(args []string) (string, error) {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	path := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	frames := flagSet.Int("frames", 4096, "frames converted per write")

	err := flagSet.Parse(args)
	if err != nil {
		return "", err
	}

	if *path == "" {
		return "", errMissingPath
	}

	if *frames < 1 {
		return "", errBadFrames
	}

	sourcePath, err := expandHome(*path)
	if err != nil {
		return "", err
	}

	decoder, err := wavstream.Open(sourcePath)
	if err != nil {
		return "", err
	}
	defer decoder.Close()

	outPath := sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"

	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	format := decoder.AudioFormat()
	encoder := aiff.NewEncoder(outFile, format.SampleRate, 16, format.NumChannels)

	buf := &audio.IntBuffer{Data: make([]int, *frames*format.NumChannels), Format: format}

	for {
		num, err := decoder.PCMBuffer(buf)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return "", err
		}

		chunk := &audio.IntBuffer{Data: buf.Data[:num], Format: format, SourceBitDepth: 16}

		err = encoder.Write(chunk)
		if err != nil {
			return "", fmt.Errorf("failed to write aiff samples: %w", err)
		}
	}

	err = encoder.Close()
	if err != nil {
		return "", fmt.Errorf("failed to finish %s: %w", outPath, err)
	}

	return outPath, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}
