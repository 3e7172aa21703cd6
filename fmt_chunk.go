package wavstream

import (
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// FormatInfo stores the fields of the fmt section that survive validation.
// The format tag and channel count are fixed (PCM, stereo) and not kept.
type FormatInfo struct {
	SampleRate     uint32
	BytesPerSecond uint32
	BytesPerSample uint16
	BitsPerSample  uint16
}

// FrameDuration returns the playback time of one stereo frame.
func (f FormatInfo) FrameDuration() time.Duration {
	return sampleDuration(int(f.SampleRate))
}

// AudioFormat converts f to a go-audio format descriptor.
func (f FormatInfo) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: stereoChannels,
		SampleRate:  int(f.SampleRate),
	}
}

func (f FormatInfo) String() string {
	return fmt.Sprintf("%d Hz, %d bytes/s, %d bytes/sample, %d bits/sample",
		f.SampleRate, f.BytesPerSecond, f.BytesPerSample, f.BitsPerSample)
}
