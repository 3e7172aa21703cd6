// Package wavstream decodes canonical PCM stereo WAV files into a
// restartable sequence of 16-bit frames.
//
// The decoder validates the RIFF/WAVE envelope and the fmt section once, at
// open time, then streams one data sub-chunk at a time. NextSample returns
// one Frame per call and io.EOF once the source holds no further data
// chunks; looping is done by closing the Decoder and opening a fresh one.
//
// The expected layout is the canonical 44-byte header:
//
//	RIFF <len> WAVE
//	fmt  <16> <tag=1> <channels=2> <rate> <bytes/sec> <bytes/sample> <bits>
//	data <n> <payload> [data <n> <payload> ...]
//
// Encoder produces files in that exact layout, optionally split over several
// data sub-chunks.
package wavstream
