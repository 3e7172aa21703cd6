package wavstream

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
)

func TestEncoderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	chunks := [][]Frame{
		{{100, 200}, {300, 400}},
		{{0, 0xFFFF}},
		{{0x1234, 0xABCD}, {5, 6}, {7, 8}},
	}

	enc := NewEncoder(out, 48000)
	for _, c := range chunks {
		if err := enc.WriteChunk(c); err != nil {
			t.Fatal(err)
		}
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	// 12 + 24 + 3 chunk headers + 6 frames
	if fi.Size() != 12+24+3*8+6*4 {
		t.Fatalf("file size=%d", fi.Size())
	}

	dec, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	if dec.PackageLength != uint32(fi.Size()-8) {
		t.Fatalf("PackageLength=%d, want %d", dec.PackageLength, fi.Size()-8)
	}

	want := FormatInfo{SampleRate: 48000, BytesPerSecond: 192000, BytesPerSample: 4, BitsPerSample: 16}
	if dec.Format != want {
		t.Fatalf("Format=%+v, want %+v", dec.Format, want)
	}

	got := readAllFrames(t, dec)

	var i int
	for _, c := range chunks {
		for _, fr := range c {
			if got[i] != fr {
				t.Fatalf("frame %d=%+v, want %+v", i, got[i], fr)
			}
			i++
		}
	}

	if i != len(got) {
		t.Fatalf("decoded %d frames, want %d", len(got), i)
	}

	if dec.Chunks() != len(chunks) {
		t.Fatalf("Chunks()=%d, want %d", dec.Chunks(), len(chunks))
	}
}

func TestEncoderMatchesCanonicalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.wav")

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := NewEncoder(out, 44100)
	if err := enc.WriteChunk([]Frame{{100, 200}, {300, 400}}); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := buildWAV([]Frame{{100, 200}, {300, 400}})
	if !bytes.Equal(got, want) {
		t.Fatalf("encoded bytes differ\n got: % x\nwant: % x", got, want)
	}
}

func TestEncoderWriteIntBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ints.wav")

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := NewEncoder(out, 8000)

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 2, SampleRate: 8000},
		Data:   []int{-1, 1, -32768, 32767},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}

	if err := enc.Write(&audio.IntBuffer{Data: []int{1, 2, 3}}); !errors.Is(err, errOddSampleCount) {
		t.Fatalf("expected errOddSampleCount, got %v", err)
	}

	if err := enc.Write(nil); !errors.Is(err, errNilBuffer) {
		t.Fatalf("expected errNilBuffer, got %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	dec, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	got := readAllFrames(t, dec)
	want := []Frame{{0xFFFF, 1}, {0x8000, 0x7FFF}}

	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("frames=%+v, want %+v", got, want)
	}
}

func TestEncoderCloseWithoutChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")

	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := NewEncoder(out, 44100)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("second Close()=%v, want nil", err)
	}

	if err := enc.WriteChunk(nil); !errors.Is(err, errEncoderFinished) {
		t.Fatalf("expected errEncoderFinished, got %v", err)
	}

	dec, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	if dec.PackageLength != 28 {
		t.Fatalf("PackageLength=%d, want 28", dec.PackageLength)
	}

	if got := readAllFrames(t, dec); len(got) != 0 {
		t.Fatalf("expected no frames, got %d", len(got))
	}
}

func TestEncoderNil(t *testing.T) {
	var enc *Encoder

	if err := enc.WriteChunk(nil); !errors.Is(err, errNilEncoder) {
		t.Fatalf("expected errNilEncoder, got %v", err)
	}

	if err := enc.Close(); !errors.Is(err, errNilEncoder) {
		t.Fatalf("expected errNilEncoder, got %v", err)
	}

	if err := NewEncoder(nil, 8000).WriteChunk(nil); !errors.Is(err, errNilWriter) {
		t.Fatalf("expected errNilWriter, got %v", err)
	}
}
