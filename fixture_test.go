package wavstream

import (
	"bytes"
	"encoding/binary"
)

func riffHeader(length uint32) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, length)
	buf.WriteString("WAVE")

	return buf.Bytes()
}

func fmtSection(tag, chans uint16, rate uint32) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, tag)
	binary.Write(buf, binary.LittleEndian, chans)
	binary.Write(buf, binary.LittleEndian, rate)
	binary.Write(buf, binary.LittleEndian, rate*4)
	binary.Write(buf, binary.LittleEndian, uint16(4))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	return buf.Bytes()
}

func dataChunk(payload []byte) []byte {
	return dataChunkWithLen(uint32(len(payload)), payload)
}

func dataChunkWithLen(declared uint32, payload []byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, declared)
	buf.Write(payload)

	return buf.Bytes()
}

func framesPayload(frames ...Frame) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, frames)

	return buf.Bytes()
}

// buildWAV assembles a stereo 44.1kHz file with one data chunk per entry.
func buildWAV(chunks ...[]Frame) []byte {
	var body []byte
	for _, frames := range chunks {
		body = append(body, dataChunk(framesPayload(frames...))...)
	}

	out := riffHeader(uint32(4 + 24 + len(body)))
	out = append(out, fmtSection(1, 2, 44100)...)

	return append(out, body...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}

	return out
}

// trackingSource counts Close calls on an in-memory source.
type trackingSource struct {
	*bytes.Reader
	closed int
	reads  int
}

func newTrackingSource(data []byte) *trackingSource {
	return &trackingSource{Reader: bytes.NewReader(data)}
}

func (s *trackingSource) Read(p []byte) (int, error) {
	s.reads++
	return s.Reader.Read(p)
}

func (s *trackingSource) Close() error {
	s.closed++
	return nil
}
