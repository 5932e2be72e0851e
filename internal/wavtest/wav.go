// Package wavtest is a minimal WAV reader/writer used only by tests and by
// cmd/gladia-stream to turn a .wav fixture into a raw PCM byte stream (and
// back). It is fixture plumbing, not a shipped capability of the SDK, so it
// stays a small hand-written codec rather than a full-featured audio library.
package wavtest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Format describes the PCM layout carried by a WAV file's fmt chunk.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// Encode builds a canonical 44-byte-header PCM WAV file from raw samples.
func Encode(format Format, pcm []byte) []byte {
	var buf bytes.Buffer

	byteRate := format.SampleRate * format.Channels * format.BitsPerSample / 8
	blockAlign := format.Channels * format.BitsPerSample / 8
	dataSize := len(pcm)
	fileSize := 36 + dataSize

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(format.BitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(pcm)

	return buf.Bytes()
}

// Decode parses a RIFF/WAVE file, walking chunks until it has found both
// "fmt " and "data" (unknown chunks, e.g. "LIST", are skipped by their
// declared size), and returns the format plus the raw PCM payload.
func Decode(data []byte) (Format, []byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Format{}, nil, fmt.Errorf("wavtest: not a RIFF/WAVE file")
	}

	var format Format
	var pcm []byte
	haveFmt, haveData := false, false

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		if body+size > len(data) {
			break
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Format{}, nil, fmt.Errorf("wavtest: fmt chunk too small")
			}
			chunk := data[body : body+size]
			format = Format{
				Channels:      int(binary.LittleEndian.Uint16(chunk[2:4])),
				SampleRate:    int(binary.LittleEndian.Uint32(chunk[4:8])),
				BitsPerSample: int(binary.LittleEndian.Uint16(chunk[14:16])),
			}
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
			haveData = true
		}

		offset = body + size
		if size%2 == 1 {
			offset++ // chunks are padded to an even number of bytes
		}
	}

	if !haveFmt || !haveData {
		return Format{}, nil, fmt.Errorf("wavtest: missing fmt or data chunk")
	}
	return format, pcm, nil
}
