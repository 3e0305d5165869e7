// Package vectorcodec encodes embedding vectors as raw little-endian
// IEEE-754 float32 buffers (dimension * 4 bytes). Round-tripping must be
// bit-exact: similarity scores are only reproducible if the stored
// floats decode to the values that were encoded.
package vectorcodec

import (
	"encoding/binary"
	"errors"
	"math"
)

var ErrInvalidLength = errors.New("vectorcodec: buffer length is not a multiple of 4")

// Encode serializes vec as little-endian float32 bytes.
func Encode(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Decode deserializes a buffer produced by Encode.
func Decode(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, ErrInvalidLength
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}

// Dimension reports how many float32 values a buffer holds.
func Dimension(buf []byte) int {
	return len(buf) / 4
}
