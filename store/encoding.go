package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeWeights encodes a weight vector into the BLOB representation stored
// alongside entities: a little-endian sequence of IEEE 754 float32 values
// without a length prefix. The length is derived from the BLOB size on
// decode. An empty vector encodes to nil.
func EncodeWeights(vec []float64) []byte {
	if len(vec) == 0 {
		return nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(v)))
	}
	return b
}

// DecodeWeights decodes a BLOB produced by EncodeWeights back into float32
// values, the precision the registered SQL distance functions operate on.
func DecodeWeights(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("store: invalid weight blob length %d (not multiple of 4)", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
