package embedding

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Serialize encodes v as a bincode-style length-prefixed vector: a
// little-endian uint64 element count followed by that many little-endian
// f32 values. This is the "generic path" encoding; SerializeRaw below is
// the flat-blob alternative, and both must round-trip through their
// matching Deserialize* function.
func Serialize(v []float32) []byte {
	buf := make([]byte, 8+4*len(v))
	binary.LittleEndian.PutUint64(buf[0:8], uint64(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[8+4*i:12+4*i], math.Float32bits(f))
	}
	return buf
}

// Deserialize reverses Serialize.
func Deserialize(b []byte) ([]float32, error) {
	if len(b) < 8 {
		return nil, fmt.Errorf("embedding: buffer too short for length prefix")
	}
	n := binary.LittleEndian.Uint64(b[0:8])
	want := 8 + 4*int(n)
	if len(b) != want {
		return nil, fmt.Errorf("embedding: length prefix %d does not match buffer size %d", n, len(b))
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[8+4*i : 12+4*i]))
	}
	return out, nil
}

// SerializeRaw packs v as a flat little-endian f32 blob with no length
// prefix; the vector's length is implicit in len(blob)/4. This is the
// encoding used when storing directly as a BLOB column.
func SerializeRaw(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:4*i+4], math.Float32bits(f))
	}
	return buf
}

// DeserializeRaw reverses SerializeRaw.
func DeserializeRaw(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("embedding: raw buffer length %d not a multiple of 4", len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i : 4*i+4]))
	}
	return out, nil
}
