// ABOUTME: Binary codec for the serialized search structure
// ABOUTME: Layout: dim(uint32), count(uint32), then float32 vectors in index order
package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// encodeVectors serializes the index's vectors. Values are stored as
// float32; persisted scores are therefore exact only to float32
// precision.
func encodeVectors(vectors [][]float64, dim int) []byte {
	out := make([]byte, 0, 8+len(vectors)*dim*4)
	out = binary.LittleEndian.AppendUint32(out, uint32(dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(vectors)))
	for _, v := range vectors {
		for _, x := range v {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(x)))
		}
	}
	return out
}

// decodeVectors restores vectors from the binary layout.
func decodeVectors(data []byte) (vectors [][]float64, dim int, err error) {
	if len(data) < 8 {
		return nil, 0, errors.New("vector file truncated: missing header")
	}
	dim = int(binary.LittleEndian.Uint32(data[0:4]))
	count := int(binary.LittleEndian.Uint32(data[4:8]))

	need := 8 + count*dim*4
	if len(data) != need {
		return nil, 0, fmt.Errorf("vector file corrupt: have %d bytes, want %d for %d vectors of width %d", len(data), need, count, dim)
	}

	off := 8
	vectors = make([][]float64, count)
	for i := 0; i < count; i++ {
		v := make([]float64, dim)
		for j := 0; j < dim; j++ {
			v[j] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])))
			off += 4
		}
		vectors[i] = v
	}
	return vectors, dim, nil
}
