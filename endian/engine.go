// Package endian provides the byte order engine used by sparsepix binary formats.
//
// Every sparsepix on-disk layout (SPCO, SPCS, SPZ1 and the container arrays)
// is little-endian. The package wraps encoding/binary so codecs can take one
// engine value that both reads/writes fixed slots and appends to a growing
// buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, height)
//	width := engine.Uint32(hdr[8:12])
//
// The returned engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"slices"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by all sparsepix formats.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendUint32s appends every value of vals to dst in the engine's byte order.
func AppendUint32s(engine EndianEngine, dst []byte, vals []uint32) []byte {
	for _, v := range vals {
		dst = engine.AppendUint32(dst, v)
	}

	return dst
}

// Uint32s decodes len(data)/4 values from data into dst and returns the
// extended slice. Trailing bytes that do not form a full value are ignored;
// callers validate len(data)%4 beforehand.
func Uint32s(engine EndianEngine, dst []uint32, data []byte) []uint32 {
	n := len(data) / 4
	dst = slices.Grow(dst, n)

	for i := range n {
		dst = append(dst, engine.Uint32(data[i*4:i*4+4]))
	}

	return dst
}
