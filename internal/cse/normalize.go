package cse

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/cse/internal/ir"
)

// bucket is the canonical representation a tensor payload is compared in.
type bucket uint8

const (
	bucketEmpty bucket = iota
	bucketBool
	bucketInt32
	bucketFloat32
	bucketFloat64
	bucketUint64
	bucketInt64
	bucketString
)

// tag names the bucket in sequence hashes.
func (b bucket) tag() string {
	switch b {
	case bucketBool:
		return "bool"
	case bucketInt32:
		return "int32"
	case bucketFloat32:
		return "float32"
	case bucketFloat64:
		return "float64"
	case bucketUint64:
		return "uint64"
	case bucketInt64:
		return "int64"
	case bucketString:
		return "string"
	default:
		return "empty"
	}
}

// bucketOf maps an element type to its bucket. The 16-bit float formats go to the int32
// bucket: they are compared by bit pattern, not by decoded value.
func bucketOf(e ir.ElemType) (bucket, bool) {
	switch e {
	case ir.Undefined:
		return bucketEmpty, true
	case ir.Bool:
		return bucketBool, true
	case ir.Int8, ir.Int16, ir.Int32, ir.Uint8, ir.Uint16, ir.Float16, ir.Bfloat16:
		return bucketInt32, true
	case ir.Float, ir.Complex64:
		return bucketFloat32, true
	case ir.Double, ir.Complex128:
		return bucketFloat64, true
	case ir.Uint32, ir.Uint64:
		return bucketUint64, true
	case ir.Int64:
		return bucketInt64, true
	case ir.String:
		return bucketString, true
	default:
		return 0, false
	}
}

// payload is a tensor's data decoded into its bucket. Exactly one slice is used.
type payload struct {
	bucket bucket
	bools  []uint8
	i32    []int32
	f32    []float32
	f64    []float64
	u64    []uint64
	i64    []int64
	strs   [][]byte
}

func unsupportedElemType(e ir.ElemType) error {
	return &UnsupportedTypeError{What: "element type", Type: e.String()}
}

// normalize decodes t's typed or raw storage into its canonical bucket.
// The result may alias t's storage and must not be modified.
func normalize(t *ir.Tensor) (payload, error) {
	b, ok := bucketOf(t.ElemType)
	if !ok {
		return payload{}, unsupportedElemType(t.ElemType)
	}

	p := payload{bucket: b}
	switch b {
	case bucketEmpty:
	case bucketBool:
		p.bools = boolData(t)
	case bucketInt32:
		p.i32 = int32Data(t)
	case bucketFloat32:
		if t.IsRaw {
			p.f32 = decodeRaw(t, 4, func(w []byte) float32 {
				return math.Float32frombits(binary.LittleEndian.Uint32(w))
			})
		} else {
			p.f32 = t.Floats
		}
	case bucketFloat64:
		if t.IsRaw {
			p.f64 = decodeRaw(t, 8, func(w []byte) float64 {
				return math.Float64frombits(binary.LittleEndian.Uint64(w))
			})
		} else {
			p.f64 = t.Doubles
		}
	case bucketUint64:
		p.u64 = uint64Data(t)
	case bucketInt64:
		if t.IsRaw {
			p.i64 = decodeRaw(t, 8, func(w []byte) int64 {
				return int64(binary.LittleEndian.Uint64(w)) //nolint:gosec // G115: two's complement reinterpretation.
			})
		} else {
			p.i64 = t.Int64s
		}
	case bucketString:
		if t.IsRaw {
			panic(fmt.Sprintf("cse: string tensor %q has raw storage", t.Name))
		}
		p.strs = t.Strings
	}
	return p, nil
}

// boolData returns one 0/1 byte per element. Raw booleans are one byte per element.
func boolData(t *ir.Tensor) []uint8 {
	if t.IsRaw {
		out := make([]uint8, len(t.Raw))
		for i, c := range t.Raw {
			if c != 0 {
				out[i] = 1
			}
		}
		return out
	}
	out := make([]uint8, len(t.Int32s))
	for i, v := range t.Int32s {
		if v != 0 {
			out[i] = 1
		}
	}
	return out
}

// int32Data decodes the types that ONNX stores in int32_data. Values are narrowed to the
// element width (sign-extended for signed types, zero-extended otherwise) so typed and raw
// storage agree.
func int32Data(t *ir.Tensor) []int32 {
	switch t.ElemType {
	case ir.Int8:
		if t.IsRaw {
			return decodeRaw(t, 1, func(w []byte) int32 { return int32(int8(w[0])) })
		}
		return narrow(t.Int32s, func(v int32) int32 { return int32(int8(v)) }) //nolint:gosec // G115: narrowing is intended.
	case ir.Uint8:
		if t.IsRaw {
			return decodeRaw(t, 1, func(w []byte) int32 { return int32(w[0]) })
		}
		return narrow(t.Int32s, func(v int32) int32 { return v & 0xff })
	case ir.Int16:
		if t.IsRaw {
			return decodeRaw(t, 2, func(w []byte) int32 {
				return int32(int16(binary.LittleEndian.Uint16(w))) //nolint:gosec // G115: two's complement reinterpretation.
			})
		}
		return narrow(t.Int32s, func(v int32) int32 { return int32(int16(v)) }) //nolint:gosec // G115: narrowing is intended.
	case ir.Uint16, ir.Float16, ir.Bfloat16:
		if t.IsRaw {
			return decodeRaw(t, 2, func(w []byte) int32 { return int32(binary.LittleEndian.Uint16(w)) })
		}
		return narrow(t.Int32s, func(v int32) int32 { return v & 0xffff })
	default: // ir.Int32
		if t.IsRaw {
			return decodeRaw(t, 4, func(w []byte) int32 {
				return int32(binary.LittleEndian.Uint32(w)) //nolint:gosec // G115: two's complement reinterpretation.
			})
		}
		return t.Int32s
	}
}

// uint64Data decodes uint32 and uint64 tensors, both stored in uint64_data. Typed uint32
// values are narrowed to 32 bits like the int32-bucket types.
func uint64Data(t *ir.Tensor) []uint64 {
	if t.ElemType == ir.Uint32 {
		if t.IsRaw {
			return decodeRaw(t, 4, func(w []byte) uint64 { return uint64(binary.LittleEndian.Uint32(w)) })
		}
		out := make([]uint64, len(t.Uint64s))
		for i, v := range t.Uint64s {
			out[i] = v & 0xffffffff
		}
		return out
	}
	if t.IsRaw {
		return decodeRaw(t, 8, binary.LittleEndian.Uint64)
	}
	return t.Uint64s
}

func narrow(in []int32, f func(int32) int32) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// decodeRaw splits t.Raw into little-endian words of the given width.
func decodeRaw[T any](t *ir.Tensor, width int, decode func([]byte) T) []T {
	if len(t.Raw)%width != 0 {
		panic(fmt.Sprintf("cse: tensor %q (%s) has %d raw bytes, not a multiple of %d",
			t.Name, t.ElemType, len(t.Raw), width))
	}
	out := make([]T, len(t.Raw)/width)
	for i := range out {
		out[i] = decode(t.Raw[i*width : (i+1)*width])
	}
	return out
}

// equal compares two payloads of the same bucket element-wise with ==.
func (p payload) equal(o payload) bool {
	if p.bucket != o.bucket {
		return false
	}
	switch p.bucket {
	case bucketEmpty:
		return true
	case bucketBool:
		return bytes.Equal(p.bools, o.bools)
	case bucketInt32:
		return slices.Equal(p.i32, o.i32)
	case bucketFloat32:
		return slices.Equal(p.f32, o.f32)
	case bucketFloat64:
		return slices.Equal(p.f64, o.f64)
	case bucketUint64:
		return slices.Equal(p.u64, o.u64)
	case bucketInt64:
		return slices.Equal(p.i64, o.i64)
	case bucketString:
		return slices.EqualFunc(p.strs, o.strs, bytes.Equal)
	default:
		return false
	}
}

// hash returns the sequence hash of the payload. Empty payloads contribute nothing.
func (p payload) hash() (h uint64, ok bool) {
	tag := p.bucket.tag()
	switch p.bucket {
	case bucketEmpty:
		return 0, false
	case bucketBool:
		return sequenceHash(tag, p.bools, hashByte), true
	case bucketInt32:
		return sequenceHash(tag, p.i32, hashInt32), true
	case bucketFloat32:
		return sequenceHash(tag, p.f32, hashFloat32), true
	case bucketFloat64:
		return sequenceHash(tag, p.f64, hashFloat64), true
	case bucketUint64:
		return sequenceHash(tag, p.u64, hashUint), true
	case bucketInt64:
		return sequenceHash(tag, p.i64, hashInt), true
	case bucketString:
		return sequenceHash(tag, p.strs, hashBytes), true
	default:
		return 0, false
	}
}
