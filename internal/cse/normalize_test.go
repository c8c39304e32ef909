package cse

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/born-ml/cse/internal/ir"
)

func TestBucketOfCoversEveryElemType(t *testing.T) {
	for e := ir.Undefined; e <= ir.Bfloat16; e++ {
		_, ok := bucketOf(e)
		assert.True(t, ok, "element type %s has no bucket", e)
	}
	_, ok := bucketOf(ir.ElemType(17))
	assert.False(t, ok)
}

func TestNormalizeBoolRaw(t *testing.T) {
	raw := &ir.Tensor{ElemType: ir.Bool, Sizes: []int64{3}, IsRaw: true, Raw: []byte{0x01, 0x00, 0x01}}
	typed := &ir.Tensor{ElemType: ir.Bool, Sizes: []int64{3}, Int32s: []int32{1, 0, 1}}

	p, err := normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1}, p.bools)

	q, err := normalize(typed)
	require.NoError(t, err)
	assert.True(t, p.equal(q))
}

func TestNormalizeTypedAndRawAgree(t *testing.T) {
	le16 := func(vs ...uint16) []byte {
		b := make([]byte, 2*len(vs))
		for i, v := range vs {
			binary.LittleEndian.PutUint16(b[2*i:], v)
		}
		return b
	}
	le32 := func(vs ...uint32) []byte {
		b := make([]byte, 4*len(vs))
		for i, v := range vs {
			binary.LittleEndian.PutUint32(b[4*i:], v)
		}
		return b
	}
	le64 := func(vs ...uint64) []byte {
		b := make([]byte, 8*len(vs))
		for i, v := range vs {
			binary.LittleEndian.PutUint64(b[8*i:], v)
		}
		return b
	}

	half := float16.Fromfloat32(1.5).Bits()
	negHalf := float16.Fromfloat32(-2).Bits()

	tests := []struct {
		name  string
		typed *ir.Tensor
		raw   []byte
	}{
		{"int8", &ir.Tensor{ElemType: ir.Int8, Int32s: []int32{-1, 5}}, []byte{0xff, 0x05}},
		{"uint8", &ir.Tensor{ElemType: ir.Uint8, Int32s: []int32{255, 5}}, []byte{0xff, 0x05}},
		{"int16", &ir.Tensor{ElemType: ir.Int16, Int32s: []int32{-2, 300}}, le16(0xfffe, 300)},
		{"uint16", &ir.Tensor{ElemType: ir.Uint16, Int32s: []int32{65535, 7}}, le16(65535, 7)},
		{"float16", &ir.Tensor{ElemType: ir.Float16, Int32s: []int32{int32(half), int32(negHalf)}}, le16(half, negHalf)},
		{"bfloat16", &ir.Tensor{ElemType: ir.Bfloat16, Int32s: []int32{0x3f80}}, le16(0x3f80)},
		{"int32", &ir.Tensor{ElemType: ir.Int32, Int32s: []int32{-7, 1 << 20}}, le32(0xfffffff9, 1<<20)},
		{"uint32", &ir.Tensor{ElemType: ir.Uint32, Uint64s: []uint64{math.MaxUint32, 1}}, le32(math.MaxUint32, 1)},
		{"uint64", &ir.Tensor{ElemType: ir.Uint64, Uint64s: []uint64{math.MaxUint64}}, le64(math.MaxUint64)},
		{"int64", &ir.Tensor{ElemType: ir.Int64, Int64s: []int64{-1, 42}}, le64(math.MaxUint64, 42)},
		{"float", &ir.Tensor{ElemType: ir.Float, Floats: []float32{1, 2}}, le32(math.Float32bits(1), math.Float32bits(2))},
		{"complex64", &ir.Tensor{ElemType: ir.Complex64, Floats: []float32{1, -1}}, le32(math.Float32bits(1), math.Float32bits(-1))},
		{"double", &ir.Tensor{ElemType: ir.Double, Doubles: []float64{0.5}}, le64(math.Float64bits(0.5))},
		{"complex128", &ir.Tensor{ElemType: ir.Complex128, Doubles: []float64{3, 4}}, le64(math.Float64bits(3), math.Float64bits(4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &ir.Tensor{ElemType: tt.typed.ElemType, IsRaw: true, Raw: tt.raw}

			p, err := normalize(tt.typed)
			require.NoError(t, err)
			q, err := normalize(raw)
			require.NoError(t, err)

			assert.Equal(t, p.bucket, q.bucket)
			assert.True(t, p.equal(q), "typed and raw payloads differ")

			hp, _ := p.hash()
			hq, _ := q.hash()
			assert.Equal(t, hp, hq)
		})
	}
}

func TestNormalizeFloat16ByBitPattern(t *testing.T) {
	// Two NaN encodings are different bit patterns, so they are different payloads,
	// and the same NaN pattern compares equal since 16-bit floats are not decoded.
	nanA := int32(0x7e00)
	nanB := int32(0x7e01)
	a := &ir.Tensor{ElemType: ir.Float16, Int32s: []int32{nanA}}
	b := &ir.Tensor{ElemType: ir.Float16, Int32s: []int32{nanB}}

	eq, err := TensorEqual(a, b)
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = TensorEqual(a, a)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestNormalizeUint32NarrowsTypedValues(t *testing.T) {
	typed := &ir.Tensor{ElemType: ir.Uint32, Sizes: []int64{1}, Uint64s: []uint64{1<<32 | 1}}
	raw := &ir.Tensor{ElemType: ir.Uint32, Sizes: []int64{1}, IsRaw: true, Raw: []byte{1, 0, 0, 0}}

	eq, err := TensorEqual(typed, raw)
	require.NoError(t, err)
	assert.True(t, eq)
	assert.Equal(t, mustTensorHash(raw), mustTensorHash(typed))

	wide := &ir.Tensor{ElemType: ir.Uint64, Sizes: []int64{1}, Uint64s: []uint64{1<<32 | 1}}
	p, err := normalize(wide)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1<<32 | 1}, p.u64)
}

func TestNormalizeUndefinedIsEmpty(t *testing.T) {
	p, err := normalize(&ir.Tensor{ElemType: ir.Undefined})
	require.NoError(t, err)
	assert.Equal(t, bucketEmpty, p.bucket)

	_, ok := p.hash()
	assert.False(t, ok)
}

func TestNormalizeStrings(t *testing.T) {
	a := &ir.Tensor{ElemType: ir.String, Strings: [][]byte{[]byte("a"), []byte("bc")}}
	b := &ir.Tensor{ElemType: ir.String, Strings: [][]byte{[]byte("ab"), []byte("c")}}

	p, err := normalize(a)
	require.NoError(t, err)
	q, err := normalize(b)
	require.NoError(t, err)
	assert.False(t, p.equal(q))
}

func TestNormalizeMalformedRawPanics(t *testing.T) {
	bad := &ir.Tensor{Name: "w", ElemType: ir.Float, IsRaw: true, Raw: []byte{1, 2, 3}}
	assert.Panics(t, func() { _, _ = normalize(bad) })

	rawString := &ir.Tensor{Name: "s", ElemType: ir.String, IsRaw: true, Raw: []byte("abc")}
	assert.Panics(t, func() { _, _ = normalize(rawString) })
}

func TestNormalizeUnsupported(t *testing.T) {
	_, err := normalize(&ir.Tensor{ElemType: ir.ElemType(23)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
