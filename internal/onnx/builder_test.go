package onnx

import (
	"encoding/binary"
	"math"
)

// protoBuilder writes protobuf wire data for hand-built test models.
type protoBuilder struct {
	data []byte
}

func newBuilder() *protoBuilder { return &protoBuilder{} }

func (b *protoBuilder) tag(field, wireType int) {
	b.rawVarint(uint64(field<<3 | wireType)) //nolint:gosec // G115: small field numbers.
}

func (b *protoBuilder) rawVarint(v uint64) {
	for v >= 0x80 {
		b.data = append(b.data, byte(v)|0x80)
		v >>= 7
	}
	b.data = append(b.data, byte(v))
}

func (b *protoBuilder) varint(field int, v int64) *protoBuilder {
	b.tag(field, wireVarint)
	b.rawVarint(uint64(v)) //nolint:gosec // G115: two's complement, as protobuf encodes int64.
	return b
}

func (b *protoBuilder) bytes(field int, data []byte) *protoBuilder {
	b.tag(field, wireBytes)
	b.rawVarint(uint64(len(data)))
	b.data = append(b.data, data...)
	return b
}

func (b *protoBuilder) str(field int, s string) *protoBuilder {
	return b.bytes(field, []byte(s))
}

func (b *protoBuilder) msg(field int, m *protoBuilder) *protoBuilder {
	return b.bytes(field, m.data)
}

func (b *protoBuilder) float(field int, f float32) *protoBuilder {
	b.tag(field, wire32Bit)
	b.data = binary.LittleEndian.AppendUint32(b.data, math.Float32bits(f))
	return b
}

func (b *protoBuilder) double(field int, f float64) *protoBuilder {
	b.tag(field, wire64Bit)
	b.data = binary.LittleEndian.AppendUint64(b.data, math.Float64bits(f))
	return b
}

func (b *protoBuilder) packedVarints(field int, vs ...uint64) *protoBuilder {
	packed := newBuilder()
	for _, v := range vs {
		packed.rawVarint(v)
	}
	return b.bytes(field, packed.data)
}

func (b *protoBuilder) packedFloats(field int, fs ...float32) *protoBuilder {
	var packed []byte
	for _, f := range fs {
		packed = binary.LittleEndian.AppendUint32(packed, math.Float32bits(f))
	}
	return b.bytes(field, packed)
}

func (b *protoBuilder) packedDoubles(field int, fs ...float64) *protoBuilder {
	var packed []byte
	for _, f := range fs {
		packed = binary.LittleEndian.AppendUint64(packed, math.Float64bits(f))
	}
	return b.bytes(field, packed)
}

// modelBytes wraps a graph in a ModelProto with the default opset. The graph is the
// last field so truncating the output always cuts into it.
func modelBytes(graph *protoBuilder) []byte {
	opset := newBuilder().str(1, "").varint(2, 13)
	return newBuilder().
		varint(1, 7).
		str(2, "born-test").
		msg(8, opset).
		msg(7, graph).
		data
}

func nodeProto(opType string, inputs, outputs []string) *protoBuilder {
	b := newBuilder()
	for _, in := range inputs {
		b.str(1, in)
	}
	for _, out := range outputs {
		b.str(2, out)
	}
	return b.str(4, opType)
}

func valueInfo(name string, dims ...int64) *protoBuilder {
	shape := newBuilder()
	for _, d := range dims {
		dim := newBuilder()
		if d > 0 {
			dim.varint(1, d)
		} else {
			dim.str(2, "batch")
		}
		shape.msg(1, dim)
	}
	tensorType := newBuilder().varint(1, TensorProtoFloat).msg(2, shape)
	typ := newBuilder().msg(1, tensorType)
	return newBuilder().str(1, name).msg(2, typ)
}

func rawTensorProto(name string, dtype int32, dims []int64, raw []byte) *protoBuilder {
	b := newBuilder()
	for _, d := range dims {
		b.varint(1, d)
	}
	return b.varint(2, int64(dtype)).str(8, name).bytes(9, raw)
}

func attrProto(name string, typ int32) *protoBuilder {
	return newBuilder().str(1, name).varint(20, int64(typ))
}
