package ir

import "fmt"

// ElemType is a tensor element type. Values match ONNX TensorProto.DataType.
type ElemType int32

// Tensor element types.
const (
	Undefined  ElemType = 0
	Float      ElemType = 1  // float32
	Uint8      ElemType = 2  // uint8
	Int8       ElemType = 3  // int8
	Uint16     ElemType = 4  // uint16
	Int16      ElemType = 5  // int16
	Int32      ElemType = 6  // int32
	Int64      ElemType = 7  // int64
	String     ElemType = 8  // string
	Bool       ElemType = 9  // bool
	Float16    ElemType = 10 // float16
	Double     ElemType = 11 // float64
	Uint32     ElemType = 12 // uint32
	Uint64     ElemType = 13 // uint64
	Complex64  ElemType = 14 // complex64
	Complex128 ElemType = 15 // complex128
	Bfloat16   ElemType = 16 // bfloat16
)

// String returns the ONNX name of the element type.
func (e ElemType) String() string {
	switch e {
	case Undefined:
		return "undefined"
	case Float:
		return "float"
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Float16:
		return "float16"
	case Double:
		return "double"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case Bfloat16:
		return "bfloat16"
	default:
		return fmt.Sprintf("elem_type(%d)", int32(e))
	}
}

// Tensor is a constant tensor value (initializer or attribute payload).
//
// The payload lives in exactly one place: Raw when IsRaw is set, otherwise the typed
// field matching the element type's ONNX storage category:
//
//	Int32s   bool, int8, int16, int32, uint8, uint16, float16, bfloat16
//	Int64s   int64
//	Uint64s  uint32, uint64
//	Floats   float32, complex64 (real/imag pairs)
//	Doubles  float64, complex128 (real/imag pairs)
//	Strings  string
type Tensor struct {
	Name     string
	ElemType ElemType
	Sizes    []int64

	// Segmented marks a partially materialized tensor (ONNX TensorProto.segment).
	Segmented bool

	IsRaw bool
	Raw   []byte

	Int32s  []int32
	Int64s  []int64
	Uint64s []uint64
	Floats  []float32
	Doubles []float64
	Strings [][]byte
}

// NumElements returns the product of the tensor's dimensions (1 for a scalar).
func (t *Tensor) NumElements() int64 {
	n := int64(1)
	for _, d := range t.Sizes {
		n *= d
	}
	return n
}
