package cse

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/cse/internal/ir"
)

func floatTensor(sizes []int64, vals ...float32) *ir.Tensor {
	return &ir.Tensor{ElemType: ir.Float, Sizes: sizes, Floats: vals}
}

func rawFloatTensor(sizes []int64, vals ...float32) *ir.Tensor {
	raw := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(v))
	}
	return &ir.Tensor{ElemType: ir.Float, Sizes: sizes, IsRaw: true, Raw: raw}
}

func int64Tensor(sizes []int64, vals ...int64) *ir.Tensor {
	return &ir.Tensor{ElemType: ir.Int64, Sizes: sizes, Int64s: vals}
}

func mustTensorHash(t *ir.Tensor) uint64 {
	h, err := TensorHash(t)
	if err != nil {
		panic(err)
	}
	return h
}

func mustNodeHash(n *ir.Node) uint64 {
	h, err := NodeHash(n)
	if err != nil {
		panic(err)
	}
	return h
}
