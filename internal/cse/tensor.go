package cse

import (
	"fmt"
	"slices"

	"github.com/born-ml/cse/internal/ir"
)

func mustNotBeSegmented(t *ir.Tensor) {
	if t.Segmented {
		panic(fmt.Sprintf("cse: segmented tensor %q is not supported", t.Name))
	}
}

// TensorEqual reports whether a and b hold the same constant: same element type, same
// shape and an identical normalized payload. Two nil tensors are equal; nil never equals
// a non-nil tensor.
//
// Segmented tensors are a caller error and panic. Unsupported element types return an
// *UnsupportedTypeError rather than an answer.
func TensorEqual(a, b *ir.Tensor) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}
	mustNotBeSegmented(a)
	mustNotBeSegmented(b)

	for _, e := range []ir.ElemType{a.ElemType, b.ElemType} {
		if _, ok := bucketOf(e); !ok {
			return false, unsupportedElemType(e)
		}
	}
	if a.ElemType != b.ElemType || !slices.Equal(a.Sizes, b.Sizes) {
		return false, nil
	}

	pa, err := normalize(a)
	if err != nil {
		return false, err
	}
	pb, err := normalize(b)
	if err != nil {
		return false, err
	}
	return pa.equal(pb), nil
}

// TensorHash returns the structural hash of t, consistent with TensorEqual.
// t must be non-nil and not segmented.
func TensorHash(t *ir.Tensor) (uint64, error) {
	if t == nil {
		panic("cse: TensorHash of nil tensor")
	}
	mustNotBeSegmented(t)

	p, err := normalize(t)
	if err != nil {
		return 0, err
	}

	var seed uint64
	// dtype, dims, value
	combine(&seed, hashInt32(int32(t.ElemType)), sequenceHash("shape", t.Sizes, hashInt))
	if h, ok := p.hash(); ok {
		combine(&seed, h)
	}
	return seed, nil
}
