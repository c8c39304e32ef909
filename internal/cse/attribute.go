package cse

import (
	"slices"

	"github.com/born-ml/cse/internal/ir"
)

func unsupportedAttrKind(k ir.AttributeKind) error {
	return &UnsupportedTypeError{What: "attribute kind", Type: k.String()}
}

// attributeHash dispatches on the attribute kind. Subgraph and type-proto kinds are
// rejected; Supported should have screened them out already.
func attributeHash(a ir.Attribute) (uint64, error) {
	switch v := a.(type) {
	case ir.FloatAttr:
		return hashFloat64(float64(v)), nil
	case ir.FloatsAttr:
		return sequenceHash("floats", v, hashFloat64), nil
	case ir.IntAttr:
		return hashInt(int64(v)), nil
	case ir.IntsAttr:
		return sequenceHash("ints", v, hashInt), nil
	case ir.StringAttr:
		return hashString(string(v)), nil
	case ir.StringsAttr:
		return sequenceHash("strings", v, hashString), nil
	case ir.TensorAttr:
		return TensorHash(v.Tensor)
	case ir.TensorsAttr:
		hashes := make([]uint64, len(v))
		for i, t := range v {
			h, err := TensorHash(t)
			if err != nil {
				return 0, err
			}
			hashes[i] = h
		}
		return sequenceHash("tensors", hashes, hashUint), nil
	default:
		return 0, unsupportedAttrKind(a.Kind())
	}
}

// attributeEqual compares two attributes already known to be of the same kind.
func attributeEqual(a, b ir.Attribute) (bool, error) {
	switch v := a.(type) {
	case ir.FloatAttr:
		return v == b.(ir.FloatAttr), nil
	case ir.FloatsAttr:
		return slices.Equal(v, b.(ir.FloatsAttr)), nil
	case ir.IntAttr:
		return v == b.(ir.IntAttr), nil
	case ir.IntsAttr:
		return slices.Equal(v, b.(ir.IntsAttr)), nil
	case ir.StringAttr:
		return v == b.(ir.StringAttr), nil
	case ir.StringsAttr:
		return slices.Equal(v, b.(ir.StringsAttr)), nil
	case ir.TensorAttr:
		return TensorEqual(v.Tensor, b.(ir.TensorAttr).Tensor)
	case ir.TensorsAttr:
		w := b.(ir.TensorsAttr)
		if len(v) != len(w) {
			return false, nil
		}
		for i := range v {
			eq, err := TensorEqual(v[i], w[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	default:
		return false, unsupportedAttrKind(a.Kind())
	}
}
