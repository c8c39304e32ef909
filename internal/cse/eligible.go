package cse

import (
	"slices"

	"github.com/born-ml/cse/internal/ir"
)

// Supported reports whether n can take part in CSE. Nodes carrying a subgraph (g, gs),
// type-proto (tp, tps) or sparse tensor (st, sts) attribute are rejected: those values are
// recursive or opaque and have no flat structural identity. So are nodes with a tensor
// attribute that holds no tensor, which NodeHash cannot hash.
func Supported(n *ir.Node) bool {
	if n == nil {
		return false
	}
	for _, name := range n.AttributeNames() {
		switch a := n.Attr(name).(type) {
		case ir.GraphAttr, ir.GraphsAttr, ir.TypeProtoAttr, ir.TypeProtosAttr,
			ir.SparseTensorAttr, ir.SparseTensorsAttr:
			return false
		case ir.TensorAttr:
			if a.Tensor == nil {
				return false
			}
		case ir.TensorsAttr:
			if slices.Contains(a, nil) {
				return false
			}
		}
	}
	return true
}
