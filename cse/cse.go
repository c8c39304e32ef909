// Package cse finds structurally identical computations in tensor dataflow graphs.
//
// Two nodes are equivalent when they have the same operator kind, consume the same
// values in the same order, produce the same number of outputs and carry equal
// attributes. Tensor attributes compare by element type, shape and value, so a
// constant stored as raw bytes equals the same constant stored in typed fields.
// Hashes are consistent with equivalence: equal nodes always hash alike.
//
// # Core functions
//
//   - [NodeHash], [NodeEqual]: node equivalence, for use as a hash-set key.
//   - [TensorHash], [TensorEqual]: constant tensor equivalence.
//   - [Supported]: whether a node may take part at all (nodes with subgraph, type or
//     sparse tensor attributes may not).
//
// Element types and attribute kinds that cannot be compared yield an error matching
// [ErrUnsupportedType] from both hashing and equality.
//
// # Whole-graph scan
//
// [Index] applies the core to a graph in topological order, treating outputs of
// duplicate nodes as aliases of the canonical outputs:
//
//	g, err := onnx.Load("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := cse.NewIndex(cse.DefaultOptions()).Scan(g)
//	for _, d := range report.Duplicates {
//	    fmt.Println(d.Node.Name, "=>", d.Canonical.Name)
//	}
//
// The graph is never modified.
package cse

import (
	"github.com/born-ml/cse/internal/cse"
	"github.com/born-ml/cse/internal/cse/canon"
	"github.com/born-ml/cse/internal/ir"
)

// Graph IR.
type (
	Graph         = ir.Graph
	Node          = ir.Node
	Value         = ir.Value
	Tensor        = ir.Tensor
	ElemType      = ir.ElemType
	Symbol        = ir.Symbol
	SymbolTable   = ir.SymbolTable
	Attribute     = ir.Attribute
	AttributeKind = ir.AttributeKind
)

// Attribute values.
type (
	FloatAttr         = ir.FloatAttr
	FloatsAttr        = ir.FloatsAttr
	IntAttr           = ir.IntAttr
	IntsAttr          = ir.IntsAttr
	StringAttr        = ir.StringAttr
	StringsAttr       = ir.StringsAttr
	TensorAttr        = ir.TensorAttr
	TensorsAttr       = ir.TensorsAttr
	GraphAttr         = ir.GraphAttr
	GraphsAttr        = ir.GraphsAttr
	TypeProtoAttr     = ir.TypeProtoAttr
	TypeProtosAttr    = ir.TypeProtosAttr
	SparseTensorAttr  = ir.SparseTensorAttr
	SparseTensorsAttr = ir.SparseTensorsAttr
)

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return ir.NewGraph(name)
}

// UnsupportedTypeError reports an element type or attribute kind that cannot be
// hashed or compared.
type UnsupportedTypeError = cse.UnsupportedTypeError

// ErrUnsupportedType matches every *UnsupportedTypeError with errors.Is.
var ErrUnsupportedType = cse.ErrUnsupportedType

// NodeHash returns a hash of n consistent with NodeEqual.
// It panics if n is nil.
func NodeHash(n *Node) (uint64, error) {
	return cse.NodeHash(n)
}

// NodeEqual reports whether a and b compute the same value.
func NodeEqual(a, b *Node) (bool, error) {
	return cse.NodeEqual(a, b)
}

// TensorHash returns a hash of t consistent with TensorEqual.
// It panics if t is nil or segmented.
func TensorHash(t *Tensor) (uint64, error) {
	return cse.TensorHash(t)
}

// TensorEqual reports whether a and b hold the same constant.
// It panics if either is segmented.
func TensorEqual(a, b *Tensor) (bool, error) {
	return cse.TensorEqual(a, b)
}

// Supported reports whether n may take part in equivalence checks.
func Supported(n *Node) bool {
	return cse.Supported(n)
}

// Whole-graph scanning.
type (
	Index       = canon.Index
	Options     = canon.Options
	Report      = canon.Report
	Duplicate   = canon.Duplicate
	Skipped     = canon.Skipped
	TensorGroup = canon.TensorGroup
	UnionFind   = canon.UnionFind
)

// DefaultOptions returns the default Index configuration.
func DefaultOptions() Options {
	return canon.DefaultOptions()
}

// NewIndex creates an Index.
func NewIndex(opts Options) *Index {
	return canon.New(opts)
}
