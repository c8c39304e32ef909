// Package cse answers the two questions common-subexpression elimination asks of a graph:
// which hash bucket a node (or constant tensor) belongs to, and whether two of them are
// interchangeable.
//
// Identity is structural. A node is identified by its operator kind, the unique names of
// its inputs in order, its attributes (sorted by symbol id, so enumeration order does not
// matter) and its output count. Output names are not part of the identity.
//
// Tensor payloads are compared after normalization into one of a few canonical buckets,
// so a tensor stored as raw bytes and the same tensor stored in a typed field are
// equivalent and hash alike. Comparison is exact: floats compare with ==, so NaN is never
// equal to itself and +0 equals -0.
//
// Nodes with subgraph, type-proto or sparse tensor attributes are outside this model;
// callers screen them with Supported before calling NodeHash or NodeEqual.
//
// For all x, y: NodeEqual(x, y) implies NodeHash(x) == NodeHash(y), and the same holds for
// TensorEqual and TensorHash. Every function here is pure and safe for concurrent use as
// long as the graph is not mutated meanwhile.
package cse
