// Package canon finds duplicate computations across a whole graph.
//
// The cse package compares one node at a time and identifies inputs by name only. This
// package supplies the missing piece: it walks the graph in topological order, keeps a
// union-find over value names, and hashes each node with its inputs replaced by their
// canonical representatives. A node that matches an earlier one has its outputs merged
// into that node's outputs, so its consumers can in turn match.
//
// Nothing here mutates the graph. The Report says which nodes duplicate which, and which
// name every value should be read from; rewriting is left to the caller.
package canon
