// Package ir provides the in-memory graph representation that optimization passes work on.
//
// A Graph owns its nodes, values and initializer tensors. Node attributes are a closed
// tagged variant (see Attribute): scalar and list kinds, tensor kinds, and an opaque family
// (subgraphs, type protos, sparse tensors) that structural passes must screen out before touching values.
//
// Symbols are interned per graph and compare by integer id. The id order is the insertion
// order into the SymbolTable, which is what passes sort attribute names by.
package ir
