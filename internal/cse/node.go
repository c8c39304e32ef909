package cse

import (
	"fmt"
	"slices"

	"github.com/born-ml/cse/internal/ir"
)

// sortedAttributeNames returns n's attribute names ordered by symbol id.
func sortedAttributeNames(n *ir.Node) []ir.Symbol {
	names := n.AttributeNames()
	slices.Sort(names)
	return names
}

// NodeHash returns the structural hash of n, consistent with NodeEqual.
//
// The hash covers the operator kind, the unique names of the inputs in order, every
// attribute (sorted by name symbol) and the number of outputs. Output names are left out
// so nodes differing only in what they call their results collide.
func NodeHash(n *ir.Node) (uint64, error) {
	if n == nil {
		panic("cse: NodeHash of nil node")
	}

	var seed uint64
	combine(&seed, hashUint(uint64(n.Kind)), hashLen(len(n.Inputs)))
	for _, in := range n.Inputs {
		combine(&seed, hashString(in.UniqueName))
	}

	for _, name := range sortedAttributeNames(n) {
		h, err := attributeHash(n.Attr(name))
		if err != nil {
			return 0, fmt.Errorf("attribute #%d: %w", name, err)
		}
		combine(&seed, hashUint(uint64(name)), h)
	}

	combine(&seed, hashLen(len(n.Outputs)))
	return seed, nil
}

// NodeEqual reports whether a and b compute the same thing: same operator kind, same
// inputs in the same order, same number of outputs and equal attributes. Two nil nodes
// are equal.
//
// An attribute of a kind NodeHash cannot hash is reported as an *UnsupportedTypeError,
// never as a match.
func NodeEqual(a, b *ir.Node) (bool, error) {
	if a == nil || b == nil {
		return a == nil && b == nil, nil
	}

	namesA := sortedAttributeNames(a)
	namesB := sortedAttributeNames(b)
	if a.Kind != b.Kind || len(a.Inputs) != len(b.Inputs) ||
		len(a.Outputs) != len(b.Outputs) || !slices.Equal(namesA, namesB) {
		return false, nil
	}

	for i := range a.Inputs {
		if a.Inputs[i].UniqueName != b.Inputs[i].UniqueName {
			return false, nil
		}
	}

	for _, name := range namesA {
		attrA, attrB := a.Attr(name), b.Attr(name)
		if attrA.Kind() != attrB.Kind() {
			return false, nil
		}
		eq, err := attributeEqual(attrA, attrB)
		if err != nil {
			return false, fmt.Errorf("attribute #%d: %w", name, err)
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}
