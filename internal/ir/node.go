package ir

// Value is a named dataflow edge. UniqueName is unique within its graph.
type Value struct {
	UniqueName string
}

// Node is a single operator application.
type Node struct {
	Kind    Symbol // Operator kind (op_type, qualified by domain when not default)
	Name    string // Node name (optional, not part of identity)
	Domain  string
	Inputs  []*Value
	Outputs []*Value

	attrNames []Symbol
	attrs     map[Symbol]Attribute
}

// SetAttr sets attribute name to a. Re-setting keeps the original enumeration position.
func (n *Node) SetAttr(name Symbol, a Attribute) {
	if n.attrs == nil {
		n.attrs = make(map[Symbol]Attribute)
	}
	if _, ok := n.attrs[name]; !ok {
		n.attrNames = append(n.attrNames, name)
	}
	n.attrs[name] = a
}

// RemoveAttr deletes attribute name if present.
func (n *Node) RemoveAttr(name Symbol) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	for i, s := range n.attrNames {
		if s == name {
			n.attrNames = append(n.attrNames[:i], n.attrNames[i+1:]...)
			break
		}
	}
}

// AttributeNames returns the attribute names in enumeration order.
// The returned slice is a copy.
func (n *Node) AttributeNames() []Symbol {
	names := make([]Symbol, len(n.attrNames))
	copy(names, n.attrNames)
	return names
}

// HasAttr reports whether the node carries attribute name.
func (n *Node) HasAttr(name Symbol) bool {
	_, ok := n.attrs[name]
	return ok
}

// Attr returns the attribute value for name, or nil.
func (n *Node) Attr(name Symbol) Attribute {
	return n.attrs[name]
}

// KindOf returns the kind of attribute name, or 0 if absent.
func (n *Node) KindOf(name Symbol) AttributeKind {
	a, ok := n.attrs[name]
	if !ok {
		return 0
	}
	return a.Kind()
}

// NumAttributes returns the number of attributes.
func (n *Node) NumAttributes() int {
	return len(n.attrNames)
}

// CloneWithInputs returns a copy of n reading from inputs instead of n.Inputs.
// Attribute values are shared with n; the attribute set itself is copied.
func (n *Node) CloneWithInputs(inputs []*Value) *Node {
	c := &Node{
		Kind:      n.Kind,
		Name:      n.Name,
		Domain:    n.Domain,
		Inputs:    inputs,
		Outputs:   n.Outputs,
		attrNames: make([]Symbol, len(n.attrNames)),
		attrs:     make(map[Symbol]Attribute, len(n.attrs)),
	}
	copy(c.attrNames, n.attrNames)
	for k, v := range n.attrs {
		c.attrs[k] = v
	}
	return c
}
