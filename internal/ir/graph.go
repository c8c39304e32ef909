package ir

import "fmt"

// Graph is a computation graph. It owns its nodes, values and initializers.
type Graph struct {
	Name         string
	Symbols      *SymbolTable
	Nodes        []*Node
	Inputs       []*Value
	Outputs      []*Value
	Initializers []*Tensor

	values map[string]*Value
}

// NewGraph creates an empty graph with a fresh symbol table.
func NewGraph(name string) *Graph {
	return NewGraphWithSymbols(name, NewSymbolTable())
}

// NewGraphWithSymbols creates an empty graph sharing an existing symbol table.
// Subgraphs share the table of their parent.
func NewGraphWithSymbols(name string, symbols *SymbolTable) *Graph {
	return &Graph{
		Name:    name,
		Symbols: symbols,
		values:  make(map[string]*Value),
	}
}

// Value returns the value named name, creating it on first use.
// The empty name is the ONNX placeholder for an omitted optional input and is never shared.
func (g *Graph) Value(name string) *Value {
	if name == "" {
		return &Value{}
	}
	if v, ok := g.values[name]; ok {
		return v
	}
	v := &Value{UniqueName: name}
	g.values[name] = v
	return v
}

// LookupValue returns the value named name if it exists.
func (g *Graph) LookupValue(name string) (*Value, bool) {
	v, ok := g.values[name]
	return v, ok
}

// AddNode appends a node of the given operator kind wired to the named values.
func (g *Graph) AddNode(kind string, inputs, outputs []string) *Node {
	n := &Node{Kind: g.Symbols.Intern(kind)}
	for _, name := range inputs {
		n.Inputs = append(n.Inputs, g.Value(name))
	}
	for _, name := range outputs {
		n.Outputs = append(n.Outputs, g.Value(name))
	}
	g.Nodes = append(g.Nodes, n)
	return n
}

// SetAttr sets a node attribute by name, interning the name in the graph's table.
func (g *Graph) SetAttr(n *Node, name string, a Attribute) {
	n.SetAttr(g.Symbols.Intern(name), a)
}

// KindName returns the operator kind of n as a string.
func (g *Graph) KindName(n *Node) string {
	return g.Symbols.Name(n.Kind)
}

// IsGraphOutput reports whether v is one of the graph outputs.
func (g *Graph) IsGraphOutput(v *Value) bool {
	for _, o := range g.Outputs {
		if o == v {
			return true
		}
	}
	return false
}

// TopologicalOrder returns the nodes with every producer before its consumers.
// Ties keep the original node order.
func (g *Graph) TopologicalOrder() []*Node {
	producer := make(map[*Value]int)
	for i, n := range g.Nodes {
		for _, out := range n.Outputs {
			if out.UniqueName != "" {
				producer[out] = i
			}
		}
	}

	visited := make([]bool, len(g.Nodes))
	result := make([]*Node, 0, len(g.Nodes))

	var visit func(i int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true

		// Visit dependencies first
		for _, in := range g.Nodes[i].Inputs {
			if dep, ok := producer[in]; ok {
				visit(dep)
			}
		}

		result = append(result, g.Nodes[i])
	}

	for i := range g.Nodes {
		visit(i)
	}
	return result
}

// Validate checks that no value is produced by more than one node.
func (g *Graph) Validate() error {
	seen := make(map[*Value]*Node)
	for _, n := range g.Nodes {
		for _, out := range n.Outputs {
			if out.UniqueName == "" {
				continue
			}
			if prev, ok := seen[out]; ok && prev != n {
				return fmt.Errorf("value %q produced by more than one node", out.UniqueName)
			}
			seen[out] = n
		}
	}
	return nil
}
