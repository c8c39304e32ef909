package canon

// UnionFind partitions value names into equivalence classes. The zero value is not
// usable; create one with NewUnionFind.
type UnionFind struct {
	parent map[string]string
}

// NewUnionFind creates an empty structure in which every name is its own class.
func NewUnionFind() *UnionFind {
	return &UnionFind{parent: make(map[string]string)}
}

// Find returns the representative of name's class.
func (u *UnionFind) Find(name string) string {
	root := name
	for {
		p, ok := u.parent[root]
		if !ok || p == root {
			break
		}
		root = p
	}
	// Path compression.
	for name != root {
		next := u.parent[name]
		u.parent[name] = root
		name = next
	}
	return root
}

// Union merges the classes of keep and drop. The representative of keep's class
// stays the representative.
func (u *UnionFind) Union(keep, drop string) {
	rk, rd := u.Find(keep), u.Find(drop)
	if rk != rd {
		u.parent[rd] = rk
	}
}

// Same reports whether a and b are in the same class.
func (u *UnionFind) Same(a, b string) bool {
	return u.Find(a) == u.Find(b)
}

// Renames returns every name whose representative differs from itself, mapped to
// that representative.
func (u *UnionFind) Renames() map[string]string {
	out := make(map[string]string)
	for name := range u.parent {
		if root := u.Find(name); root != name {
			out[name] = root
		}
	}
	return out
}
