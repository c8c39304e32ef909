package canon

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/born-ml/cse/internal/cse"
	"github.com/born-ml/cse/internal/ir"
	"github.com/born-ml/cse/internal/parallel"
)

// Duplicate records that Node computes the same values as Canonical.
type Duplicate struct {
	Node      *ir.Node
	Canonical *ir.Node

	// KeepsGraphOutput is set when one of Node's outputs is a graph output. The caller
	// cannot simply drop such a node; it has to keep the output name alive.
	KeepsGraphOutput bool
}

// Skipped records a node that was not considered for deduplication.
type Skipped struct {
	Node   *ir.Node
	Reason string
}

// Report is the result of scanning a graph.
type Report struct {
	Duplicates []Duplicate
	Skipped    []Skipped

	// Values maps every value name to the equivalence class found by the scan.
	Values *UnionFind
}

// CanonicalName returns the name consumers of name should read from.
func (r *Report) CanonicalName(name string) string {
	return r.Values.Find(name)
}

// Index deduplicates nodes and constant tensors of a graph.
type Index struct {
	opts   Options
	logger hclog.Logger
}

// New creates an Index.
func New(opts Options) *Index {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Index{opts: opts, logger: logger.Named("cse")}
}

// Scan walks g in topological order and reports every node that duplicates an earlier
// one. Nodes that cannot be hashed are skipped; their errors are aggregated into the
// returned error, which does not invalidate the report.
func (x *Index) Scan(g *ir.Graph) (*Report, error) {
	order := g.TopologicalOrder()
	reasons := x.screen(order)

	report := &Report{Values: NewUnionFind()}
	buckets := make(map[uint64][]*ir.Node) // hash -> canonicalized nodes
	origin := make(map[*ir.Node]*ir.Node)  // canonicalized -> original
	var errs *multierror.Error

	for i, n := range order {
		if reasons[i] != "" {
			x.skip(report, g, n, reasons[i])
			continue
		}

		shadow := x.canonicalize(n, report.Values)
		h, err := cse.NodeHash(shadow)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("node %q (%s): %w", n.Name, g.KindName(n), err))
			x.skip(report, g, n, err.Error())
			continue
		}

		match, err := x.probe(buckets[h], shadow)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("node %q (%s): %w", n.Name, g.KindName(n), err))
			x.skip(report, g, n, err.Error())
			continue
		}
		if match == nil {
			buckets[h] = append(buckets[h], shadow)
			origin[shadow] = n
			continue
		}

		canonical := origin[match]
		report.Duplicates = append(report.Duplicates, Duplicate{
			Node:             n,
			Canonical:        canonical,
			KeepsGraphOutput: producesGraphOutput(g, n),
		})
		for j, out := range n.Outputs {
			keep := canonical.Outputs[j].UniqueName
			if keep == "" || out.UniqueName == "" {
				continue
			}
			report.Values.Union(keep, out.UniqueName)
		}
		x.logger.Debug("duplicate node", "op", g.KindName(n), "node", n.Name, "canonical", canonical.Name)
	}

	x.logger.Info("scan complete",
		"graph", g.Name,
		"nodes", len(order),
		"duplicates", len(report.Duplicates),
		"skipped", len(report.Skipped),
	)
	return report, errs.ErrorOrNil()
}

// screen decides eligibility for every node up front. An empty reason means eligible.
func (x *Index) screen(nodes []*ir.Node) []string {
	reasons := make([]string, len(nodes))
	parallel.For(len(nodes), func(i int) {
		reasons[i] = x.ineligible(nodes[i])
	}, x.opts.Parallel)
	return reasons
}

func (x *Index) ineligible(n *ir.Node) string {
	limit := x.opts.MaxTensorElements
	for _, name := range n.AttributeNames() {
		var tensors []*ir.Tensor
		switch a := n.Attr(name).(type) {
		case ir.TensorAttr:
			tensors = []*ir.Tensor{a.Tensor}
		case ir.TensorsAttr:
			tensors = a
		}
		for _, t := range tensors {
			switch {
			case t == nil:
				return "tensor attribute without value"
			case t.Segmented:
				return "segmented tensor attribute"
			case limit > 0 && t.NumElements() > limit:
				return fmt.Sprintf("tensor attribute with %d elements exceeds limit %d", t.NumElements(), limit)
			}
		}
	}
	if !cse.Supported(n) {
		return "subgraph, type or sparse tensor attribute"
	}
	return ""
}

// canonicalize returns n with each input replaced by its class representative.
// n itself is returned when nothing changes.
func (x *Index) canonicalize(n *ir.Node, values *UnionFind) *ir.Node {
	var inputs []*ir.Value
	for i, in := range n.Inputs {
		root := values.Find(in.UniqueName)
		if root == in.UniqueName {
			continue
		}
		if inputs == nil {
			inputs = make([]*ir.Value, len(n.Inputs))
			copy(inputs, n.Inputs)
		}
		inputs[i] = &ir.Value{UniqueName: root}
	}
	if inputs == nil {
		return n
	}
	return n.CloneWithInputs(inputs)
}

// probe returns the first candidate equal to n, or nil.
func (x *Index) probe(candidates []*ir.Node, n *ir.Node) (*ir.Node, error) {
	for _, c := range candidates {
		eq, err := cse.NodeEqual(c, n)
		if err != nil {
			return nil, err
		}
		if eq {
			return c, nil
		}
	}
	return nil, nil
}

func (x *Index) skip(r *Report, g *ir.Graph, n *ir.Node, reason string) {
	r.Skipped = append(r.Skipped, Skipped{Node: n, Reason: reason})
	x.logger.Trace("node skipped", "op", g.KindName(n), "node", n.Name, "reason", reason)
}

func producesGraphOutput(g *ir.Graph, n *ir.Node) bool {
	for _, out := range n.Outputs {
		if g.IsGraphOutput(out) {
			return true
		}
	}
	return false
}
