package canon

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/born-ml/cse/internal/cse"
	"github.com/born-ml/cse/internal/ir"
	"github.com/born-ml/cse/internal/parallel"
)

// TensorGroup is a set of initializers holding the same constant.
// Canonical is the first of them in graph order.
type TensorGroup struct {
	Canonical  *ir.Tensor
	Duplicates []*ir.Tensor
}

// DedupInitializers groups g's initializers by value. Only groups with at least one
// duplicate are returned, in graph order of their canonical tensor. Initializers that
// cannot be hashed are left out and their errors aggregated.
func (x *Index) DedupInitializers(g *ir.Graph) ([]TensorGroup, error) {
	inits := g.Initializers
	hashes := make([]uint64, len(inits))
	hashErrs := make([]error, len(inits))
	usable := make([]bool, len(inits))

	parallel.For(len(inits), func(i int) {
		t := inits[i]
		if t == nil || t.Segmented {
			return
		}
		if x.opts.MaxTensorElements > 0 && t.NumElements() > x.opts.MaxTensorElements {
			return
		}
		h, err := cse.TensorHash(t)
		if err != nil {
			hashErrs[i] = fmt.Errorf("initializer %q: %w", t.Name, err)
			return
		}
		hashes[i], usable[i] = h, true
	}, x.opts.Parallel)

	var errs *multierror.Error
	for _, err := range hashErrs {
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	buckets := make(map[uint64][]int) // hash -> indexes into groups
	var groups []TensorGroup
	for i, t := range inits {
		if !usable[i] {
			continue
		}
		found := false
		for _, gi := range buckets[hashes[i]] {
			eq, err := cse.TensorEqual(groups[gi].Canonical, t)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("initializer %q: %w", t.Name, err))
				break
			}
			if eq {
				groups[gi].Duplicates = append(groups[gi].Duplicates, t)
				found = true
				break
			}
		}
		if !found {
			buckets[hashes[i]] = append(buckets[hashes[i]], len(groups))
			groups = append(groups, TensorGroup{Canonical: t})
		}
	}

	result := groups[:0]
	for _, grp := range groups {
		if len(grp.Duplicates) > 0 {
			result = append(result, grp)
			x.logger.Debug("duplicate initializers", "canonical", grp.Canonical.Name, "count", len(grp.Duplicates))
		}
	}
	return result, errs.ErrorOrNil()
}
