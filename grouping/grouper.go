// SPDX-License-Identifier: MIT

package grouping

import (
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
)

// Grouper binds a base index to its resolved grouping. Immutable.
type Grouper struct {
	index   *labels.Index
	groupBy *labels.Index // nil when ungrouped
	ids     []int
	reps    *labels.Index
}

// NewGrouper resolves b against index once.
func NewGrouper(index *labels.Index, b By) (*Grouper, error) {
	if index == nil {
		return nil, core.Errorf("grouping.NewGrouper", core.ErrInvalidArgument, "nil index")
	}
	key, err := Resolve(index, b)
	if err != nil {
		return nil, err
	}

	return fromKey(index, key), nil
}

func fromKey(index, key *labels.Index) *Grouper {
	g := &Grouper{index: index, groupBy: key}
	if key != nil {
		g.reps, g.ids = key.Unique()
	}

	return g
}

// Index returns the base index.
func (g *Grouper) Index() *labels.Index { return g.index }

// GroupBy returns the per-element group keys, nil when ungrouped.
func (g *Grouper) GroupBy() *labels.Index { return g.groupBy }

// IsGrouped reports whether a grouping is active.
func (g *Grouper) IsGrouped() bool { return g.groupBy != nil }

// ResolveGroupBy returns the keys of override, or the stored keys when
// override is NoGroup.
func (g *Grouper) ResolveGroupBy(override By) (*labels.Index, error) {
	if override.IsNone() {
		return g.groupBy, nil
	}

	return Resolve(g.index, override)
}

// Regroup returns a grouper over the same base index grouped by b.
func (g *Grouper) Regroup(b By) (*Grouper, error) { return NewGrouper(g.index, b) }

// GroupArr returns the group id of every element, nil when ungrouped.
func (g *Grouper) GroupArr() []int {
	if g.groupBy == nil {
		return nil
	}
	out := make([]int, len(g.ids))
	copy(out, g.ids)

	return out
}

// NewIndex returns one label per group: the representatives, or the base
// index when ungrouped.
func (g *Grouper) NewIndex() *labels.Index {
	if g.groupBy == nil {
		return g.index
	}

	return g.reps
}

// GroupCounts returns the member count per group (all ones when ungrouped).
func (g *Grouper) GroupCounts() []int {
	if g.groupBy == nil {
		out := make([]int, g.index.Len())
		for i := range out {
			out[i] = 1
		}
		return out
	}
	counts, _ := CountPerGroup(g.ids)

	return counts
}

// AssertSorted fails with core.ErrUnsorted unless every group is contiguous.
func (g *Grouper) AssertSorted() error {
	if g.groupBy == nil {
		return nil
	}
	_, _, err := Group(g.index, ByLabels(g.groupBy), true)

	return err
}

// Select keeps the elements at positions (negative counts from the end), in
// that order. Group ids are renumbered by first appearance among survivors;
// groups left without members disappear from NewIndex.
func (g *Grouper) Select(positions []int) (*Grouper, error) {
	idx, err := g.index.Take(positions)
	if err != nil {
		return nil, core.Errorf("Grouper.Select", err, "")
	}
	if g.groupBy == nil {
		return fromKey(idx, nil), nil
	}
	key, err := g.groupBy.Take(positions)
	if err != nil {
		return nil, core.Errorf("Grouper.Select", err, "")
	}

	return fromKey(idx, key), nil
}

// Equal compares base indexes and group keys.
func (g *Grouper) Equal(o *Grouper) bool {
	if g == nil || o == nil {
		return g == o
	}
	if !g.index.Equal(o.index) {
		return false
	}
	if g.groupBy == nil || o.groupBy == nil {
		return g.groupBy == o.groupBy
	}

	return g.groupBy.Equal(o.groupBy)
}
