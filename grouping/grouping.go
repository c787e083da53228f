// SPDX-License-Identifier: MIT

// Package grouping - partition a label collection into contiguous groups.
//
// A group-by rule (By) is resolved against a base index into a key
// index of the same length. Group ids are assigned in order of first
// appearance of each key; the representatives are the distinct keys in that
// same order. NoGroup means per-element behavior everywhere.
package grouping

import (
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
)

type byKind int

const (
	byNone byKind = iota
	byLevels
	byLabels
)

// By describes how elements are grouped.
type By struct {
	kind   byKind
	levels []any
	labels *labels.Index
}

// NoGroup disables grouping.
func NoGroup() By { return By{} }

// ByLevels groups by one or more levels (names or positions) of the base index.
// Panics when called without levels.
func ByLevels(levels ...any) By {
	if len(levels) == 0 {
		panic("grouping: ByLevels needs at least one level")
	}

	return By{kind: byLevels, levels: append([]any(nil), levels...)}
}

// ByLabels uses idx as the group key of each base element.
func ByLabels(idx *labels.Index) By {
	if idx == nil {
		return NoGroup()
	}

	return By{kind: byLabels, labels: idx}
}

// ByValues is ByLabels over an unnamed flat index.
func ByValues(values ...any) By { return ByLabels(labels.New(values, nil)) }

// IsNone reports whether b disables grouping.
func (b By) IsNone() bool { return b.kind == byNone }

// Resolve turns b into the per-element group key index, or nil for NoGroup.
// A single level resolves to a flat index, several to a multi-index.
func Resolve(index *labels.Index, b By) (*labels.Index, error) {
	switch b.kind {
	case byLevels:
		var (
			out *labels.Index
			err error
		)
		if len(b.levels) == 1 {
			out, err = labels.SelectLevel(index, b.levels[0])
		} else {
			out, err = labels.SelectLevels(index, b.levels...)
		}
		if err != nil {
			return nil, core.Errorf("grouping.Resolve", err, "")
		}
		return out, nil
	case byLabels:
		if b.labels.Len() != index.Len() {
			return nil, core.Errorf("grouping.Resolve", core.ErrShapeMismatch, "%d keys for %d elements", b.labels.Len(), index.Len())
		}
		return b.labels, nil
	}

	return nil, nil
}

// Group resolves b and returns the group id of every element together with
// one representative label per group. Under NoGroup every element is its own
// group and the representatives are index itself. With assertSorted a group
// whose members are not adjacent fails with core.ErrUnsorted.
func Group(index *labels.Index, b By, assertSorted bool) ([]int, *labels.Index, error) {
	key, err := Resolve(index, b)
	if err != nil {
		return nil, nil, err
	}
	if key == nil {
		ids := make([]int, index.Len())
		for i := range ids {
			ids[i] = i
		}
		return ids, index, nil
	}
	reps, ids := key.Unique()
	if assertSorted {
		for i := 1; i < len(ids); i++ {
			if ids[i] < ids[i-1] {
				return nil, nil, core.Errorf("grouping.Group", core.ErrUnsorted, "group %d reappears at position %d", ids[i], i)
			}
		}
	}

	return ids, reps, nil
}

// CountPerGroup counts members of each group id. Ids are expected to be
// 0..G-1; a negative id fails with core.ErrInvalidArgument.
func CountPerGroup(ids []int) ([]int, error) {
	counts := []int{}
	for i, id := range ids {
		if id < 0 {
			return nil, core.Errorf("grouping.CountPerGroup", core.ErrInvalidArgument, "negative id %d at %d", id, i)
		}
		for len(counts) <= id {
			counts = append(counts, 0)
		}
		counts[id]++
	}

	return counts, nil
}

// GroupMap lists member positions per group id.
func GroupMap(ids []int) map[int][]int {
	out := make(map[int][]int)
	for i, id := range ids {
		out[id] = append(out[id], i)
	}

	return out
}
