// SPDX-License-Identifier: MIT

// Package indexing - one selection step shared by every access mode.
//
// A Key describes a selection along one axis, either by position (At,
// Positions, Slice, SliceFrom, All) or by label (Label, LabelList,
// LabelSlice). Resolve turns a key into positions exactly once; ILoc, Loc,
// GetItem, XS and ParamLoc all build a Selection this way and hand it to the
// object's single Select method, so every parallel structure an object owns
// is cut with the same positions.
//
// Position slices are half-open; label slices are inclusive on both ends.
package indexing

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
)

type keyKind int

const (
	keyAll keyKind = iota
	keyAt
	keyPositions
	keySlice
	keyLabel
	keyLabelList
	keyLabelSlice
)

// Key selects along one axis. The zero value selects everything.
type Key struct {
	kind      keyKind
	pos       int
	positions []int
	start     int
	stop      int
	open      bool
	label     any
	labels    []any
	from, to  any
}

// All selects the whole axis.
func All() Key { return Key{} }

// At selects one position and reduces the axis.
func At(i int) Key { return Key{kind: keyAt, pos: i} }

// Positions selects positions in the given order.
func Positions(ps ...int) Key {
	return Key{kind: keyPositions, positions: append([]int(nil), ps...)}
}

// Slice selects [start, stop); negative bounds count from the end.
func Slice(start, stop int) Key { return Key{kind: keySlice, start: start, stop: stop} }

// SliceFrom selects [start, end).
func SliceFrom(start int) Key { return Key{kind: keySlice, start: start, open: true} }

// Label selects every position matching v (tuple prefixes match multi-level
// labels). It reduces the axis when it identifies exactly one full label.
func Label(v any) Key { return Key{kind: keyLabel, label: v} }

// LabelList selects the matches of each label, in order.
func LabelList(vs ...any) Key {
	return Key{kind: keyLabelList, labels: append([]any(nil), vs...)}
}

// LabelSlice selects from the first match of from to the last match of to,
// inclusive. A nil bound is open.
func LabelSlice(from, to any) Key { return Key{kind: keyLabelSlice, from: from, to: to} }

// IsPositional reports whether k addresses positions rather than labels.
func (k Key) IsPositional() bool { return k.kind <= keySlice }

// IsLabel reports whether k addresses labels (All counts as both).
func (k Key) IsLabel() bool { return k.kind == keyAll || k.kind >= keyLabel }

// Axis is a key resolved against one axis.
type Axis struct {
	// Positions to keep, in output order.
	Positions []int
	// Reduce drops the axis (exactly one position).
	Reduce bool
	// Labels, when set, replaces the labels taken at Positions.
	Labels *labels.Index

	all bool
}

// IsAll reports whether the axis is kept whole and unchanged.
func (a Axis) IsAll() bool { return a.all && a.Labels == nil }

// Selection is a resolved row and column selection.
type Selection struct {
	Rows Axis
	Cols Axis
}

func span(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func normalize(n, p int) (int, error) {
	q, ok := array.NormalizePos(n, p)
	if !ok {
		return 0, core.Errorf("indexing.Resolve", core.ErrOutOfRange, "position %d for length %d", p, n)
	}

	return q, nil
}

func clip(n, p int) int {
	if p < 0 {
		p += n
	}

	return max(0, min(p, n))
}

// Resolve turns k into positions of idx.
func Resolve(idx *labels.Index, k Key) (Axis, error) {
	n := idx.Len()
	switch k.kind {
	case keyAll:
		return Axis{Positions: span(n), all: true}, nil
	case keyAt:
		p, err := normalize(n, k.pos)
		if err != nil {
			return Axis{}, err
		}
		return Axis{Positions: []int{p}, Reduce: true}, nil
	case keyPositions:
		out := make([]int, len(k.positions))
		for i, p := range k.positions {
			q, err := normalize(n, p)
			if err != nil {
				return Axis{}, err
			}
			out[i] = q
		}
		return Axis{Positions: out}, nil
	case keySlice:
		start, stop := clip(n, k.start), n
		if !k.open {
			stop = clip(n, k.stop)
		}
		if stop < start {
			stop = start
		}
		return Axis{Positions: span(stop - start), all: start == 0 && stop == n}.shift(start), nil
	case keyLabel:
		pos, err := idx.Get(k.label)
		if err != nil {
			return Axis{}, core.Errorf("indexing.Resolve", err, "")
		}
		full := !idx.IsMulti()
		if t, ok := k.label.(core.Tuple); ok && len(t) == idx.NLevels() {
			full = true
		}
		return Axis{Positions: pos, Reduce: full && len(pos) == 1}, nil
	case keyLabelList:
		pos, err := idx.GetAll(k.labels)
		if err != nil {
			return Axis{}, core.Errorf("indexing.Resolve", err, "")
		}
		return Axis{Positions: pos}, nil
	case keyLabelSlice:
		start, stop, err := idx.SliceLocs(k.from, k.to)
		if err != nil {
			return Axis{}, core.Errorf("indexing.Resolve", err, "")
		}
		return Axis{Positions: span(stop - start), all: start == 0 && stop == n}.shift(start), nil
	}

	return Axis{}, core.Errorf("indexing.Resolve", core.ErrInvalidArgument, "unknown key")
}

func (a Axis) shift(by int) Axis {
	for i := range a.Positions {
		a.Positions[i] += by
	}

	return a
}
