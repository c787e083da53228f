// SPDX-License-Identifier: MIT

package reshape

import (
	"math"
	"sort"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
)

// sortedUnique returns the distinct values of vals ordered by core.Compare
// and, per value, its position in that order.
func sortedUnique(vals []any) ([]any, []int) {
	seen := make(map[string]struct{}, len(vals))
	var uniq []any
	for _, v := range vals {
		k := core.KeyOf(v)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			uniq = append(uniq, v)
		}
	}
	sort.SliceStable(uniq, func(i, j int) bool { return core.Compare(uniq[i], uniq[j]) < 0 })
	pos := make(map[string]int, len(uniq))
	for i, v := range uniq {
		pos[core.KeyOf(v)] = i
	}
	codes := make([]int, len(vals))
	for i, v := range vals {
		codes[i] = pos[core.KeyOf(v)]
	}

	return uniq, codes
}

// UnstackToArray spreads a multi-level series into a dense array with one
// axis per chosen level (all levels by default). Each axis holds the sorted
// distinct values of its level; absent cells are NaN and later rows overwrite
// earlier ones.
func UnstackToArray(sr *frame.Frame, levels ...any) (*array.Array, error) {
	out, _, err := unstack(sr, levels)

	return out, err
}

func unstack(sr *frame.Frame, levels []any) (*array.Array, []labels.Level, error) {
	if !sr.IsSeries() {
		return nil, nil, core.Errorf("UnstackToArray", core.ErrTypeMismatch, "need a series")
	}
	idx := sr.Index()
	if len(levels) == 0 {
		for k := 0; k < idx.NLevels(); k++ {
			levels = append(levels, k)
		}
	}
	shape := make([]int, len(levels))
	axes := make([]labels.Level, len(levels))
	codes := make([][]int, len(levels))
	for j, lv := range levels {
		p, err := idx.LevelPos(lv)
		if err != nil {
			return nil, nil, core.Errorf("UnstackToArray", err, "")
		}
		l := idx.Level(p)
		uniq, c := sortedUnique(l.Values)
		shape[j], codes[j] = len(uniq), c
		axes[j] = labels.Level{Name: l.Name, Values: uniq}
	}
	out := array.NaNs(shape...)
	vals := sr.Values().Flat()
	at := make([]int, len(levels))
	for i, v := range vals {
		for j := range at {
			at[j] = codes[j][i]
		}
		if err := out.Set(v, at...); err != nil {
			return nil, nil, err
		}
	}

	return out, axes, nil
}

// product builds the Cartesian product of level values as one label collection:
// flat for a single level, multi otherwise.
func product(levels []labels.Level) (*labels.Index, error) {
	if len(levels) == 1 {
		return labels.New(levels[0].Values, levels[0].Name), nil
	}
	parts := make([]*labels.Index, len(levels))
	for i, l := range levels {
		parts[i] = labels.New(l.Values, l.Name)
	}

	return labels.Combine(parts, labels.WithDropDuplicates(false), labels.WithDropRedundant(false))
}

// UnstackToDF projects levels of a multi-level series onto rows (indexLevels)
// and columns (columnLevels), defaulting to levels 0 and 1. With symmetric the
// result goes through MakeSymmetric.
func UnstackToDF(sr *frame.Frame, indexLevels, columnLevels []any, symmetric bool) (*frame.Frame, error) {
	if len(indexLevels) == 0 {
		indexLevels = []any{0}
	}
	if len(columnLevels) == 0 {
		columnLevels = []any{1}
	}
	a, axes, err := unstack(sr, append(append([]any{}, indexLevels...), columnLevels...))
	if err != nil {
		return nil, err
	}
	nr := len(indexLevels)
	rows, err := product(axes[:nr])
	if err != nil {
		return nil, err
	}
	cols, err := product(axes[nr:])
	if err != nil {
		return nil, err
	}
	v, err := a.Reshape(rows.Len(), cols.Len())
	if err != nil {
		return nil, err
	}
	df, err := frame.NewDataFrame(v, rows, cols)
	if err != nil {
		return nil, err
	}
	if symmetric {
		return MakeSymmetric(df)
	}

	return df, nil
}

// MakeSymmetric builds a square table over the union of row and column labels
// (rows first, first-occurrence order). Every original value lands at its
// (row, column) cell first; the transposed cell is filled only if still NaN.
// Axis names that differ between rows and columns are paired into a tuple,
// level by level.
func MakeSymmetric(f *frame.Frame) (*frame.Frame, error) {
	df := f.ToFrame()
	idx, cols := df.Index(), df.Columns()
	if idx.NLevels() != cols.NLevels() {
		return nil, core.Errorf("MakeSymmetric", core.ErrShapeMismatch, "index has %d levels, columns %d", idx.NLevels(), cols.NLevels())
	}

	il, cl := idx.Levels(), cols.Levels()
	pos := make(map[string]int)
	var union []any
	add := func(ls []labels.Level, i int) int {
		var v any
		if len(ls) == 1 {
			v = ls[0].Values[i]
		} else {
			t := make(core.Tuple, len(ls))
			for k, l := range ls {
				t[k] = l.Values[i]
			}
			v = t
		}
		k := core.KeyOf(v)
		if p, ok := pos[k]; ok {
			return p
		}
		pos[k] = len(union)
		union = append(union, v)
		return pos[k]
	}
	rowPos := make([]int, idx.Len())
	for i := range rowPos {
		rowPos[i] = add(il, i)
	}
	colPos := make([]int, cols.Len())
	for j := range colPos {
		colPos[j] = add(cl, j)
	}

	names := make([]any, len(il))
	for k := range names {
		if core.Equal(il[k].Name, cl[k].Name) {
			names[k] = il[k].Name
		} else {
			names[k] = core.Tuple{il[k].Name, cl[k].Name}
		}
	}
	lbl := labels.New(union, names[0])
	if len(il) > 1 {
		tuples := make([]core.Tuple, len(union))
		for i, v := range union {
			tuples[i] = v.(core.Tuple)
		}
		var err error
		if lbl, err = labels.FromTuples(tuples, names...); err != nil {
			return nil, err
		}
	} else if idx.IsMulti() && cols.IsMulti() {
		lbl = lbl.ToMulti()
	}

	n := len(union)
	out := array.NaNs(n, n)
	src := df.Values()
	src.Do(func(at []int, v float64) {
		_ = out.Set(v, rowPos[at[0]], colPos[at[1]])
	})
	src.Do(func(at []int, v float64) {
		r, c := colPos[at[1]], rowPos[at[0]]
		if cur, _ := out.At(r, c); math.IsNaN(cur) {
			_ = out.Set(v, r, c)
		}
	})

	return frame.NewDataFrame(out, lbl, lbl)
}
