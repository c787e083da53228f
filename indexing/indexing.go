// SPDX-License-Identifier: MIT

package indexing

import (
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
)

// Indexable is an object with one labeled frame and a single selection step.
// Select must apply sel to the frame and to every structure kept parallel to
// its rows or columns.
type Indexable[T any] interface {
	Frame() *frame.Frame
	Select(sel Selection) (T, error)
}

func resolveBoth(f *frame.Frame, rows, cols Key) (Selection, error) {
	r, err := Resolve(f.Index(), rows)
	if err != nil {
		return Selection{}, err
	}
	if f.IsSeries() && cols.kind != keyAll {
		return Selection{}, core.Errorf("indexing", core.ErrTypeMismatch, "series has no column axis")
	}
	c, err := Resolve(f.Columns(), cols)
	if err != nil {
		return Selection{}, err
	}

	return Selection{Rows: r, Cols: c}, nil
}

// ILoc selects by position.
func ILoc[T any](obj Indexable[T], rows, cols Key) (T, error) {
	var zero T
	if !rows.IsPositional() || !cols.IsPositional() {
		return zero, core.Errorf("ILoc", core.ErrInvalidArgument, "label key in positional selection")
	}
	sel, err := resolveBoth(obj.Frame(), rows, cols)
	if err != nil {
		return zero, err
	}

	return obj.Select(sel)
}

// Loc selects by label.
func Loc[T any](obj Indexable[T], rows, cols Key) (T, error) {
	var zero T
	if !rows.IsLabel() || !cols.IsLabel() {
		return zero, core.Errorf("Loc", core.ErrInvalidArgument, "positional key in label selection")
	}
	sel, err := resolveBoth(obj.Frame(), rows, cols)
	if err != nil {
		return zero, err
	}

	return obj.Select(sel)
}

// GetItem selects columns of a data frame, or rows of a series, by label.
func GetItem[T any](obj Indexable[T], key Key) (T, error) {
	if obj.Frame().IsSeries() {
		return Loc(obj, key, All())
	}

	return Loc(obj, All(), key)
}

// XS takes the cross-section where the given levels of axis (0 rows,
// 1 columns) equal key, then drops those levels. Several levels take a
// core.Tuple key.
func XS[T any](obj Indexable[T], key any, levels []any, axis int) (T, error) {
	var zero T
	f := obj.Frame()
	if axis != 0 && axis != 1 {
		return zero, core.Errorf("XS", core.ErrInvalidArgument, "axis %d", axis)
	}
	if axis == 1 && f.IsSeries() {
		return zero, core.Errorf("XS", core.ErrTypeMismatch, "series has no column axis")
	}
	idx := f.Axis(axis)
	if len(levels) == 0 {
		levels = []any{0}
	}
	sub, err := labels.SelectLevels(idx, levels...)
	if err != nil {
		return zero, core.Errorf("XS", err, "")
	}
	want := key
	if len(levels) == 1 {
		want = core.Tuple{key}
	}
	pos, err := sub.Get(want)
	if err != nil {
		return zero, core.Errorf("XS", err, "")
	}
	taken, err := idx.Take(pos)
	if err != nil {
		return zero, core.Errorf("XS", err, "")
	}
	ax := Axis{Positions: pos, Labels: labels.DropLevels(taken, levels...)}
	all, _ := Resolve(f.Axis(1-axis), All())
	if axis == 0 {
		return obj.Select(Selection{Rows: ax, Cols: all})
	}

	return obj.Select(Selection{Rows: all, Cols: ax})
}

// SelectFrame applies sel to a plain frame. Row reductions keep a length-1
// frame; a column reduction returns that column as a series.
func SelectFrame(f *frame.Frame, sel Selection) (*frame.Frame, error) {
	out := f
	var err error
	if !sel.Rows.IsAll() {
		if out, err = out.Take(0, sel.Rows.Positions); err != nil {
			return nil, err
		}
		if sel.Rows.Labels != nil {
			if out, err = out.WithIndex(sel.Rows.Labels); err != nil {
				return nil, err
			}
		}
	}
	if f.IsSeries() || sel.Cols.IsAll() {
		return out, nil
	}
	if out, err = out.Take(1, sel.Cols.Positions); err != nil {
		return nil, err
	}
	if sel.Cols.Labels != nil {
		if out, err = out.WithColumns(sel.Cols.Labels); err != nil {
			return nil, err
		}
	}
	if sel.Cols.Reduce {
		return out.Column(0)
	}

	return out, nil
}
