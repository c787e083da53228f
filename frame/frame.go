// SPDX-License-Identifier: MIT

// Package frame - labeled 1-D (series) and 2-D (data frame) values.
//
// Purpose:
//   - Pair an array.Array with row labels and, for 2-D values, column labels.
//   - Give a series a single name; its one-column form uses that name as the
//     only column label, or 0 when unnamed.
//
// Notes:
//   - Frames never copy on construction; treat Values() as read-only.
//   - Derivations (Take, ToFrame, Column, With*) return new frames.
package frame

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/labels"
)

// Frame is a labeled 1-D or 2-D value.
type Frame struct {
	values  *array.Array
	index   *labels.Index
	columns *labels.Index // nil for a series
	name    any           // series only
}

var _ fmt.Stringer = (*Frame)(nil)

// NewSeries labels a 1-D array. A nil index becomes Range(len).
func NewSeries(values *array.Array, index *labels.Index, name any) (*Frame, error) {
	if values.Ndim() != 1 {
		return nil, core.Errorf("NewSeries", core.ErrShapeMismatch, "need 1-D values, got shape %v", values.Shape())
	}
	n := values.Dim(0)
	if index == nil {
		index = labels.Range(n)
	}
	if index.Len() != n {
		return nil, core.Errorf("NewSeries", core.ErrShapeMismatch, "index of length %d for %d values", index.Len(), n)
	}

	return &Frame{values: values, index: index, name: name}, nil
}

// NewDataFrame labels a 2-D array. Nil labels become default ranges.
func NewDataFrame(values *array.Array, index, columns *labels.Index) (*Frame, error) {
	if values.Ndim() != 2 {
		return nil, core.Errorf("NewDataFrame", core.ErrShapeMismatch, "need 2-D values, got shape %v", values.Shape())
	}
	rows, cols := values.Dim(0), values.Dim(1)
	if index == nil {
		index = labels.Range(rows)
	}
	if columns == nil {
		columns = labels.Range(cols)
	}
	if index.Len() != rows {
		return nil, core.Errorf("NewDataFrame", core.ErrShapeMismatch, "index of length %d for %d rows", index.Len(), rows)
	}
	if columns.Len() != cols {
		return nil, core.Errorf("NewDataFrame", core.ErrShapeMismatch, "columns of length %d for %d columns", columns.Len(), cols)
	}

	return &Frame{values: values, index: index, columns: columns}, nil
}

// SeriesOf is a convenience constructor over float values.
func SeriesOf(vals []float64, index *labels.Index, name any) (*Frame, error) {
	return NewSeries(array.Vector(vals...), index, name)
}

// DataFrameOf is a convenience constructor over rows.
func DataFrameOf(rows [][]float64, index, columns *labels.Index) (*Frame, error) {
	a, err := array.FromRows(rows)
	if err != nil {
		return nil, err
	}

	return NewDataFrame(a, index, columns)
}

// Ndim is 1 for a series and 2 for a data frame.
func (f *Frame) Ndim() int { return f.values.Ndim() }

// IsSeries reports whether f is 1-D.
func (f *Frame) IsSeries() bool { return f.columns == nil }

// Values returns the underlying array.
func (f *Frame) Values() *array.Array { return f.values }

// Shape returns the value shape.
func (f *Frame) Shape() []int { return f.values.Shape() }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.index.Len() }

// Index returns the row labels.
func (f *Frame) Index() *labels.Index { return f.index }

// Name returns the series name (nil for data frames).
func (f *Frame) Name() any { return f.name }

// Columns returns the column labels. A series reports its one-column form:
// its name, or 0 when unnamed.
func (f *Frame) Columns() *labels.Index {
	if f.columns != nil {
		return f.columns
	}
	if f.name == nil {
		return labels.Of(0)
	}

	return labels.Of(f.name)
}

// Axis returns the labels of axis 0 (rows) or 1 (columns).
func (f *Frame) Axis(axis int) *labels.Index {
	if axis == 0 {
		return f.index
	}

	return f.Columns()
}

// ToFrame returns f as a data frame; a series becomes one column.
func (f *Frame) ToFrame() *Frame {
	if f.columns != nil {
		return f
	}
	v, _ := f.values.Reshape(f.values.Dim(0), 1)

	return &Frame{values: v, index: f.index, columns: f.Columns()}
}

// Column returns column j as a series named after its label.
func (f *Frame) Column(j int) (*Frame, error) {
	if f.columns == nil {
		if j != 0 && j != -1 {
			return nil, core.Errorf("Frame.Column", core.ErrOutOfRange, "column %d of a series", j)
		}
		return f, nil
	}
	v, err := f.values.Select(1, j)
	if err != nil {
		return nil, core.Errorf("Frame.Column", err, "")
	}
	p, _ := array.NormalizePos(f.columns.Len(), j)

	return &Frame{values: v, index: f.index, name: f.columns.At(p)}, nil
}

// Take gathers positions along axis (0 rows, 1 columns). Taking columns of a
// series is only valid for position 0 and returns a data frame.
func (f *Frame) Take(axis int, positions []int) (*Frame, error) {
	switch axis {
	case 0:
		v, err := f.values.Take(0, positions)
		if err != nil {
			return nil, core.Errorf("Frame.Take", err, "")
		}
		idx, err := f.index.Take(positions)
		if err != nil {
			return nil, core.Errorf("Frame.Take", err, "")
		}
		return &Frame{values: v, index: idx, columns: f.columns, name: f.name}, nil
	case 1:
		g := f.ToFrame()
		v, err := g.values.Take(1, positions)
		if err != nil {
			return nil, core.Errorf("Frame.Take", err, "")
		}
		cols, err := g.columns.Take(positions)
		if err != nil {
			return nil, core.Errorf("Frame.Take", err, "")
		}
		return &Frame{values: v, index: g.index, columns: cols}, nil
	}

	return nil, core.Errorf("Frame.Take", core.ErrInvalidArgument, "axis %d", axis)
}

// WithIndex returns a copy with new row labels of equal length.
func (f *Frame) WithIndex(idx *labels.Index) (*Frame, error) {
	if idx.Len() != f.Len() {
		return nil, core.Errorf("Frame.WithIndex", core.ErrShapeMismatch, "index of length %d for %d rows", idx.Len(), f.Len())
	}
	out := *f
	out.index = idx

	return &out, nil
}

// WithColumns returns a copy with new column labels of equal length.
func (f *Frame) WithColumns(cols *labels.Index) (*Frame, error) {
	g := f.ToFrame()
	if cols.Len() != g.values.Dim(1) {
		return nil, core.Errorf("Frame.WithColumns", core.ErrShapeMismatch, "columns of length %d for %d columns", cols.Len(), g.values.Dim(1))
	}
	out := *g
	out.columns = cols

	return &out, nil
}

// WithName renames a series (no-op on data frames).
func (f *Frame) WithName(name any) *Frame {
	out := *f
	if out.columns == nil {
		out.name = name
	}

	return &out
}

// WithValues swaps the values, keeping labels; the shape must match.
func (f *Frame) WithValues(values *array.Array) (*Frame, error) {
	if !array.SameShape(values.Shape(), f.Shape()) {
		return nil, core.Errorf("Frame.WithValues", core.ErrShapeMismatch, "shape %v, want %v", values.Shape(), f.Shape())
	}
	out := *f
	out.values = values

	return &out, nil
}

// Equal compares values (NaN-aware, dtype included), labels and names.
func (f *Frame) Equal(g *Frame) bool {
	if f == nil || g == nil {
		return f == g
	}
	if f.IsSeries() != g.IsSeries() || !f.values.Equal(g.values) || !f.index.Equal(g.index) {
		return false
	}
	if f.IsSeries() {
		return core.Equal(f.name, g.name)
	}

	return f.columns.Equal(g.columns)
}

// String renders labels and values on separate lines.
func (f *Frame) String() string {
	var sb strings.Builder
	if f.IsSeries() {
		fmt.Fprintf(&sb, "Series(name=%s)\n", core.Format(f.name))
	} else {
		fmt.Fprintf(&sb, "DataFrame(columns=%s)\n", f.columns)
	}
	fmt.Fprintf(&sb, "index=%s\n", f.index)
	sb.WriteString(f.values.String())

	return sb.String()
}
