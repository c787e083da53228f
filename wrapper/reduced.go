// SPDX-License-Identifier: MIT

package wrapper

import (
	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
)

// Reduced is the outcome of WrapReduced: either one value or a labeled frame.
type Reduced struct {
	value any
	frame *frame.Frame
}

// IsScalar reports whether the reduction collapsed to a single value.
func (r Reduced) IsScalar() bool { return r.frame == nil }

// Value returns the scalar (float64, int64, bool or time.Duration; nil for NaT).
func (r Reduced) Value() any { return r.value }

// Frame returns the labeled result (nil for scalars).
func (r Reduced) Frame() *frame.Frame { return r.frame }

// WrapReduced wraps the result of a per-column reduction.
//
//	a rank | wrapper ndim 1                   | wrapper ndim 2
//	-------+----------------------------------+---------------------------------
//	0      | scalar                           | scalar
//	1      | len 1: scalar; else series named | series, one value per column,
//	       | after the column, WithIndex rows | indexed by WithIndex or columns
//	2      | first column as that series      | frame (WithIndex rows, columns)
//
// WithColumns replaces the stored columns. WithTimeUnits converts values to
// durations and fails with core.ErrMissingFrequency when no frequency resolves.
func (w *Wrapper) WrapReduced(a *array.Array, opts ...WrapOption) (Reduced, error) {
	o := wrapOptions{columns: w.columns}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeUnits {
		var err error
		if a, err = w.ToTimeUnits(a); err != nil {
			return Reduced{}, core.Errorf("Wrapper.WrapReduced", err, "")
		}
	} else if o.dtype != nil {
		a = a.AsType(*o.dtype)
	}

	var (
		f   *frame.Frame
		err error
	)
	switch a.Ndim() {
	case 0:
		v, _ := a.Value()
		return Reduced{value: v}, nil
	case 1:
		if w.ndim == 1 {
			if a.Dim(0) == 1 {
				v, _ := a.Value(0)
				return Reduced{value: v}, nil
			}
			f, err = frame.NewSeries(a, o.index, nameOf(o.columns))
			break
		}
		idx := o.index
		if idx == nil {
			idx = o.columns
		}
		f, err = frame.NewSeries(a, idx, nil)
	case 2:
		if w.ndim == 1 {
			col, serr := a.Select(1, 0)
			if serr != nil {
				return Reduced{}, core.Errorf("Wrapper.WrapReduced", serr, "")
			}
			f, err = frame.NewSeries(col, o.index, nameOf(o.columns))
			break
		}
		f, err = frame.NewDataFrame(a, o.index, o.columns)
	default:
		return Reduced{}, core.Errorf("Wrapper.WrapReduced", core.ErrTypeMismatch, "%d-D result", a.Ndim())
	}
	if err != nil {
		return Reduced{}, core.Errorf("Wrapper.WrapReduced", err, "")
	}

	return Reduced{frame: f}, nil
}
