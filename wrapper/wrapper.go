// SPDX-License-Identifier: MIT

// Package wrapper - re-attach labels to raw array results.
//
// A Wrapper remembers the row labels, column labels, dimensionality and
// (optionally) the sampling frequency of the object a computation started
// from, so that plain arrays produced by numeric kernels can be turned back
// into a series or data frame with correct labels and shape.
//
// Shape contract:
//   - ndim 1 implies exactly one column; the 1-D name is that column label
//     unless it is the sentinel 0 (an unnamed series).
//   - Wrap keeps the full shape: rows must match the index, columns the
//     column labels.
//   - WrapReduced handles per-column reductions (see Reduced).
//
// Frequency resolution order: WithFreq / WithFreqString, then the index's
// intrinsic frequency, then the uniform spacing of a time index. Strings that
// do not parse are reported on the configured slog.Logger and skipped.
package wrapper

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/reshape"
)

// Wrapper stores labeling metadata. It is immutable once built.
type Wrapper struct {
	index   *labels.Index
	columns *labels.Index
	ndim    int
	freq    time.Duration
	freqStr string
	log     *slog.Logger
}

// Option configures New and FromFrame.
type Option func(*Wrapper)

// WithFreq pins the frequency. Panics if d <= 0.
func WithFreq(d time.Duration) Option {
	if d <= 0 {
		panic("wrapper: WithFreq(d<=0) is invalid")
	}

	return func(w *Wrapper) { w.freq = d }
}

// WithFreqString pins the frequency as an offset alias ("1D", "15min" ...).
// It is parsed lazily; a bad string is logged and ignored.
func WithFreqString(s string) Option {
	return func(w *Wrapper) { w.freqStr = s }
}

// WithLogger routes frequency warnings to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("wrapper: WithLogger(nil)")
	}

	return func(w *Wrapper) { w.log = l }
}

// New builds a wrapper. ndim 0 infers 2 when there is more than one column
// and 1 otherwise. Nil columns stand for an unnamed series.
func New(index, columns *labels.Index, ndim int, opts ...Option) (*Wrapper, error) {
	if index == nil {
		return nil, core.Errorf("wrapper.New", core.ErrInvalidArgument, "nil index")
	}
	if columns == nil {
		columns = labels.Of(0)
	}
	if ndim == 0 {
		ndim = 1
		if columns.Len() > 1 {
			ndim = 2
		}
	}
	if ndim != 1 && ndim != 2 {
		return nil, core.Errorf("wrapper.New", core.ErrInvalidArgument, "ndim %d", ndim)
	}
	if ndim == 1 && columns.Len() != 1 {
		return nil, core.Errorf("wrapper.New", core.ErrShapeMismatch, "1-D wrapper with %d columns", columns.Len())
	}
	w := &Wrapper{index: index, columns: columns, ndim: ndim, log: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// FromFrame derives index, columns and ndim from f.
func FromFrame(f *frame.Frame, opts ...Option) (*Wrapper, error) {
	return New(f.Index(), f.Columns(), f.Ndim(), opts...)
}

// Index returns the row labels.
func (w *Wrapper) Index() *labels.Index { return w.index }

// Columns returns the column labels.
func (w *Wrapper) Columns() *labels.Index { return w.columns }

// Ndim returns 1 or 2.
func (w *Wrapper) Ndim() int { return w.ndim }

// Shape is (rows) for ndim 1 and (rows, columns) otherwise.
func (w *Wrapper) Shape() []int {
	if w.ndim == 1 {
		return []int{w.index.Len()}
	}

	return []int{w.index.Len(), w.columns.Len()}
}

// Name is the 1-D name, nil for data frames and unnamed series.
func (w *Wrapper) Name() any {
	if w.ndim != 1 {
		return nil
	}

	return nameOf(w.columns)
}

func nameOf(columns *labels.Index) any {
	if columns == nil || columns.Len() != 1 {
		return nil
	}
	name := columns.At(0)
	if t, ok := name.(core.Tuple); ok && len(t) == 1 {
		name = t[0]
	}
	if core.Equal(name, 0) {
		return nil
	}

	return name
}

// Freq resolves the sampling frequency; false when none is known.
func (w *Wrapper) Freq() (time.Duration, bool) {
	if w.freq > 0 {
		return w.freq, true
	}
	if w.freqStr != "" {
		d, err := ParseFreq(w.freqStr)
		if err == nil {
			return d, true
		}
		w.log.Warn("wrapper: ignoring frequency", slog.String("freq", w.freqStr), slog.Any("error", err))
	}
	if !w.index.IsDatetime() {
		return 0, false
	}
	if d := w.index.Freq(); d > 0 {
		return d, true
	}

	return w.index.InferredFreq()
}

// ToTimeUnits converts a to durations using the resolved frequency.
func (w *Wrapper) ToTimeUnits(a *array.Array) (*array.Array, error) {
	freq, ok := w.Freq()
	if !ok {
		return nil, core.Errorf("Wrapper.ToTimeUnits", core.ErrMissingFrequency, "set WithFreq or use a time index")
	}

	return ToTimeUnits(a, freq), nil
}

// Equal compares labels, ndim and resolved frequency.
func (w *Wrapper) Equal(o *Wrapper) bool {
	if w == nil || o == nil {
		return w == o
	}
	if !w.index.Equal(o.index) || !w.columns.Equal(o.columns) || w.ndim != o.ndim {
		return false
	}
	f1, ok1 := w.Freq()
	f2, ok2 := o.Freq()

	return ok1 == ok2 && f1 == f2
}

// WrapOption overrides metadata for a single Wrap or WrapReduced call.
type WrapOption func(*wrapOptions)

type wrapOptions struct {
	index     *labels.Index
	columns   *labels.Index
	ndim      int
	dtype     *core.DType
	timeUnits bool
}

// WithIndex overrides the row labels.
func WithIndex(idx *labels.Index) WrapOption {
	return func(o *wrapOptions) { o.index = idx }
}

// WithColumns overrides the column labels.
func WithColumns(cols *labels.Index) WrapOption {
	return func(o *wrapOptions) { o.columns = cols }
}

// WithNdim overrides the target dimensionality. Panics unless 1 or 2.
func WithNdim(ndim int) WrapOption {
	if ndim != 1 && ndim != 2 {
		panic("wrapper: WithNdim expects 1 or 2")
	}

	return func(o *wrapOptions) { o.ndim = ndim }
}

// WithDType casts the result.
func WithDType(d core.DType) WrapOption {
	return func(o *wrapOptions) { o.dtype = &d }
}

// WithTimeUnits converts a reduction result to durations (WrapReduced only).
func WithTimeUnits() WrapOption {
	return func(o *wrapOptions) { o.timeUnits = true }
}

func (w *Wrapper) gather(opts []WrapOption) wrapOptions {
	o := wrapOptions{index: w.index, columns: w.columns, ndim: w.ndim}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Wrap labels a 1-D or 2-D array with the stored (or overridden) metadata.
// The array is first brought to the target ndim when that only drops or adds
// a unit column.
func (w *Wrapper) Wrap(a *array.Array, opts ...WrapOption) (*frame.Frame, error) {
	if a.Ndim() != 1 && a.Ndim() != 2 {
		return nil, core.Errorf("Wrapper.Wrap", core.ErrTypeMismatch, "need 1-D or 2-D, got %d-D", a.Ndim())
	}
	o := w.gather(opts)
	a = reshape.SoftToNdim(reshape.Raw(a), o.ndim).Array()
	if a.Dim(0) != o.index.Len() {
		return nil, core.Errorf("Wrapper.Wrap", core.ErrShapeMismatch, "%d rows for index of length %d", a.Dim(0), o.index.Len())
	}
	if a.Ndim() == 2 && a.Dim(1) != o.columns.Len() {
		return nil, core.Errorf("Wrapper.Wrap", core.ErrShapeMismatch, "%d columns for %d labels", a.Dim(1), o.columns.Len())
	}
	if o.dtype != nil {
		a = a.AsType(*o.dtype)
	}
	if a.Ndim() == 1 {
		return frame.NewSeries(a, o.index, nameOf(o.columns))
	}

	return frame.NewDataFrame(a, o.index, o.columns)
}
