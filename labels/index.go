// SPDX-License-Identifier: MIT

// Package labels - ordered, possibly multi-level label collections.
//
// Purpose:
//   - Model row/column identifiers as an Index of one or more named Levels.
//   - Keep every transformation pure: methods and functions return new values.
//   - Distinguish a flat index from a one-level multi-index (IsMulti).
//
// Determinism:
//   - Level order and value order are always preserved; uniqueness helpers keep
//     first-occurrence order and never iterate maps for output.
//
// Notes:
//   - An index is "default" iff it is flat, unnamed and holds exactly 0..n-1.
//     Repeat and Tile elide such indexes into a resized Range.
//   - Datetime indexes may carry an intrinsic sampling frequency.
package labels

import (
	"strings"
	"time"

	"github.com/katalvlaran/vectra/array"
	"github.com/katalvlaran/vectra/core"
)

// Level is one named dimension of an Index.
type Level struct {
	Name   any
	Values []any
}

// Index is an immutable ordered label collection.
type Index struct {
	levels []Level
	multi  bool
	freq   time.Duration
}

// ---------- constructors ----------

// New returns a flat index holding a copy of values.
func New(values []any, name any) *Index {
	return &Index{levels: []Level{{Name: name, Values: append([]any(nil), values...)}}}
}

// Of returns an unnamed flat index of the given values.
func Of(values ...any) *Index { return New(values, nil) }

// Range returns the default index 0..n-1.
func Range(n int) *Index {
	vals := make([]any, n)
	for i := range vals {
		vals[i] = i
	}

	return &Index{levels: []Level{{Values: vals}}}
}

// FromLevels builds a multi-index from parallel levels of equal length.
func FromLevels(levels ...Level) (*Index, error) {
	if len(levels) == 0 {
		return nil, core.Errorf("FromLevels", core.ErrInvalidArgument, "need at least one level")
	}
	n := len(levels[0].Values)
	out := &Index{multi: true, levels: make([]Level, len(levels))}
	for i, l := range levels {
		if len(l.Values) != n {
			return nil, core.Errorf("FromLevels", core.ErrShapeMismatch, "level %d has %d values, want %d", i, len(l.Values), n)
		}
		out.levels[i] = Level{Name: l.Name, Values: append([]any(nil), l.Values...)}
	}

	return out, nil
}

// FromArrays builds a multi-index from value arrays and optional names.
func FromArrays(arrays [][]any, names ...any) (*Index, error) {
	levels := make([]Level, len(arrays))
	for i, a := range arrays {
		levels[i].Values = a
		if i < len(names) {
			levels[i].Name = names[i]
		}
	}

	return FromLevels(levels...)
}

// FromTuples builds a multi-index from row tuples of equal width.
func FromTuples(tuples []core.Tuple, names ...any) (*Index, error) {
	width := len(names)
	if len(tuples) > 0 {
		width = len(tuples[0])
	}
	arrays := make([][]any, width)
	for k := range arrays {
		arrays[k] = make([]any, len(tuples))
	}
	for i, t := range tuples {
		if len(t) != width {
			return nil, core.Errorf("FromTuples", core.ErrShapeMismatch, "tuple %d has %d values, want %d", i, len(t), width)
		}
		for k, v := range t {
			arrays[k][i] = v
		}
	}

	return FromArrays(arrays, names...)
}

// Datetime returns a flat time index with an intrinsic frequency (0 = none).
func Datetime(times []time.Time, name any, freq time.Duration) *Index {
	vals := make([]any, len(times))
	for i, t := range times {
		vals[i] = t
	}
	idx := New(vals, name)
	idx.freq = freq

	return idx
}

// DateRange returns n timestamps from start spaced by freq, carrying freq.
func DateRange(start time.Time, n int, freq time.Duration) *Index {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * freq)
	}

	return Datetime(times, nil, freq)
}

// FromValues builds one label per entry of values: the value itself when all
// of its elements are equal, "mix_<i>" otherwise. Entries may be scalars,
// []float64 or *array.Array.
func FromValues(values []any, name any) *Index {
	out := make([]any, len(values))
	for i, v := range values {
		var flat []float64
		switch x := v.(type) {
		case *array.Array:
			flat = x.Flat()
		case []float64:
			flat = x
		default:
			out[i] = v
			continue
		}
		if len(flat) == 0 {
			out[i] = mixLabel(i)
			continue
		}
		same := true
		for _, f := range flat[1:] {
			if !core.Equal(f, flat[0]) {
				same = false
				break
			}
		}
		if same {
			out[i] = flat[0]
		} else {
			out[i] = mixLabel(i)
		}
	}

	return New(out, name)
}

func mixLabel(i int) string { return "mix_" + core.Format(i) }

// ---------- inspection ----------

// Len returns the number of labels.
func (x *Index) Len() int {
	if len(x.levels) == 0 {
		return 0
	}

	return len(x.levels[0].Values)
}

// NLevels returns the number of levels.
func (x *Index) NLevels() int { return len(x.levels) }

// IsMulti reports whether the index is a multi-index (even with one level).
func (x *Index) IsMulti() bool { return x.multi }

// Name returns the name of a flat index; multi-indexes have no single name.
func (x *Index) Name() any {
	if x.multi {
		return nil
	}

	return x.levels[0].Name
}

// Names returns one name per level.
func (x *Index) Names() []any {
	out := make([]any, len(x.levels))
	for i, l := range x.levels {
		out[i] = l.Name
	}

	return out
}

// Level returns a copy of level i.
func (x *Index) Level(i int) Level {
	l := x.levels[i]

	return Level{Name: l.Name, Values: append([]any(nil), l.Values...)}
}

// Levels returns copies of all levels.
func (x *Index) Levels() []Level {
	out := make([]Level, len(x.levels))
	for i := range x.levels {
		out[i] = x.Level(i)
	}

	return out
}

// LevelIndex returns level i as a flat index.
func (x *Index) LevelIndex(i int) *Index {
	l := x.levels[i]

	return New(l.Values, l.Name)
}

// At returns label i: a value for flat indexes, a core.Tuple for multi-indexes.
func (x *Index) At(i int) any {
	if !x.multi {
		return x.levels[0].Values[i]
	}
	t := make(core.Tuple, len(x.levels))
	for k, l := range x.levels {
		t[k] = l.Values[i]
	}

	return t
}

// Values returns every label (see At).
func (x *Index) Values() []any {
	out := make([]any, x.Len())
	for i := range out {
		out[i] = x.At(i)
	}

	return out
}

// Freq returns the intrinsic sampling frequency (0 when absent).
func (x *Index) Freq() time.Duration { return x.freq }

// InferredFreq returns the uniform spacing of a time index with at least
// three labels, or false when values are not uniformly spaced timestamps.
func (x *Index) InferredFreq() (time.Duration, bool) {
	if x.multi || x.Len() < 3 {
		return 0, false
	}
	vals := x.levels[0].Values
	prev, ok := vals[0].(time.Time)
	if !ok {
		return 0, false
	}
	var step time.Duration
	for i := 1; i < len(vals); i++ {
		t, ok := vals[i].(time.Time)
		if !ok {
			return 0, false
		}
		d := t.Sub(prev)
		if d <= 0 || (i > 1 && d != step) {
			return 0, false
		}
		step, prev = d, t
	}

	return step, true
}

// IsDatetime reports whether every label is a time.Time.
func (x *Index) IsDatetime() bool {
	if x.multi {
		return false
	}
	for _, v := range x.levels[0].Values {
		if _, ok := v.(time.Time); !ok {
			return false
		}
	}

	return true
}

// IsDefault reports whether the index is flat, unnamed and exactly 0..n-1.
func (x *Index) IsDefault() bool {
	if x.multi || x.levels[0].Name != nil {
		return false
	}

	return isRange(x.levels[0].Values)
}

func isRange(vals []any) bool {
	for i, v := range vals {
		n, ok := core.AsInt(v)
		if !ok || n != i {
			return false
		}
	}

	return true
}

// Equal reports structural equality: same kind, names and labels.
func (x *Index) Equal(y *Index) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.multi != y.multi || len(x.levels) != len(y.levels) {
		return false
	}
	for k := range x.levels {
		if !core.Equal(x.levels[k].Name, y.levels[k].Name) ||
			!core.EqualSlices(x.levels[k].Values, y.levels[k].Values) {
			return false
		}
	}

	return true
}

// EqualValues compares labels only, ignoring names and kind
// (a one-level multi-index equals the flat index of its tuples' values).
func (x *Index) EqualValues(y *Index) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.Len() != y.Len() || x.NLevels() != y.NLevels() {
		return false
	}
	for k := range x.levels {
		if !core.EqualSlices(x.levels[k].Values, y.levels[k].Values) {
			return false
		}
	}

	return true
}

// keyAt is the canonical key of label i.
func (x *Index) keyAt(i int) string {
	if len(x.levels) == 1 {
		return core.KeyOf(x.levels[0].Values[i])
	}
	var sb strings.Builder
	for k, l := range x.levels {
		if k > 0 {
			sb.WriteByte('\x1e')
		}
		sb.WriteString(core.KeyOf(l.Values[i]))
	}

	return sb.String()
}

// HasDuplicates reports whether any label occurs more than once.
func (x *Index) HasDuplicates() bool {
	seen := make(map[string]struct{}, x.Len())
	for i := 0; i < x.Len(); i++ {
		k := x.keyAt(i)
		if _, ok := seen[k]; ok {
			return true
		}
		seen[k] = struct{}{}
	}

	return false
}

// Unique returns the distinct labels in first-occurrence order and, for each
// original position, the position of its label in the result.
func (x *Index) Unique() (*Index, []int) {
	seen := make(map[string]int, x.Len())
	codes := make([]int, x.Len())
	var keep []int
	for i := 0; i < x.Len(); i++ {
		k := x.keyAt(i)
		c, ok := seen[k]
		if !ok {
			c = len(keep)
			seen[k] = c
			keep = append(keep, i)
		}
		codes[i] = c
	}
	u, _ := x.Take(keep)

	return u, codes
}

// ---------- derivation ----------

// Take gathers labels at positions; negative positions count from the end.
// The intrinsic frequency is dropped.
func (x *Index) Take(positions []int) (*Index, error) {
	n := x.Len()
	out := &Index{multi: x.multi, levels: make([]Level, len(x.levels))}
	for k, l := range x.levels {
		vals := make([]any, len(positions))
		for j, p := range positions {
			q, ok := array.NormalizePos(n, p)
			if !ok {
				return nil, core.Errorf("Index.Take", core.ErrOutOfRange, "position %d for length %d", p, n)
			}
			vals[j] = l.Values[q]
		}
		out.levels[k] = Level{Name: l.Name, Values: vals}
	}

	return out, nil
}

// Slice returns labels [start, stop) keeping the intrinsic frequency.
// Bounds are clipped like Go slicing of a valid range.
func (x *Index) Slice(start, stop int) *Index {
	n := x.Len()
	start, stop = max(0, min(start, n)), max(0, min(stop, n))
	if stop < start {
		stop = start
	}
	out := &Index{multi: x.multi, freq: x.freq, levels: make([]Level, len(x.levels))}
	for k, l := range x.levels {
		out.levels[k] = Level{Name: l.Name, Values: append([]any(nil), l.Values[start:stop]...)}
	}

	return out
}

// WithName returns a flat copy named name. Multi-indexes take one name per
// level from a core.Tuple.
func (x *Index) WithName(name any) *Index {
	out := x.clone()
	if t, ok := name.(core.Tuple); ok && x.multi && len(t) == len(x.levels) {
		for k := range out.levels {
			out.levels[k].Name = t[k]
		}
		return out
	}
	if !x.multi {
		out.levels[0].Name = name
	}

	return out
}

// WithNames returns a copy with one name per level.
func (x *Index) WithNames(names ...any) *Index {
	out := x.clone()
	for k := range out.levels {
		if k < len(names) {
			out.levels[k].Name = names[k]
		}
	}

	return out
}

// WithFreq returns a copy carrying an intrinsic frequency.
func (x *Index) WithFreq(freq time.Duration) *Index {
	out := x.clone()
	out.freq = freq

	return out
}

// ToMulti returns the index as a multi-index (a flat index becomes one level).
func (x *Index) ToMulti() *Index {
	out := x.clone()
	out.multi = true

	return out
}

// Append concatenates labels of indexes with the same number of levels.
// Names are kept when all inputs agree, else dropped.
func Append(indexes ...*Index) (*Index, error) {
	if len(indexes) == 0 {
		return nil, core.Errorf("Append", core.ErrInvalidArgument, "need at least one index")
	}
	first := indexes[0]
	out := &Index{multi: first.multi, levels: make([]Level, first.NLevels())}
	for k := range out.levels {
		out.levels[k].Name = first.levels[k].Name
	}
	for i, idx := range indexes {
		if idx.NLevels() != first.NLevels() {
			return nil, core.Errorf("Append", core.ErrShapeMismatch, "index %d has %d levels, want %d", i, idx.NLevels(), first.NLevels())
		}
		for k, l := range idx.levels {
			if !core.Equal(out.levels[k].Name, l.Name) {
				out.levels[k].Name = nil
			}
			out.levels[k].Values = append(out.levels[k].Values, l.Values...)
		}
	}

	return out, nil
}

func (x *Index) clone() *Index {
	out := &Index{multi: x.multi, freq: x.freq, levels: make([]Level, len(x.levels))}
	for k, l := range x.levels {
		out.levels[k] = Level{Name: l.Name, Values: append([]any(nil), l.Values...)}
	}

	return out
}

// String renders the index, e.g. Index([x, y], name=i).
func (x *Index) String() string {
	var sb strings.Builder
	if x.multi {
		sb.WriteString("MultiIndex([")
	} else {
		sb.WriteString("Index([")
	}
	for i := 0; i < x.Len(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(core.Format(x.At(i)))
	}
	sb.WriteString("]")
	if x.multi {
		sb.WriteString(", names=")
		sb.WriteString(core.Tuple(x.Names()).String())
	} else if x.levels[0].Name != nil {
		sb.WriteString(", name=")
		sb.WriteString(core.Format(x.levels[0].Name))
	}
	sb.WriteString(")")

	return sb.String()
}
