// SPDX-License-Identifier: MIT

package indexing

import (
	"github.com/katalvlaran/vectra/core"
	"github.com/katalvlaran/vectra/frame"
	"github.com/katalvlaran/vectra/grouping"
	"github.com/katalvlaran/vectra/labels"
	"github.com/katalvlaran/vectra/wrapper"
)

// Mapper is a named parameter value per column.
type Mapper struct {
	Name   any
	Values []any
}

// Len returns the number of values.
func (m Mapper) Len() int { return len(m.Values) }

func (m Mapper) take(positions []int) Mapper {
	vals := make([]any, len(positions))
	for i, p := range positions {
		vals[i] = m.Values[p]
	}

	return Mapper{Name: m.Name, Values: vals}
}

func (m Mapper) clone() Mapper {
	return Mapper{Name: m.Name, Values: append([]any(nil), m.Values...)}
}

// cloneMappers copies every mapper with its values; a Composite never shares
// mapper storage with its callers or with composites selected from it.
func cloneMappers(mappers []Mapper) []Mapper {
	out := make([]Mapper, len(mappers))
	for i, m := range mappers {
		out[i] = m.clone()
	}

	return out
}

// Composite is a frame plus mappers and an optional grouper kept parallel to
// its columns.
type Composite struct {
	frame   *frame.Frame
	mappers []Mapper
	grouper *grouping.Grouper
}

var _ Indexable[*Composite] = (*Composite)(nil)

// NewComposite checks that every mapper and the grouper span the columns.
func NewComposite(f *frame.Frame, mappers []Mapper, g *grouping.Grouper) (*Composite, error) {
	n := f.Columns().Len()
	for _, m := range mappers {
		if m.Len() != n {
			return nil, core.Errorf("NewComposite", core.ErrShapeMismatch, "mapper %s has %d values for %d columns", core.Format(m.Name), m.Len(), n)
		}
	}
	if g != nil && g.Index().Len() != n {
		return nil, core.Errorf("NewComposite", core.ErrShapeMismatch, "grouper over %d labels for %d columns", g.Index().Len(), n)
	}

	return &Composite{frame: f, mappers: cloneMappers(mappers), grouper: g}, nil
}

// Frame returns the data.
func (c *Composite) Frame() *frame.Frame { return c.frame }

// Grouper returns the column grouper (nil when absent).
func (c *Composite) Grouper() *grouping.Grouper { return c.grouper }

// Mappers returns copies of the mappers in declaration order.
func (c *Composite) Mappers() []Mapper { return cloneMappers(c.mappers) }

// Mapper looks a mapper up by name.
func (c *Composite) Mapper(name any) (Mapper, bool) {
	for _, m := range c.mappers {
		if core.Equal(m.Name, name) {
			return m.clone(), true
		}
	}

	return Mapper{}, false
}

// Wrapper derives wrapping metadata from the current frame.
func (c *Composite) Wrapper(opts ...wrapper.Option) (*wrapper.Wrapper, error) {
	return wrapper.FromFrame(c.frame, opts...)
}

// Select cuts the frame, every mapper and the grouper with the same positions.
// Row reductions are kept as length-1 rows so the wrapper metadata survives.
func (c *Composite) Select(sel Selection) (*Composite, error) {
	sel.Rows.Reduce = false
	f, err := SelectFrame(c.frame, sel)
	if err != nil {
		return nil, core.Errorf("Composite.Select", err, "")
	}
	if c.frame.IsSeries() || sel.Cols.IsAll() {
		return &Composite{frame: f, mappers: cloneMappers(c.mappers), grouper: c.grouper}, nil
	}

	mappers := make([]Mapper, len(c.mappers))
	for i, m := range c.mappers {
		mappers[i] = m.take(sel.Cols.Positions)
	}
	var g *grouping.Grouper
	if c.grouper != nil {
		if g, err = c.grouper.Select(sel.Cols.Positions); err != nil {
			return nil, core.Errorf("Composite.Select", err, "")
		}
		if sel.Cols.Labels != nil {
			if g, err = grouping.NewGrouper(f.Columns(), grouping.ByLabels(g.GroupBy())); err != nil {
				return nil, core.Errorf("Composite.Select", err, "")
			}
		}
	}

	return &Composite{frame: f, mappers: mappers, grouper: g}, nil
}

// matchPositions returns the mapper positions whose value equals key, or
// starts with key when both are tuples.
func matchPositions(m Mapper, key any) []int {
	var out []int
	kt, isTuple := key.(core.Tuple)
	for i, v := range m.Values {
		if core.Equal(v, key) {
			out = append(out, i)
			continue
		}
		if vt, ok := v.(core.Tuple); ok && isTuple && len(kt) < len(vt) && core.EqualSlices(vt[:len(kt)], kt) {
			out = append(out, i)
		}
	}

	return out
}

// ParamIndexable is an Indexable exposing named mappers.
type ParamIndexable[T any] interface {
	Indexable[T]
	Mapper(name any) (Mapper, bool)
}

// ParamLoc selects columns by the values of the mapper called name. Label
// keys match exactly or by tuple prefix. A single Label selection also drops
// the mapper's level(s) from multi-level columns.
func ParamLoc[T any](obj ParamIndexable[T], name any, key Key) (T, error) {
	var zero T
	m, ok := obj.Mapper(name)
	if !ok {
		return zero, core.Errorf("ParamLoc", core.ErrKeyNotFound, "mapper %s", core.Format(name))
	}
	find := func(v any) ([]int, error) {
		pos := matchPositions(m, v)
		if len(pos) == 0 {
			return nil, core.Errorf("ParamLoc", core.ErrKeyNotFound, "%s in mapper %s", core.Format(v), core.Format(name))
		}
		return pos, nil
	}

	var (
		pos []int
		err error
	)
	switch key.kind {
	case keyLabel:
		pos, err = find(key.label)
	case keyLabelList:
		for _, v := range key.labels {
			p, ferr := find(v)
			if ferr != nil {
				return zero, ferr
			}
			pos = append(pos, p...)
		}
	case keyLabelSlice:
		start, stop := 0, m.Len()
		if key.from != nil {
			p, ferr := find(key.from)
			if ferr != nil {
				return zero, ferr
			}
			start = p[0]
		}
		if key.to != nil {
			p, ferr := find(key.to)
			if ferr != nil {
				return zero, ferr
			}
			stop = p[len(p)-1] + 1
		}
		pos = span(max(stop-start, 0))
		for i := range pos {
			pos[i] += start
		}
	default:
		return zero, core.Errorf("ParamLoc", core.ErrInvalidArgument, "need a label key")
	}
	if err != nil {
		return zero, err
	}

	cols := Axis{Positions: pos}
	f := obj.Frame()
	if key.kind == keyLabel && !f.IsSeries() && f.Columns().IsMulti() {
		taken, terr := f.Columns().Take(pos)
		if terr != nil {
			return zero, core.Errorf("ParamLoc", terr, "")
		}
		cols.Labels = labels.DropLevels(taken, name)
	}
	rows, _ := Resolve(f.Index(), All())

	return obj.Select(Selection{Rows: rows, Cols: cols})
}
