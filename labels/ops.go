// SPDX-License-Identifier: MIT

// Package labels: pure functions over label collections.
//
// Purpose:
//   - Repetition/tiling, stacking, Cartesian combination, level edits,
//     redundancy and duplicate elimination, alignment and level picking.
//
// Determinism:
//   - Level order follows argument order; duplicate scans run first→last or
//     last→first per Keep; no output depends on map iteration.
package labels

import (
	"sort"

	"github.com/katalvlaran/vectra/core"
)

// ---------- repetition ----------

// Repeat repeats each label n consecutive times. A default index becomes
// Range(len*n).
func Repeat(idx *Index, n int) (*Index, error) {
	if n < 0 {
		return nil, core.Errorf("Repeat", core.ErrInvalidArgument, "negative count %d", n)
	}
	if idx.IsDefault() {
		return Range(idx.Len() * n), nil
	}

	return repeatRaw(idx, n), nil
}

// Tile repeats the whole sequence n times. A default index becomes Range(len*n).
func Tile(idx *Index, n int) (*Index, error) {
	if n < 0 {
		return nil, core.Errorf("Tile", core.ErrInvalidArgument, "negative count %d", n)
	}
	if idx.IsDefault() {
		return Range(idx.Len() * n), nil
	}

	return tileRaw(idx, n), nil
}

func repeatRaw(idx *Index, n int) *Index {
	out := &Index{multi: idx.multi, levels: make([]Level, len(idx.levels))}
	for k, l := range idx.levels {
		vals := make([]any, 0, len(l.Values)*n)
		for _, v := range l.Values {
			for r := 0; r < n; r++ {
				vals = append(vals, v)
			}
		}
		out.levels[k] = Level{Name: l.Name, Values: vals}
	}

	return out
}

func tileRaw(idx *Index, n int) *Index {
	out := &Index{multi: idx.multi, levels: make([]Level, len(idx.levels))}
	for k, l := range idx.levels {
		vals := make([]any, 0, len(l.Values)*n)
		for r := 0; r < n; r++ {
			vals = append(vals, l.Values...)
		}
		out.levels[k] = Level{Name: l.Name, Values: vals}
	}

	return out
}

// ---------- stacking ----------

// Stack places the levels of every index side by side, first index first,
// flattening nested levels. All indexes must have the same length.
// Duplicate and redundant levels are then dropped per options.
func Stack(indexes []*Index, opts ...Option) (*Index, error) {
	if len(indexes) == 0 {
		return nil, core.Errorf("Stack", core.ErrInvalidArgument, "need at least one index")
	}
	o := GatherOptions(opts...)
	n := indexes[0].Len()
	var levels []Level
	for i, idx := range indexes {
		if idx.Len() != n {
			return nil, core.Errorf("Stack", core.ErrShapeMismatch, "index %d has length %d, want %d", i, idx.Len(), n)
		}
		levels = append(levels, idx.levels...)
	}
	out, err := FromLevels(levels...)
	if err != nil {
		return nil, err
	}
	if o.dropDuplicates {
		out = DropDuplicateLevels(out, o.keep)
	}
	if o.dropRedundant {
		out = DropRedundantLevels(out)
	}

	return out, nil
}

// Combine builds the Cartesian product of indexes, folding left to right:
// A×B = Stack(repeat(A, len B), tile(B, len A)). Default ranges are not
// elided here, so a constant operand level can be dropped as redundant.
func Combine(indexes []*Index, opts ...Option) (*Index, error) {
	if len(indexes) == 0 {
		return nil, core.Errorf("Combine", core.ErrInvalidArgument, "need at least one index")
	}
	cur := indexes[0]
	for _, next := range indexes[1:] {
		a := repeatRaw(cur, next.Len())
		b := tileRaw(next, cur.Len())
		var err error
		if cur, err = Stack([]*Index{a, b}, opts...); err != nil {
			return nil, err
		}
	}

	return cur, nil
}

// ---------- level edits ----------

// dropPositions removes levels; a single survivor becomes a flat index.
func dropPositions(idx *Index, drop map[int]bool) *Index {
	var keep []Level
	for k, l := range idx.levels {
		if !drop[k] {
			keep = append(keep, Level{Name: l.Name, Values: append([]any(nil), l.Values...)})
		}
	}
	out := &Index{levels: keep, multi: len(keep) > 1}

	return out
}

// DropLevels removes levels by name or position (-1 is the last level).
// Unknown references are ignored; nothing is dropped if every level would go.
func DropLevels(idx *Index, levels ...any) *Index {
	if !idx.multi {
		return idx
	}
	drop := make(map[int]bool)
	for _, lv := range levels {
		if t, ok := lv.(core.Tuple); ok {
			for _, e := range t {
				if p, err := idx.levelPos(e); err == nil {
					drop[p] = true
				}
			}
			continue
		}
		if p, err := idx.levelPos(lv); err == nil {
			drop[p] = true
		}
	}
	if len(drop) == 0 || len(drop) >= idx.NLevels() {
		return idx
	}

	return dropPositions(idx, drop)
}

// RenameLevels renames levels whose current name is a key of mapping.
func RenameLevels(idx *Index, mapping map[any]any) *Index {
	out := idx.clone()
	for k, l := range out.levels {
		for from, to := range mapping {
			if core.Equal(l.Name, from) {
				out.levels[k].Name = to
				break
			}
		}
	}

	return out
}

// SelectLevel returns one level as a flat index.
func SelectLevel(idx *Index, level any) (*Index, error) {
	p, err := idx.levelPos(level)
	if err != nil {
		return nil, err
	}

	return idx.LevelIndex(p), nil
}

// SelectLevels returns the chosen levels, in order, as a multi-index.
func SelectLevels(idx *Index, levels ...any) (*Index, error) {
	if len(levels) == 0 {
		return nil, core.Errorf("SelectLevels", core.ErrInvalidArgument, "need at least one level")
	}
	out := make([]Level, len(levels))
	for i, lv := range levels {
		p, err := idx.levelPos(lv)
		if err != nil {
			return nil, err
		}
		out[i] = idx.Level(p)
	}

	return FromLevels(out...)
}

// ---------- redundancy & duplicates ----------

// DropRedundantLevels removes levels of a multi-index (length > 1) that are
// unnamed with one distinct value, or exactly the default range.
// Nothing is removed if every level is redundant.
func DropRedundantLevels(idx *Index) *Index {
	if !idx.multi || idx.Len() <= 1 {
		return idx
	}
	drop := make(map[int]bool)
	for k, l := range idx.levels {
		if l.Name != nil {
			continue
		}
		if countDistinct(l.Values) == 1 || isRange(l.Values) {
			drop[k] = true
		}
	}
	if len(drop) == 0 || len(drop) >= idx.NLevels() {
		return idx
	}

	return dropPositions(idx, drop)
}

// DropDuplicateLevels removes levels whose (name, values) repeat an
// already-kept level, scanning first→last (KeepFirst) or last→first (KeepLast).
func DropDuplicateLevels(idx *Index, keep Keep) *Index {
	if !idx.multi {
		return idx
	}
	n := idx.NLevels()
	order := make([]int, n)
	for i := range order {
		order[i] = i
		if keep == KeepLast {
			order[i] = n - 1 - i
		}
	}
	seen := make(map[string]bool, n)
	drop := make(map[int]bool)
	for _, k := range order {
		l := idx.levels[k]
		key := core.KeyOf(core.Tuple{l.Name, core.Tuple(l.Values)})
		if seen[key] {
			drop[k] = true
			continue
		}
		seen[key] = true
	}
	if len(drop) == 0 {
		return idx
	}

	return dropPositions(idx, drop)
}

func countDistinct(vals []any) int {
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		seen[core.KeyOf(v)] = struct{}{}
	}

	return len(seen)
}

// ---------- alignment ----------

// AlignTo returns positions p into source, one per target label, such that
// source[p[j]] matches target[j] on every source level. Each source level
// must appear in target under the same name with the same value set.
// Source labels must be unique.
func AlignTo(source, target *Index) ([]int, error) {
	if source.HasDuplicates() {
		return nil, core.Errorf("AlignTo", core.ErrUnalignable, "source has duplicate labels")
	}
	if source.EqualValues(target) {
		return identity(source.Len()), nil
	}
	if source.Len() > target.Len() {
		return nil, core.Errorf("AlignTo", core.ErrUnalignable, "source length %d exceeds target length %d", source.Len(), target.Len())
	}
	if source.Len() == 1 {
		return make([]int, target.Len()), nil
	}
	js := make([]int, 0, source.NLevels())
	for _, sl := range source.levels {
		for j, tl := range target.levels {
			if core.Equal(sl.Name, tl.Name) && sameValueSet(sl.Values, tl.Values) {
				js = append(js, j)
				break
			}
		}
	}
	if len(js) != source.NLevels() {
		return nil, core.Errorf("AlignTo", core.ErrUnalignable, "target lacks levels %v with matching values", source.Names())
	}
	pos := make(map[string]int, source.Len())
	for i := 0; i < source.Len(); i++ {
		pos[source.keyAt(i)] = i
	}
	sub := &Index{levels: make([]Level, len(js))}
	for k, j := range js {
		sub.levels[k] = target.levels[j]
	}
	out := make([]int, target.Len())
	for i := range out {
		p, ok := pos[sub.keyAt(i)]
		if !ok {
			return nil, core.Errorf("AlignTo", core.ErrUnalignable, "target label %s has no source", core.Format(target.At(i)))
		}
		out[i] = p
	}

	return out, nil
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func sameValueSet(a, b []any) bool {
	ka, kb := distinctKeys(a), distinctKeys(b)
	if len(ka) != len(kb) {
		return false
	}
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
	}

	return true
}

func distinctKeys(vals []any) []string {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[core.KeyOf(v)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// ---------- level picking ----------

// PickLevels resolves required and optional level references (names,
// positions or nil) against idx. Nil required slots take the leftover
// positions left to right; nil optional slots resolve to -1.
func PickLevels(idx *Index, required, optional []any) (req, opt []int, err error) {
	nOpt, nReq := countSet(optional), countSet(required)
	if nReq < len(required) && idx.NLevels()-nOpt != len(required) {
		return nil, nil, core.Errorf("PickLevels", core.ErrAmbiguousLevels,
			"expected %d levels, found %d", len(required)+nOpt, idx.NLevels())
	}
	left := identity(idx.NLevels())
	take := func(level any) (int, error) {
		p, err := idx.levelPos(level)
		if err != nil {
			return 0, core.Errorf("PickLevels", err, "")
		}
		for i, l := range left {
			if l == p {
				left = append(left[:i], left[i+1:]...)
				return p, nil
			}
		}

		return 0, core.Errorf("PickLevels", core.ErrAmbiguousLevels, "level %s picked twice", core.Format(level))
	}
	opt = make([]int, len(optional))
	for i, lv := range optional {
		opt[i] = -1
		if lv != nil {
			if opt[i], err = take(lv); err != nil {
				return nil, nil, err
			}
		}
	}
	req = make([]int, len(required))
	for i, lv := range required {
		req[i] = -1
		if lv != nil {
			if req[i], err = take(lv); err != nil {
				return nil, nil, err
			}
		}
	}
	for i := range req {
		if req[i] == -1 {
			if len(left) == 0 {
				return nil, nil, core.Errorf("PickLevels", core.ErrAmbiguousLevels, "no level left for required slot %d", i)
			}
			req[i], left = left[0], left[1:]
		}
	}

	return req, opt, nil
}

func countSet(levels []any) int {
	n := 0
	for _, l := range levels {
		if l != nil {
			n++
		}
	}

	return n
}
