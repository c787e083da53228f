// SPDX-License-Identifier: MIT

package labels

import (
	"github.com/katalvlaran/vectra/core"
)

// matches reports whether label i matches key. On a multi-index a shorter
// tuple matches by prefix and a non-tuple key matches the first level.
func (x *Index) matches(i int, key any) bool {
	if !x.multi {
		return core.Equal(x.levels[0].Values[i], key)
	}
	t, ok := key.(core.Tuple)
	if !ok {
		return core.Equal(x.levels[0].Values[i], key)
	}
	if len(t) > len(x.levels) {
		return false
	}
	for k, v := range t {
		if !core.Equal(x.levels[k].Values[i], v) {
			return false
		}
	}

	return true
}

// Get returns every position whose label matches key (exact or tuple prefix).
func (x *Index) Get(key any) ([]int, error) {
	var out []int
	for i := 0; i < x.Len(); i++ {
		if x.matches(i, key) {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil, core.Errorf("Index.Get", core.ErrKeyNotFound, "%s", core.Format(key))
	}

	return out, nil
}

// GetAll concatenates Get for every key, in key order.
func (x *Index) GetAll(keys []any) ([]int, error) {
	var out []int
	for _, k := range keys {
		pos, err := x.Get(k)
		if err != nil {
			return nil, err
		}
		out = append(out, pos...)
	}

	return out, nil
}

// SliceLocs resolves an inclusive label slice into half-open positions.
// A nil bound is open. from resolves to its first match, to to its last.
func (x *Index) SliceLocs(from, to any) (start, stop int, err error) {
	start, stop = 0, x.Len()
	if from != nil {
		pos, err := x.Get(from)
		if err != nil {
			return 0, 0, err
		}
		start = pos[0]
	}
	if to != nil {
		pos, err := x.Get(to)
		if err != nil {
			return 0, 0, err
		}
		stop = pos[len(pos)-1] + 1
	}
	if stop < start {
		stop = start
	}

	return start, stop, nil
}

// levelPos resolves a level reference: a level name first, else an int
// position (negative counts from the end).
func (x *Index) levelPos(level any) (int, error) {
	for k, l := range x.levels {
		if l.Name != nil && core.Equal(l.Name, level) {
			return k, nil
		}
	}
	if p, ok := level.(int); ok {
		if p < 0 {
			p += len(x.levels)
		}
		if p >= 0 && p < len(x.levels) {
			return p, nil
		}
	}

	return 0, core.Errorf("Index.Level", core.ErrLevelNotFound, "%s", core.Format(level))
}

// LevelPos is the exported form of level resolution by name or position.
func (x *Index) LevelPos(level any) (int, error) { return x.levelPos(level) }
