package column_family

import (
	"sort"
	"time"

	"github.com/google/btree"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/tessera"
)

// Filter selects the columns of a read. With Names set the read is a lookup of those
// names; otherwise it walks from Start towards Finish, descending when Reversed, and
// stops after Count live entries. Empty bounds are open.
type Filter struct {
	Names    [][]byte
	Start    []byte
	Finish   []byte
	Reversed bool
	Count    int
}

// NewFilter converts a validated predicate.
func NewFilter(p *tessera.SlicePredicate) Filter {
	if p.SliceRange == nil {
		return Filter{Names: p.ColumnNames, Count: len(p.ColumnNames)}
	}
	return Filter{
		Start:    p.SliceRange.Start,
		Finish:   p.SliceRange.Finish,
		Reversed: p.SliceRange.Reversed,
		Count:    int(p.SliceRange.Count),
	}
}

func sortNames(cmp marshal.AbstractType, names [][]byte) {
	sort.SliceStable(names, func(i, j int) bool {
		return cmp.Compare(names[i], names[j]) < 0
	})
}

// Column returns one live column. On a super family super names the parent.
func (f *Family) Column(super, name []byte, now time.Time) (tessera.Column, bool) {
	cols, maskedAt, _ := f.target(super, false)
	if cols == nil {
		return tessera.Column{}, false
	}
	c, ok := cols.get(name)
	if !ok || !c.live(maskedAt, now) {
		return tessera.Column{}, false
	}
	return c.toColumn(), true
}

// SuperColumn returns a super column with its live children. A super column with no
// live children is reported missing.
func (f *Family) SuperColumn(name []byte, now time.Time) (tessera.SuperColumn, bool) {
	if !f.super {
		return tessera.SuperColumn{}, false
	}
	sc, ok := f.supers.get(name)
	if !ok {
		return tessera.SuperColumn{}, false
	}
	return f.liveSuper(sc, now)
}

func (f *Family) liveSuper(sc *superColumn, now time.Time) (tessera.SuperColumn, bool) {
	maskedAt := sc.maskedAt(f.deletedAt)
	out := tessera.SuperColumn{Name: sc.name}
	sc.columns.tree.Ascend(func(c *column) bool {
		if c.live(maskedAt, now) {
			out.Columns = append(out.Columns, c.toColumn())
		}
		return true
	})
	return out, len(out.Columns) > 0
}

// Slice reads the live entries matching flt. A super family read without super
// returns super columns; any other read returns columns.
func (f *Family) Slice(super []byte, flt Filter, now time.Time) []tessera.ColumnOrSuperColumn {
	out := make([]tessera.ColumnOrSuperColumn, 0)
	if flt.Count <= 0 {
		return out
	}

	if f.super && super == nil {
		f.sliceSupers(flt, now, func(sc tessera.SuperColumn) bool {
			out = append(out, tessera.ColumnOrSuperColumn{SuperColumn: &sc})
			return len(out) < flt.Count
		})
		return out
	}

	cmp := f.cmp
	if f.super {
		cmp = f.subCmp
	}
	cols, maskedAt, _ := f.target(super, false)
	if cols == nil {
		return out
	}
	visit := func(c *column) bool {
		if c.live(maskedAt, now) {
			col := c.toColumn()
			out = append(out, tessera.ColumnOrSuperColumn{Column: &col})
		}
		return len(out) < flt.Count
	}

	if flt.Names != nil {
		for _, name := range Names(cmp, flt.Names) {
			if c, ok := cols.get(name); ok && !visit(c) {
				break
			}
		}
		return out
	}
	walk(cols.tree, func(n []byte) *column { return &column{name: n} },
		func(c *column) []byte { return c.name }, cmp, flt, visit)
	return out
}

func (f *Family) sliceSupers(flt Filter, now time.Time, emit func(tessera.SuperColumn) bool) {
	visit := func(sc *superColumn) bool {
		live, ok := f.liveSuper(sc, now)
		if !ok {
			return true
		}
		return emit(live)
	}

	if flt.Names != nil {
		for _, name := range Names(f.cmp, flt.Names) {
			if sc, ok := f.supers.get(name); ok && !visit(sc) {
				return
			}
		}
		return
	}
	walk(f.supers.tree, func(n []byte) *superColumn { return &superColumn{name: n} },
		func(sc *superColumn) []byte { return sc.name }, f.cmp, flt, visit)
}

// Count is the number of entries Slice would return.
func (f *Family) Count(super []byte, flt Filter, now time.Time) int {
	return len(f.Slice(super, flt, now))
}

// walk visits the items of tree between flt.Start and flt.Finish in traversal order
// until visit returns false.
func walk[T any](tree *btree.BTreeG[T], probe func([]byte) T, name func(T) []byte,
	cmp marshal.AbstractType, flt Filter, visit func(T) bool) {
	iter := func(item T) bool {
		if len(flt.Finish) > 0 {
			c := cmp.Compare(name(item), flt.Finish)
			if (!flt.Reversed && c > 0) || (flt.Reversed && c < 0) {
				return false
			}
		}
		return visit(item)
	}

	switch {
	case len(flt.Start) == 0 && !flt.Reversed:
		tree.Ascend(iter)
	case len(flt.Start) == 0:
		tree.Descend(iter)
	case !flt.Reversed:
		tree.AscendGreaterOrEqual(probe(flt.Start), iter)
	default:
		tree.DescendLessOrEqual(probe(flt.Start), iter)
	}
}
