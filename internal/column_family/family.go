// Package column_family holds the data of one column family within one row: the
// columns or super columns, and the tombstones that mask them. Family is not safe for
// concurrent use; the row that owns it serialises access.
package column_family

import (
	"bytes"
	"time"

	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/tessera"
)

// Family is the content of one column family of one row. Tombstones are kept at three
// levels and evaluated top-down: the family, then a super column, then a column.
type Family struct {
	super  bool
	cmp    marshal.AbstractType
	subCmp marshal.AbstractType

	deletedAt     int64
	localDeletion int64

	columns *columns      // standard families
	supers  *superColumns // super families
}

// New creates an empty family. subCmp is only used by super families.
func New(super bool, cmp, subCmp marshal.AbstractType) *Family {
	f := &Family{
		super:     super,
		cmp:       cmp,
		subCmp:    subCmp,
		deletedAt: liveClock,
	}
	if super {
		f.supers = newSuperColumns(cmp)
	} else {
		f.columns = newColumns(cmp)
	}
	return f
}

// DeletedAt returns the family tombstone clock, and false when there is none.
func (f *Family) DeletedAt() (int64, bool) {
	return f.deletedAt, f.deletedAt != liveClock
}

// IsEmpty reports whether the family holds nothing at all, not even a tombstone.
func (f *Family) IsEmpty() bool {
	if f.deletedAt != liveClock {
		return false
	}
	if f.super {
		return f.supers.len() == 0
	}
	return f.columns.len() == 0
}

// Apply performs op as of now and reports the changes that took effect. Writes masked
// by a tombstone are accepted and dropped.
func (f *Family) Apply(op Op, now time.Time) []Change {
	switch op.Kind {
	case OpInsert:
		return f.insert(op, now)
	case OpDelete:
		return f.delete(op, now)
	case OpAdd:
		return f.add(op)
	case OpClear:
		return f.clear(op)
	}
	return nil
}

// target returns the columns an op addresses and the tombstone clock covering them.
func (f *Family) target(super []byte, create bool) (*columns, int64, *superColumn) {
	if !f.super {
		return f.columns, f.deletedAt, nil
	}
	var sc *superColumn
	if create {
		sc = f.supers.getOrCreate(super, f.subCmp)
	} else {
		var ok bool
		if sc, ok = f.supers.get(super); !ok {
			return nil, f.deletedAt, nil
		}
	}
	return sc.columns, sc.maskedAt(f.deletedAt), sc
}

func (f *Family) insert(op Op, now time.Time) []Change {
	if op.Column == nil || op.Column.Timestamp <= f.deletedAt {
		return nil
	}
	cols, maskedAt, sc := f.target(op.SuperColumn, true)
	if op.Column.Timestamp <= maskedAt {
		f.dropIfEmpty(sc)
		return nil
	}

	col := newColumn(op.Column, now)
	if !cols.reconcileInto(col, now) {
		return nil
	}
	return []Change{{
		Operation:   tessera.OperationWrite,
		SuperColumn: op.SuperColumn,
		Name:        col.name,
		Value:       col.value,
		Clock:       col.clock,
		ExpiresAt:   col.expiresAt,
	}}
}

func (f *Family) delete(op Op, now time.Time) []Change {
	change := Change{
		Operation:   tessera.OperationDelete,
		SuperColumn: op.SuperColumn,
		Clock:       op.Clock,
		Tombstone:   true,
	}

	switch {
	case op.Names == nil && (!f.super || op.SuperColumn == nil):
		if op.Clock <= f.deletedAt {
			return nil
		}
		f.deletedAt = op.Clock
		f.localDeletion = now.Unix()
		f.purgeMasked()
		return []Change{change}

	case op.Names == nil:
		if f.deleteSuper(op.SuperColumn, op.Clock, now) {
			return []Change{change}
		}
		return nil

	case f.super && op.SuperColumn == nil:
		// names address whole super columns
		var changes []Change
		for _, name := range op.Names {
			if f.deleteSuper(name, op.Clock, now) {
				c := change
				c.SuperColumn = name
				changes = append(changes, c)
			}
		}
		return changes
	}

	cols, maskedAt, sc := f.target(op.SuperColumn, true)
	if op.Clock <= maskedAt {
		f.dropIfEmpty(sc)
		return nil
	}
	var changes []Change
	for _, name := range op.Names {
		if cols.reconcileInto(newTombstone(name, op.Clock, now), now) {
			c := change
			c.Name = name
			changes = append(changes, c)
		}
	}
	return changes
}

// deleteSuper plants a super column tombstone and reports whether it raised the
// existing one.
func (f *Family) deleteSuper(name []byte, clock int64, now time.Time) bool {
	if clock <= f.deletedAt {
		return false
	}
	sc := f.supers.getOrCreate(name, f.subCmp)
	if clock <= sc.deletedAt {
		return false
	}
	sc.deletedAt = clock
	sc.localDeletion = now.Unix()
	sc.columns.purgeMasked(clock)
	return true
}

// purgeMasked discards data the family tombstone has made unreachable.
func (f *Family) purgeMasked() {
	if !f.super {
		f.columns.purgeMasked(f.deletedAt)
		return
	}
	var doomed [][]byte
	f.supers.tree.Ascend(func(sc *superColumn) bool {
		sc.columns.purgeMasked(f.deletedAt)
		if sc.deletedAt <= f.deletedAt {
			sc.deletedAt = liveClock
		}
		if sc.columns.len() == 0 && sc.deletedAt == liveClock {
			doomed = append(doomed, sc.name)
		}
		return true
	})
	for _, name := range doomed {
		f.supers.remove(name)
	}
}

func (f *Family) dropIfEmpty(sc *superColumn) {
	if sc != nil && sc.columns.len() == 0 && sc.deletedAt == liveClock {
		f.supers.remove(sc.name)
	}
}

// Names sorts and de-duplicates column names under cmp.
func Names(cmp marshal.AbstractType, names [][]byte) [][]byte {
	out := make([][]byte, 0, len(names))
	out = append(out, names...)
	sortNames(cmp, out)
	deduped := make([][]byte, 0, len(out))
	for _, n := range out {
		if len(deduped) > 0 && bytes.Equal(n, deduped[len(deduped)-1]) {
			continue
		}
		deduped = append(deduped, n)
	}
	return deduped
}
