package column_family

import (
	"github.com/google/btree"
	"github.com/tessera-db/tessera/internal/marshal"
)

type superColumn struct {
	name          []byte
	deletedAt     int64
	localDeletion int64
	columns       *columns
}

func newSuperColumn(name []byte, subCmp marshal.AbstractType) *superColumn {
	return &superColumn{name: name, deletedAt: liveClock, columns: newColumns(subCmp)}
}

// maskedAt is the highest tombstone covering the super column's children.
func (sc *superColumn) maskedAt(familyDeletedAt int64) int64 {
	return max(sc.deletedAt, familyDeletedAt)
}

// superColumns is a comparator-ordered set of super columns.
type superColumns struct {
	tree *btree.BTreeG[*superColumn]
}

func newSuperColumns(cmp marshal.AbstractType) *superColumns {
	return &superColumns{
		tree: btree.NewG(btreeDegree, func(a, b *superColumn) bool {
			return cmp.Compare(a.name, b.name) < 0
		}),
	}
}

func (ss *superColumns) get(name []byte) (*superColumn, bool) {
	return ss.tree.Get(&superColumn{name: name})
}

func (ss *superColumns) getOrCreate(name []byte, subCmp marshal.AbstractType) *superColumn {
	if sc, ok := ss.get(name); ok {
		return sc
	}
	sc := newSuperColumn(name, subCmp)
	ss.tree.ReplaceOrInsert(sc)
	return sc
}

func (ss *superColumns) remove(name []byte) {
	ss.tree.Delete(&superColumn{name: name})
}

func (ss *superColumns) len() int {
	return ss.tree.Len()
}
