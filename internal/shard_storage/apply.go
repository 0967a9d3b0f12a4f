package shard_storage

import (
	"errors"
	"time"

	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/tessera"
)

// Mutation is the validated ops for one column family of one row.
type Mutation struct {
	CF  *schema.CFMetaData
	Ops []column_family.Op
}

// Applied reports what a Mutation changed.
type Applied struct {
	CF      *schema.CFMetaData
	Changes []column_family.Change
}

// Apply performs the mutations of one row under the row lock and keeps the secondary
// indexes of the keyspace in step.
func (m *Manager) Apply(keyspace string, key []byte, muts []Mutation, now time.Time) ([]Applied, error) {
	if keyspace == "" {
		return nil, errors.New("keyspace cannot be empty")
	}
	if len(key) == 0 {
		return nil, errors.New("row key cannot be empty")
	}

	t := m.getOrCreateTable(keyspace)
	t.learnGrace(muts)

	for {
		r := m.getOrCreate(t, key)
		r.mu.Lock()
		if r.removed {
			// reaped between lookup and lock
			r.mu.Unlock()
			continue
		}
		applied := t.applyLocked(r, muts, now)
		r.mu.Unlock()
		return applied, nil
	}
}

func (t *table) applyLocked(r *row, muts []Mutation, now time.Time) []Applied {
	applied := make([]Applied, 0, len(muts))
	for _, mut := range muts {
		cf := mut.CF
		f, ok := r.families[cf.ID]
		if !ok {
			f = column_family.New(cf.Super, cf.Comparator, cf.SubComparator)
			r.families[cf.ID] = f
		}

		var changes []column_family.Change
		for _, op := range mut.Ops {
			changes = append(changes, f.Apply(op, now)...)
		}
		if f.IsEmpty() {
			delete(r.families, cf.ID)
		}

		t.updateIndex(cf, r.key, f, changes, now)
		applied = append(applied, Applied{CF: cf, Changes: changes})
	}
	return applied
}

// updateIndex brings the index entries of key in line with changes made to f. A
// family tombstone only unindexes the columns it actually masked.
func (t *table) updateIndex(cf *schema.CFMetaData, key []byte, f *column_family.Family,
	changes []column_family.Change, now time.Time) {
	if cf.Super || len(cf.IndexedColumns()) == 0 {
		return
	}
	for _, c := range changes {
		switch {
		case c.Name == nil:
			for _, name := range cf.IndexedColumns() {
				if _, live := f.Column(nil, name, now); !live {
					t.index.Remove(cf.ID, name, key)
				}
			}
		case !cf.IsIndexed(c.Name):
		case c.Tombstone:
			t.index.Remove(cf.ID, c.Name, key)
		case c.Operation == tessera.OperationWrite:
			t.index.Add(cf.ID, c.Name, c.Value, key)
		}
	}
}

func (t *table) learnGrace(muts []Mutation) {
	t.graceMu.RLock()
	known := true
	for _, mut := range muts {
		if g, ok := t.graces[mut.CF.ID]; !ok || g != mut.CF.GCGrace {
			known = false
			break
		}
	}
	t.graceMu.RUnlock()
	if known {
		return
	}

	t.graceMu.Lock()
	for _, mut := range muts {
		t.graces[mut.CF.ID] = mut.CF.GCGrace
	}
	t.graceMu.Unlock()
}

func (t *table) grace(cfID int32) time.Duration {
	t.graceMu.RLock()
	defer t.graceMu.RUnlock()
	if g, ok := t.graces[cfID]; ok {
		return g
	}
	return defaultGCGrace
}
