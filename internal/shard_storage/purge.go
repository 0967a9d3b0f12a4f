package shard_storage

import (
	"time"
)

const defaultGCGrace = 864000 * time.Second

// Purge sweeps every row: expired columns become tombstones, tombstones past their
// column family's gc grace are dropped, and rows left with nothing are removed. It
// returns the number of entries purged.
func (m *Manager) Purge(now time.Time) int {
	m.mu.RLock()
	tables := make([]*table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	purged := 0
	for _, t := range tables {
		for _, s := range t.shards {
			s.mu.Lock()
			for _, r := range s.rows {
				purged += t.purgeRowLocked(s, r, now)
			}
			s.mu.Unlock()
		}
	}
	return purged
}

// PurgeRow does the work of Purge for a single row.
func (m *Manager) PurgeRow(keyspace string, key []byte, now time.Time) int {
	t := m.table(keyspace)
	if t == nil {
		return 0
	}
	s := m.shardFor(t, key)
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[string(key)]
	if !ok {
		return 0
	}
	return t.purgeRowLocked(s, r, now)
}

// purgeRowLocked runs with the shard lock held.
func (t *table) purgeRowLocked(s *shard, r *row, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, f := range r.families {
		purged += f.Purge(now, now.Add(-t.grace(id)))
		if f.IsEmpty() {
			delete(r.families, id)
			t.index.RemoveKey(id, r.key)
		}
	}
	if len(r.families) == 0 {
		t.unlink(s, r)
	}
	return purged
}
