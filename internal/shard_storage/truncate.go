package shard_storage

import (
	"github.com/rs/zerolog/log"
)

// Truncate discards the data, tombstones and index entries of one column family.
func (m *Manager) Truncate(keyspace string, cfID int32) int {
	t := m.table(keyspace)
	if t == nil {
		return 0
	}

	dropped := 0
	for _, s := range t.shards {
		s.mu.RLock()
		rows := make([]*row, 0, len(s.rows))
		for _, r := range s.rows {
			rows = append(rows, r)
		}
		s.mu.RUnlock()

		for _, r := range rows {
			r.mu.Lock()
			if _, ok := r.families[cfID]; ok {
				delete(r.families, cfID)
				dropped++
			}
			r.mu.Unlock()
		}
	}
	t.index.Drop(cfID)

	log.Debug().Str("keyspace", keyspace).Int32("cf_id", cfID).Msgf("truncated %d rows", dropped)
	return dropped
}

// DropColumnFamilies discards the data of column families removed from the schema.
func (m *Manager) DropColumnFamilies(keyspace string, cfIDs ...int32) {
	for _, id := range cfIDs {
		m.Truncate(keyspace, id)
	}
	if t := m.table(keyspace); t != nil {
		t.graceMu.Lock()
		for _, id := range cfIDs {
			delete(t.graces, id)
		}
		t.graceMu.Unlock()
	}
}
