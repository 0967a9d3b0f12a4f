package operations

import (
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/shard_storage"
	"github.com/tessera-db/tessera/internal/tessera"
	"github.com/tessera-db/tessera/internal/wal"
)

type replayer interface {
	Replay(fn func(e *wal.Entry) error) (int, error)
}

// Replay applies every record of the commit log to the store. Column families are found
// by id, so records survive renames; records of dropped column families are skipped.
// Nothing is published to the change stream, but expiring columns are handed to the
// reaper again.
func (m *Manager) Replay(commitLog replayer) (int, error) {
	return commitLog.Replay(m.replayEntry)
}

func (m *Manager) replayEntry(e *wal.Entry) error {
	if e.Operation == tessera.OperationTruncate {
		cf, err := m.schema.LookupByID(e.CfID)
		if err != nil {
			return nil
		}
		m.storage.Truncate(cf.Keyspace, cf.ID)
		return nil
	}

	ids := make([]int32, 0, len(e.Families))
	for id := range e.Families {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var keyspace string
	muts := make([]shard_storage.Mutation, 0, len(ids))
	for _, id := range ids {
		cf, err := m.schema.LookupByID(id)
		if err != nil {
			log.Debug().Int32("cf_id", id).Msg("skipping commit log record of dropped column family")
			continue
		}
		keyspace = cf.Keyspace
		muts = append(muts, shard_storage.Mutation{CF: cf, Ops: e.Families[id]})
	}
	if len(muts) == 0 {
		return nil
	}

	applied, err := m.storage.Apply(keyspace, e.Key, muts, e.Timestamp)
	if err != nil {
		return err
	}
	m.scheduleExpiry(keyspace, e.Key, applied)
	return nil
}
