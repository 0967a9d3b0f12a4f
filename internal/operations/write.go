package operations

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/cdc_emitter"
	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/reaper"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/shard_storage"
	"github.com/tessera-db/tessera/internal/tessera"
	"github.com/tessera-db/tessera/internal/wal"
)

// Insert writes one column. On a counter column family the column value is an 8-byte
// delta that is added to the counter.
func (m *Manager) Insert(_ context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
	column tessera.Column, cl tessera.ConsistencyLevel) (err error) {
	defer m.observe("insert", time.Now(), &err)

	if err := validateWriteConsistency(cl); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	cf, err := m.lookup(keyspace, parent.ColumnFamily)
	if err != nil {
		return err
	}
	if err := validateColumnParent(cf, parent); err != nil {
		return err
	}
	if cf.Super && parent.SuperColumn == nil {
		return invalidf("supercolumn parameter is not optional for super CF %s", cf.Name)
	}
	if err := m.validateColumn(cf, parent.SuperColumn, &column); err != nil {
		return err
	}

	op := m.insertOp(cf, parent.SuperColumn, column)
	return m.commit(keyspace, key, operationOf(op), []shard_storage.Mutation{{CF: cf, Ops: []column_family.Op{op}}})
}

// Remove plants a tombstone at clock over the column family, super column or column
// path names. On a counter column family the counters are dropped instead.
func (m *Manager) Remove(_ context.Context, keyspace string, key []byte, path tessera.ColumnPath, clock int64,
	cl tessera.ConsistencyLevel) (err error) {
	defer m.observe("remove", time.Now(), &err)

	if err := validateWriteConsistency(cl); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	cf, err := m.lookup(keyspace, path.ColumnFamily)
	if err != nil {
		return err
	}
	if err := validateColumnPath(cf, path, false); err != nil {
		return err
	}

	var names [][]byte
	if path.Column != nil {
		names = [][]byte{path.Column}
	}
	op := deleteOp(cf, path.SuperColumn, names, clock)
	return m.commit(keyspace, key, tessera.OperationDelete, []shard_storage.Mutation{{CF: cf, Ops: []column_family.Op{op}}})
}

// BatchMutate applies mutations keyed by row key and column family name. The whole batch
// is validated before anything is written; each row is then logged and applied on its
// own.
func (m *Manager) BatchMutate(_ context.Context, keyspace string, mutations tessera.MutationMap,
	cl tessera.ConsistencyLevel) (err error) {
	defer m.observe("batch_mutate", time.Now(), &err)

	if err := validateWriteConsistency(cl); err != nil {
		return err
	}

	type rowMutation struct {
		key  []byte
		muts []shard_storage.Mutation
	}
	rows := make([]rowMutation, 0, len(mutations))
	for key, byCF := range mutations {
		if err := validateKey([]byte(key)); err != nil {
			return err
		}
		rm := rowMutation{key: []byte(key)}
		for cfName, muts := range byCF {
			cf, err := m.lookup(keyspace, cfName)
			if err != nil {
				return err
			}
			ops := make([]column_family.Op, 0, len(muts))
			for i := range muts {
				if err := m.validateMutation(cf, &muts[i]); err != nil {
					return err
				}
				ops = append(ops, m.mutationOps(cf, &muts[i])...)
			}
			if len(ops) > 0 {
				rm.muts = append(rm.muts, shard_storage.Mutation{CF: cf, Ops: ops})
			}
		}
		if len(rm.muts) == 0 {
			continue
		}
		sortMutations(rm.muts)
		rows = append(rows, rm)
	}
	sort.Slice(rows, func(i, j int) bool { return string(rows[i].key) < string(rows[j].key) })

	for _, rm := range rows {
		if err := m.commit(keyspace, rm.key, tessera.OperationWrite, rm.muts); err != nil {
			return err
		}
	}
	return nil
}

func sortMutations(muts []shard_storage.Mutation) {
	sort.Slice(muts, func(i, j int) bool { return muts[i].CF.ID < muts[j].CF.ID })
}

// mutationOps converts a validated mutation.
func (m *Manager) mutationOps(cf *schema.CFMetaData, mut *tessera.Mutation) []column_family.Op {
	if del := mut.Deletion; del != nil {
		var names [][]byte
		if del.Predicate != nil {
			// an empty name list deletes nothing; a nil one would widen to the parent
			if len(del.Predicate.ColumnNames) == 0 {
				return nil
			}
			names = del.Predicate.ColumnNames
		}
		return []column_family.Op{deleteOp(cf, del.SuperColumn, names, del.Timestamp)}
	}

	cosc := mut.ColumnOrSuperColumn
	if cosc.Column != nil {
		return []column_family.Op{m.insertOp(cf, nil, *cosc.Column)}
	}
	ops := make([]column_family.Op, 0, len(cosc.SuperColumn.Columns))
	for _, col := range cosc.SuperColumn.Columns {
		ops = append(ops, m.insertOp(cf, cosc.SuperColumn.Name, col))
	}
	return ops
}

func (m *Manager) insertOp(cf *schema.CFMetaData, super []byte, col tessera.Column) column_family.Op {
	if cf.Counter {
		// validated as an 8-byte long
		delta, _ := marshal.BytesLong(col.Value)
		return column_family.Add(super, col.Name, delta, col.Timestamp, m.nodeID)
	}
	return column_family.Insert(super, col)
}

func deleteOp(cf *schema.CFMetaData, super []byte, names [][]byte, clock int64) column_family.Op {
	if cf.Counter {
		return column_family.Clear(super, names)
	}
	return column_family.Delete(super, names, clock)
}

func operationOf(op column_family.Op) tessera.Operation {
	switch op.Kind {
	case column_family.OpAdd:
		return tessera.OperationIncrement
	case column_family.OpDelete, column_family.OpClear:
		return tessera.OperationDelete
	}
	return tessera.OperationWrite
}

// commit logs the mutations of one row, applies them, and publishes what changed.
func (m *Manager) commit(keyspace string, key []byte, operation tessera.Operation, muts []shard_storage.Mutation) error {
	now := m.now()

	if m.writeAhead != nil {
		entry := &wal.Entry{
			Operation: operation,
			Keyspace:  keyspace,
			Key:       key,
			Families:  make(map[int32][]column_family.Op, len(muts)),
			Timestamp: now,
		}
		for _, mut := range muts {
			entry.Families[mut.CF.ID] = append(entry.Families[mut.CF.ID], mut.Ops...)
		}
		if err := m.writeAhead.Apply(entry); err != nil {
			log.Error().Err(err).Str("keyspace", keyspace).Msg("failed to append to commit log")
			return fmt.Errorf("failed to append to commit log: %w", err)
		}
	}

	applied, err := m.storage.Apply(keyspace, key, muts, now)
	if err != nil {
		return err
	}

	m.scheduleExpiry(keyspace, key, applied)
	m.publish(keyspace, key, applied)
	return nil
}

// scheduleExpiry hands every column written with a ttl to the reaper.
func (m *Manager) scheduleExpiry(keyspace string, key []byte, applied []shard_storage.Applied) {
	seen := make(map[int64]struct{})
	for _, a := range applied {
		for _, c := range a.Changes {
			if c.ExpiresAt == 0 {
				continue
			}
			if _, ok := seen[c.ExpiresAt]; ok {
				continue
			}
			seen[c.ExpiresAt] = struct{}{}
			m.garbageCollector.Reap(&reaper.ReapParams{
				Keyspace:  keyspace,
				RowKey:    key,
				ExpiresAt: c.ExpiresAt,
			})
		}
	}
}

// publish sends every applied change to the change stream.
func (m *Manager) publish(keyspace string, key []byte, applied []shard_storage.Applied) {
	if m.cdc == nil {
		return
	}
	for _, a := range applied {
		for _, c := range a.Changes {
			m.cdc.Emit(&cdc_emitter.CDCParams{
				Operation:   c.Operation,
				Keyspace:    keyspace,
				RowKey:      key,
				Family:      a.CF.Name,
				SuperColumn: c.SuperColumn,
				Qualifier:   c.Name,
				Value:       c.Value,
				Clock:       c.Clock,
				Tombstone:   c.Tombstone,
				ExpiresAt:   c.ExpiresAt,
			})
		}
	}
}
