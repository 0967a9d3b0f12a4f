package operations

import (
	"context"
	"time"

	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/shard_storage"
	"github.com/tessera-db/tessera/internal/tessera"
)

// Add increments a counter column. The read-modify-write happens under the row lock, so
// concurrent adds never lose an increment.
func (m *Manager) Add(_ context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
	column tessera.CounterColumn, cl tessera.ConsistencyLevel) (err error) {
	defer m.observe("add", time.Now(), &err)

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
	if !cf.Counter {
		return invalidf("invalid operation for non counter column family %s", cf.Name)
	}
	if err := validateColumnParent(cf, parent); err != nil {
		return err
	}
	if cf.Super && parent.SuperColumn == nil {
		return invalidf("supercolumn parameter is not optional for super CF %s", cf.Name)
	}
	if err := validateNames(cf, parent.SuperColumn, [][]byte{column.Name}); err != nil {
		return err
	}
	if column.Value < 0 {
		return invalidf("Value must be positive when using an increment counter")
	}

	op := column_family.Add(parent.SuperColumn, column.Name, column.Value, m.now().UnixMicro(), m.nodeID)
	return m.commit(keyspace, key, tessera.OperationIncrement, []shard_storage.Mutation{{CF: cf, Ops: []column_family.Op{op}}})
}
