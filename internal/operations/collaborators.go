package operations

import (
	"time"

	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/shard_storage"
	"github.com/tessera-db/tessera/internal/tessera"
)

// The store, the schema and the ring are the collaborators every request reads from.
// Tests run them for real.

type storageManager interface {
	Apply(keyspace string, key []byte, muts []shard_storage.Mutation, now time.Time) ([]shard_storage.Applied, error)
	Read(keyspace string, key []byte, cfID int32, fn func(f *column_family.Family)) bool
	Range(keyspace string, bounds ring.Bounds, cfID int32, fn func(key []byte, f *column_family.Family) bool)
	IndexCardinality(keyspace string, cfID int32, column, value []byte) int
	IndexLookup(keyspace string, cfID int32, column, value, startKey []byte) [][]byte
	Truncate(keyspace string, cfID int32) int
	DropColumnFamilies(keyspace string, cfIDs ...int32)
	DropKeyspace(keyspace string)
	RenameKeyspace(oldName, newName string)
}

type schemaRegistry interface {
	LookupColumnFamily(ks, cf string) (*schema.CFMetaData, error)
	LookupByID(id int32) (*schema.CFMetaData, error)
	HasKeyspace(ks string) bool
	Keyspaces() []string
	DescribeKeyspace(ks string) (tessera.KsDef, error)
	AddKeyspace(def tessera.KsDef) error
	UpdateKeyspace(def tessera.KsDef) error
	DropKeyspace(name string) ([]int32, error)
	RenameKeyspace(oldName, newName string) error
	AddColumnFamily(def tessera.CfDef) (*schema.CFMetaData, error)
	DropColumnFamily(ksName, cfName string) (int32, error)
	RenameColumnFamily(ksName, oldName, newName string) error
}

type tokenRing interface {
	Partitioner() ring.Partitioner
	DescribeRing() []tessera.TokenRange
	KeyBounds(startKey, endKey []byte) (ring.Bounds, error)
	TokenBounds(startToken, endToken string) (ring.Bounds, error)
}
