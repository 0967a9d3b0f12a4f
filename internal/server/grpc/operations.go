package grpc

import (
	"context"

	"github.com/tessera-db/tessera/internal/tessera"
)

//go:generate mockgen -destination=./operations_mock.go -package=grpc -source=operations.go

// operations is the subset of the operations manager the service delegates to.
type operations interface {
	Get(ctx context.Context, keyspace string, key []byte, path tessera.ColumnPath,
		cl tessera.ConsistencyLevel) (*tessera.ColumnOrSuperColumn, error)
	GetSlice(ctx context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
		predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) ([]tessera.ColumnOrSuperColumn, error)
	GetCount(ctx context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
		predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (int32, error)
	MultigetSlice(ctx context.Context, keyspace string, keys [][]byte, parent tessera.ColumnParent,
		predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (map[string][]tessera.ColumnOrSuperColumn, error)
	MultigetCount(ctx context.Context, keyspace string, keys [][]byte, parent tessera.ColumnParent,
		predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (map[string]int32, error)
	GetRangeSlices(ctx context.Context, keyspace string, parent tessera.ColumnParent,
		predicate *tessera.SlicePredicate, keyRange *tessera.KeyRange, cl tessera.ConsistencyLevel) ([]tessera.KeySlice, error)
	GetIndexedSlices(ctx context.Context, keyspace string, parent tessera.ColumnParent,
		clause *tessera.IndexClause, predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) ([]tessera.KeySlice, error)
	Insert(ctx context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
		column tessera.Column, cl tessera.ConsistencyLevel) error
	Add(ctx context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
		column tessera.CounterColumn, cl tessera.ConsistencyLevel) error
	Remove(ctx context.Context, keyspace string, key []byte, path tessera.ColumnPath, clock int64,
		cl tessera.ConsistencyLevel) error
	BatchMutate(ctx context.Context, keyspace string, mutations tessera.MutationMap, cl tessera.ConsistencyLevel) error
	Truncate(ctx context.Context, keyspace, cfName string) error

	DescribeKeyspaces(ctx context.Context) ([]tessera.KsDef, error)
	DescribeKeyspace(ctx context.Context, name string) (*tessera.KsDef, error)
	DescribeRing(ctx context.Context, keyspace string) ([]tessera.TokenRange, error)
	DescribePartitioner(ctx context.Context) string
	DescribeVersion(ctx context.Context) string
	DescribeClusterName(ctx context.Context) string

	SystemAddKeyspace(ctx context.Context, def tessera.KsDef) error
	SystemUpdateKeyspace(ctx context.Context, def tessera.KsDef) error
	SystemDropKeyspace(ctx context.Context, name string) error
	SystemRenameKeyspace(ctx context.Context, oldName, newName string) error
	SystemAddColumnFamily(ctx context.Context, def tessera.CfDef) error
	SystemDropColumnFamily(ctx context.Context, keyspace, cfName string) error
	SystemRenameColumnFamily(ctx context.Context, keyspace, oldName, newName string) error
}
