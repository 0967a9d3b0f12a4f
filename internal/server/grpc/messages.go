package grpc

import "github.com/tessera-db/tessera/internal/tessera"

type Empty struct{}

type GetRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Key              []byte                   `json:"key"`
	ColumnPath       tessera.ColumnPath       `json:"column_path"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

// SliceRequest serves both GetSlice and GetCount.
type SliceRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Key              []byte                   `json:"key"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	Predicate        *tessera.SlicePredicate  `json:"predicate"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

type SliceResponse struct {
	Columns []tessera.ColumnOrSuperColumn `json:"columns"`
}

type CountResponse struct {
	Count int32 `json:"count"`
}

// MultigetRequest serves both MultigetSlice and MultigetCount.
type MultigetRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Keys             [][]byte                 `json:"keys"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	Predicate        *tessera.SlicePredicate  `json:"predicate"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

// KeySlicesResponse lists rows. Multiget responses keep the order of the requested keys
// with duplicates removed; range and index scans are in ring order.
type KeySlicesResponse struct {
	Rows []tessera.KeySlice `json:"rows"`
}

type KeyCount struct {
	Key   []byte `json:"key"`
	Count int32  `json:"count"`
}

type KeyCountsResponse struct {
	Counts []KeyCount `json:"counts"`
}

type RangeSlicesRequest struct {
	Keyspace         string                   `json:"keyspace"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	Predicate        *tessera.SlicePredicate  `json:"predicate"`
	Range            *tessera.KeyRange        `json:"range"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

type IndexedSlicesRequest struct {
	Keyspace         string                   `json:"keyspace"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	IndexClause      *tessera.IndexClause     `json:"index_clause"`
	Predicate        *tessera.SlicePredicate  `json:"predicate"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

type InsertRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Key              []byte                   `json:"key"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	Column           tessera.Column           `json:"column"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

type AddRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Key              []byte                   `json:"key"`
	ColumnParent     tessera.ColumnParent     `json:"column_parent"`
	Column           tessera.CounterColumn    `json:"column"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

type RemoveRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Key              []byte                   `json:"key"`
	ColumnPath       tessera.ColumnPath       `json:"column_path"`
	Timestamp        int64                    `json:"timestamp"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

// RowMutation groups the mutations of one row by column family. Keys are bytes, so a
// batch is a list rather than a map keyed by row.
type RowMutation struct {
	Key       []byte                        `json:"key"`
	Mutations map[string][]tessera.Mutation `json:"mutations"`
}

type BatchMutateRequest struct {
	Keyspace         string                   `json:"keyspace"`
	Mutations        []RowMutation            `json:"mutations"`
	ConsistencyLevel tessera.ConsistencyLevel `json:"consistency_level"`
}

// ColumnFamilyRequest names a column family for Truncate and SystemDropColumnFamily.
type ColumnFamilyRequest struct {
	Keyspace     string `json:"keyspace"`
	ColumnFamily string `json:"column_family"`
}

type KeyspaceRequest struct {
	Keyspace string `json:"keyspace"`
}

type RenameKeyspaceRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type RenameColumnFamilyRequest struct {
	Keyspace string `json:"keyspace"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type KeyspacesResponse struct {
	Keyspaces []tessera.KsDef `json:"keyspaces"`
}

type RingResponse struct {
	Ranges []tessera.TokenRange `json:"ranges"`
}

type StringResponse struct {
	Value string `json:"value"`
}
