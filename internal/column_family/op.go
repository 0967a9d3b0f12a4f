package column_family

import (
	"github.com/tessera-db/tessera/internal/tessera"
)

// OpKind tags an Op.
type OpKind uint8

const (
	// OpInsert reconciles Column into the family.
	OpInsert OpKind = iota + 1
	// OpDelete plants a tombstone at Clock over Names, the super column, or the family.
	OpDelete
	// OpAdd adds Delta to a counter.
	OpAdd
	// OpClear drops counters without leaving a tombstone.
	OpClear
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpAdd:
		return "add"
	case OpClear:
		return "clear"
	}
	return "unknown"
}

// Op is one validated change to a single column family of a single row. The scope of a
// delete or clear is the narrowest of Names, SuperColumn and the whole family that is
// set.
type Op struct {
	Kind        OpKind          `json:"kind"`
	SuperColumn []byte          `json:"super_column,omitempty"`
	Column      *tessera.Column `json:"column,omitempty"`
	Names       [][]byte        `json:"names"`
	Clock       int64           `json:"clock,omitempty"`
	Delta       int64           `json:"delta,omitempty"`
	NodeID      string          `json:"node_id,omitempty"`
}

func Insert(super []byte, col tessera.Column) Op {
	return Op{Kind: OpInsert, SuperColumn: super, Column: &col, Clock: col.Timestamp}
}

func Delete(super []byte, names [][]byte, clock int64) Op {
	return Op{Kind: OpDelete, SuperColumn: super, Names: names, Clock: clock}
}

func Add(super, name []byte, delta, clock int64, nodeID string) Op {
	return Op{Kind: OpAdd, SuperColumn: super, Names: [][]byte{name}, Delta: delta, Clock: clock, NodeID: nodeID}
}

func Clear(super []byte, names [][]byte) Op {
	return Op{Kind: OpClear, SuperColumn: super, Names: names}
}

// Change describes what an applied Op did to one column or scope. Name is nil when a
// whole super column or family was deleted.
type Change struct {
	Operation   tessera.Operation
	SuperColumn []byte
	Name        []byte
	Value       []byte
	Clock       int64
	ExpiresAt   int64
	Tombstone   bool
}
