package tessera

// MaxNameLength is the largest key, column or super column name that can be stored.
const MaxNameLength = 65535

// Column is the unit of mutation and reconciliation:
//
//	Column{
//	  Name:      []byte("email"),
//	  Value:     []byte("champ@example.com"),
//	  Timestamp: 1715000000000000,
//	  TTL:       tessera.TTL(3600),
//	}
//
// A nil TTL means the column never expires. A set TTL must be positive.
type Column struct {
	Name      []byte `json:"name"`
	Value     []byte `json:"value"`
	Timestamp int64  `json:"timestamp"`
	TTL       *int32 `json:"ttl,omitempty"`
}

// TTL returns a Column.TTL of the given number of seconds.
func TTL(seconds int32) *int32 {
	return &seconds
}

// SuperColumn nests one level of columns under a name. Columns are returned in
// sub-comparator order.
type SuperColumn struct {
	Name    []byte   `json:"name"`
	Columns []Column `json:"columns"`
}

// CounterColumn is the payload of an add call.
type CounterColumn struct {
	Name  []byte `json:"name"`
	Value int64  `json:"value"`
}

// ColumnOrSuperColumn carries exactly one of Column or SuperColumn.
type ColumnOrSuperColumn struct {
	Column      *Column      `json:"column,omitempty"`
	SuperColumn *SuperColumn `json:"super_column,omitempty"`
}

// ColumnParent addresses a standard column family, or a super column inside a super
// column family.
type ColumnParent struct {
	ColumnFamily string `json:"column_family"`
	SuperColumn  []byte `json:"super_column,omitempty"`
}

// ColumnPath addresses a column family, a super column or a single column.
type ColumnPath struct {
	ColumnFamily string `json:"column_family"`
	SuperColumn  []byte `json:"super_column,omitempty"`
	Column       []byte `json:"column,omitempty"`
}

// Parent drops the column part of the path.
func (p ColumnPath) Parent() ColumnParent {
	return ColumnParent{ColumnFamily: p.ColumnFamily, SuperColumn: p.SuperColumn}
}

// SliceRange selects a contiguous run of columns. Empty bounds are open.
type SliceRange struct {
	Start    []byte `json:"start"`
	Finish   []byte `json:"finish"`
	Reversed bool   `json:"reversed"`
	Count    int32  `json:"count"`
}

// DefaultSliceCount is used when a slice range is built without a count.
const DefaultSliceCount = 100

// SlicePredicate is either an explicit list of column names or a SliceRange.
type SlicePredicate struct {
	ColumnNames [][]byte    `json:"column_names,omitempty"`
	SliceRange  *SliceRange `json:"slice_range,omitempty"`
}

// Deletion removes the columns named by Predicate, the super column, or the whole
// column family of a row, at Timestamp.
type Deletion struct {
	Timestamp   int64           `json:"timestamp"`
	SuperColumn []byte          `json:"super_column,omitempty"`
	Predicate   *SlicePredicate `json:"predicate,omitempty"`
}

// Mutation is one entry of a batch. Exactly one of ColumnOrSuperColumn and Deletion
// must be set.
type Mutation struct {
	ColumnOrSuperColumn *ColumnOrSuperColumn `json:"column_or_supercolumn,omitempty"`
	Deletion            *Deletion            `json:"deletion,omitempty"`
}

// MutationMap is key → column family → mutations.
type MutationMap map[string]map[string][]Mutation

// KeyRange bounds a range scan either by keys (inclusive on both ends) or by tokens
// (start exclusive, end inclusive).
type KeyRange struct {
	StartKey   []byte  `json:"start_key,omitempty"`
	EndKey     []byte  `json:"end_key,omitempty"`
	StartToken *string `json:"start_token,omitempty"`
	EndToken   *string `json:"end_token,omitempty"`
	Count      int32   `json:"count"`
}

// ByTokens reports whether the range is expressed in tokens.
func (r *KeyRange) ByTokens() bool {
	return r.StartToken != nil || r.EndToken != nil
}

// KeySlice is one row of a range or index scan.
type KeySlice struct {
	Key     []byte                `json:"key"`
	Columns []ColumnOrSuperColumn `json:"columns"`
}

type IndexOperator int

const (
	IndexOperatorEQ IndexOperator = iota
	IndexOperatorGTE
	IndexOperatorGT
	IndexOperatorLTE
	IndexOperatorLT
)

func (o IndexOperator) String() string {
	switch o {
	case IndexOperatorEQ:
		return "EQ"
	case IndexOperatorGTE:
		return "GTE"
	case IndexOperatorGT:
		return "GT"
	case IndexOperatorLTE:
		return "LTE"
	case IndexOperatorLT:
		return "LT"
	}
	return "UNKNOWN"
}

type IndexExpression struct {
	ColumnName []byte        `json:"column_name"`
	Op         IndexOperator `json:"op"`
	Value      []byte        `json:"value"`
}

// IndexClause is an AND of expressions. At least one must be an EQ on an indexed column.
type IndexClause struct {
	Expressions []IndexExpression `json:"expressions"`
	StartKey    []byte            `json:"start_key"`
	Count       int32             `json:"count"`
}

// TokenRange describes which endpoints own a slice of the ring.
type TokenRange struct {
	StartToken string   `json:"start_token"`
	EndToken   string   `json:"end_token"`
	Endpoints  []string `json:"endpoints"`
}
