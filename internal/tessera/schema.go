package tessera

// Column family types.
const (
	ColumnTypeStandard = "Standard"
	ColumnTypeSuper    = "Super"
)

// IndexTypeKeys is the only secondary index type.
const IndexTypeKeys = "KEYS"

// KsDef is the definition of a keyspace and its column families.
type KsDef struct {
	Name              string  `json:"name"`
	StrategyClass     string  `json:"strategy_class"`
	ReplicationFactor int     `json:"replication_factor"`
	CfDefs            []CfDef `json:"cf_defs"`
}

// CfDef is the definition of a column family. ID is assigned by the schema registry and
// survives renames.
type CfDef struct {
	ID                     int32       `json:"id"`
	Keyspace               string      `json:"keyspace"`
	Name                   string      `json:"name"`
	ColumnType             string      `json:"column_type"`
	ComparatorType         string      `json:"comparator_type"`
	SubcomparatorType      string      `json:"subcomparator_type,omitempty"`
	DefaultValidationClass string      `json:"default_validation_class,omitempty"`
	Counter                bool        `json:"counter,omitempty"`
	GCGraceSeconds         int32       `json:"gc_grace_seconds"`
	Comment                string      `json:"comment,omitempty"`
	ColumnMetadata         []ColumnDef `json:"column_metadata,omitempty"`
}

// ColumnDef declares a value validator, and optionally an index, for one column name.
type ColumnDef struct {
	Name            []byte `json:"name"`
	ValidationClass string `json:"validation_class"`
	IndexType       string `json:"index_type,omitempty"`
	IndexName       string `json:"index_name,omitempty"`
}
