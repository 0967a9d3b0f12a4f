package schema

import (
	"fmt"
	"time"

	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/tessera"
)

const defaultGCGraceSeconds = 864000

// CFMetaData is the resolved form of a column family definition: comparators and
// validators are looked up once here and shared by every read and write.
type CFMetaData struct {
	ID       int32
	Keyspace string
	Name     string

	Super   bool
	Counter bool

	Comparator       marshal.AbstractType
	SubComparator    marshal.AbstractType
	DefaultValidator marshal.AbstractType

	validators map[string]marshal.AbstractType
	indexed    map[string]struct{}

	GCGrace time.Duration

	def tessera.CfDef
}

func newCFMetaData(def tessera.CfDef) (*CFMetaData, error) {
	if def.ColumnType == "" {
		def.ColumnType = tessera.ColumnTypeStandard
	}
	if def.ColumnType != tessera.ColumnTypeStandard && def.ColumnType != tessera.ColumnTypeSuper {
		return nil, fmt.Errorf("%w: invalid column type %q", ErrInvalidDefinition, def.ColumnType)
	}
	if !validName(def.Name) {
		return nil, fmt.Errorf("%w: invalid column family name %q", ErrInvalidDefinition, def.Name)
	}

	comparator, err := marshal.Get(def.ComparatorType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	def.ComparatorType = comparator.Name()

	m := &CFMetaData{
		ID:         def.ID,
		Keyspace:   def.Keyspace,
		Name:       def.Name,
		Super:      def.ColumnType == tessera.ColumnTypeSuper,
		Counter:    def.Counter,
		Comparator: comparator,
		validators: make(map[string]marshal.AbstractType),
		indexed:    make(map[string]struct{}),
	}

	if m.Super {
		sub, err := marshal.Get(def.SubcomparatorType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		m.SubComparator = sub
		def.SubcomparatorType = sub.Name()
	} else if def.SubcomparatorType != "" {
		return nil, fmt.Errorf("%w: subcomparator is only valid for super column families",
			ErrInvalidDefinition)
	}

	if m.DefaultValidator, err = marshal.Get(def.DefaultValidationClass); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if m.Counter {
		m.DefaultValidator = marshal.LongType{}
	}
	def.DefaultValidationClass = m.DefaultValidator.Name()

	for _, cd := range def.ColumnMetadata {
		nameCmp := comparator
		if m.Super {
			nameCmp = m.SubComparator
		}
		if err := nameCmp.Validate(cd.Name); err != nil || len(cd.Name) == 0 {
			return nil, fmt.Errorf("%w: invalid column metadata name %q", ErrInvalidDefinition, cd.Name)
		}
		v, err := marshal.Get(cd.ValidationClass)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		m.validators[string(cd.Name)] = v
		switch cd.IndexType {
		case "":
		case tessera.IndexTypeKeys:
			if m.Super || m.Counter {
				return nil, fmt.Errorf("%w: secondary indexes are only supported on standard column families",
					ErrInvalidDefinition)
			}
			m.indexed[string(cd.Name)] = struct{}{}
		default:
			return nil, fmt.Errorf("%w: unknown index type %q", ErrInvalidDefinition, cd.IndexType)
		}
	}

	if def.GCGraceSeconds == 0 {
		def.GCGraceSeconds = defaultGCGraceSeconds
	}
	if def.GCGraceSeconds < 0 {
		return nil, fmt.Errorf("%w: gc_grace_seconds must not be negative", ErrInvalidDefinition)
	}
	m.GCGrace = time.Duration(def.GCGraceSeconds) * time.Second
	m.def = def

	return m, nil
}

// ColumnComparator orders the columns that hold values: the comparator of a standard
// family, the sub-comparator of a super family.
func (m *CFMetaData) ColumnComparator() marshal.AbstractType {
	if m.Super {
		return m.SubComparator
	}
	return m.Comparator
}

// ValueValidator returns the validator declared for column name, or the default.
func (m *CFMetaData) ValueValidator(name []byte) marshal.AbstractType {
	if v, ok := m.validators[string(name)]; ok {
		return v
	}
	return m.DefaultValidator
}

// IsIndexed reports whether column name has a KEYS index.
func (m *CFMetaData) IsIndexed(name []byte) bool {
	_, ok := m.indexed[string(name)]
	return ok
}

// IndexedColumns lists the indexed column names.
func (m *CFMetaData) IndexedColumns() [][]byte {
	out := make([][]byte, 0, len(m.indexed))
	for name := range m.indexed {
		out = append(out, []byte(name))
	}
	return out
}

// Def returns a copy of the definition the metadata was built from.
func (m *CFMetaData) Def() tessera.CfDef {
	d := m.def
	d.ID = m.ID
	d.Keyspace = m.Keyspace
	d.Name = m.Name
	d.ColumnMetadata = append([]tessera.ColumnDef(nil), m.def.ColumnMetadata...)
	return d
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
