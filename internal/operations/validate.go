package operations

import (
	"encoding/hex"

	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/tessera"
)

// lookup resolves the column family a request names.
func (m *Manager) lookup(keyspace, cfName string) (*schema.CFMetaData, error) {
	if keyspace == "" {
		return nil, invalidf("keyspace may not be empty")
	}
	if cfName == "" {
		return nil, invalidf("non-empty columnfamily is required")
	}
	cf, err := m.schema.LookupColumnFamily(keyspace, cfName)
	if err != nil {
		return nil, schemaError(err)
	}
	return cf, nil
}

func validateReadConsistency(cl tessera.ConsistencyLevel) error {
	if !cl.Valid() {
		return invalidf("unknown consistency level %d", int(cl))
	}
	if cl == tessera.ConsistencyZero || cl == tessera.ConsistencyAny {
		return newError(ErrUnavailable, "consistency level %s is not supported for reads", cl)
	}
	return nil
}

func validateWriteConsistency(cl tessera.ConsistencyLevel) error {
	if !cl.Valid() {
		return invalidf("unknown consistency level %d", int(cl))
	}
	return nil
}

func validateKey(key []byte) error {
	if len(key) == 0 {
		return invalidf("Key may not be empty")
	}
	if len(key) > tessera.MaxNameLength {
		return invalidf("Key length of %d is longer than maximum of %d", len(key), tessera.MaxNameLength)
	}
	return nil
}

// validateColumnPath checks a path for get (full) or remove (partial) semantics. A get
// must name a column on a standard family and a super column on a super family.
func validateColumnPath(cf *schema.CFMetaData, path tessera.ColumnPath, full bool) error {
	if !cf.Super {
		if path.SuperColumn != nil {
			return invalidf("supercolumn parameter is invalid for standard CF %s", cf.Name)
		}
		if full && path.Column == nil {
			return invalidf("column parameter is not optional for standard CF %s", cf.Name)
		}
	} else if path.SuperColumn == nil {
		if full {
			return invalidf("supercolumn parameter is not optional for super CF %s", cf.Name)
		}
		if path.Column != nil {
			return invalidf("column parameter requires a supercolumn for super CF %s", cf.Name)
		}
	}

	if path.Column != nil {
		return validateNames(cf, path.SuperColumn, [][]byte{path.Column})
	}
	if path.SuperColumn != nil {
		return validateNames(cf, nil, [][]byte{path.SuperColumn})
	}
	return nil
}

func validateColumnParent(cf *schema.CFMetaData, parent tessera.ColumnParent) error {
	if !cf.Super && parent.SuperColumn != nil {
		return invalidf("columnfamily alone is required for standard CF %s", cf.Name)
	}
	if parent.SuperColumn != nil {
		return validateNames(cf, nil, [][]byte{parent.SuperColumn})
	}
	return nil
}

// nameComparator orders the names found directly under super: super column names when
// a super family is addressed without one, column names otherwise.
func nameComparator(cf *schema.CFMetaData, super []byte) marshal.AbstractType {
	if cf.Super && super == nil {
		return cf.Comparator
	}
	return cf.ColumnComparator()
}

func validateNames(cf *schema.CFMetaData, super []byte, names [][]byte) error {
	if super != nil {
		if len(super) > tessera.MaxNameLength {
			return invalidf("supercolumn name length must not be greater than %d", tessera.MaxNameLength)
		}
		if len(super) == 0 {
			return invalidf("supercolumn name must not be empty")
		}
		if !cf.Super {
			return invalidf("supercolumn specified to ColumnFamily %s containing normal columns", cf.Name)
		}
		if err := cf.Comparator.Validate(super); err != nil {
			return invalidf("%v", err)
		}
	}

	cmp := nameComparator(cf, super)
	for _, name := range names {
		if len(name) > tessera.MaxNameLength {
			return invalidf("column name length must not be greater than %d", tessera.MaxNameLength)
		}
		if len(name) == 0 {
			return invalidf("column name must not be empty")
		}
		if err := cmp.Validate(name); err != nil {
			return invalidf("%v", err)
		}
	}
	return nil
}

func validateRange(cmp marshal.AbstractType, r *tessera.SliceRange) error {
	if err := cmp.Validate(r.Start); err != nil {
		return invalidf("%v", err)
	}
	if err := cmp.Validate(r.Finish); err != nil {
		return invalidf("%v", err)
	}
	if r.Count < 0 {
		return invalidf("get_slice requires non-negative count")
	}

	if len(r.Start) > 0 && len(r.Finish) > 0 {
		c := cmp.Compare(r.Start, r.Finish)
		if r.Reversed {
			c = -c
		}
		if c > 0 {
			return invalidf("range finish must come after start in the order of traversal")
		}
	}
	return nil
}

func validatePredicate(cf *schema.CFMetaData, super []byte, p *tessera.SlicePredicate) error {
	if p == nil || (p.ColumnNames == nil && p.SliceRange == nil) {
		return invalidf("predicate column_names and slice_range may not both be null")
	}
	if p.ColumnNames != nil && p.SliceRange != nil {
		return invalidf("predicate column_names and slice_range may not both be present")
	}
	if p.SliceRange != nil {
		return validateRange(nameComparator(cf, super), p.SliceRange)
	}
	return validateNames(cf, super, p.ColumnNames)
}

func validateTTL(col *tessera.Column) error {
	if col.TTL != nil && *col.TTL <= 0 {
		return invalidf("ttl must be positive")
	}
	return nil
}

// validateColumn checks a column written under super.
func (m *Manager) validateColumn(cf *schema.CFMetaData, super []byte, col *tessera.Column) error {
	if err := validateTTL(col); err != nil {
		return err
	}
	if err := validateNames(cf, super, [][]byte{col.Name}); err != nil {
		return err
	}
	if len(col.Value) > m.maxValueBytes {
		return invalidf("value length of %d is longer than maximum of %d", len(col.Value), m.maxValueBytes)
	}

	if cf.Counter {
		if col.TTL != nil {
			return invalidf("ttl is not supported on counter columns")
		}
		return validateDelta(col.Value)
	}

	if err := cf.ValueValidator(col.Name).Validate(col.Value); err != nil {
		return invalidf("[%s][%s][%s] = [%s] failed validation (%v)", cf.Keyspace, cf.Name,
			hex.EncodeToString(col.Name), hex.EncodeToString(col.Value), err)
	}
	return nil
}

// validateDelta checks the 8-byte delta a counter column carries in its value.
func validateDelta(value []byte) error {
	delta, err := marshal.BytesLong(value)
	if err != nil {
		return invalidf("Value is not a valid long delta: %v", err)
	}
	if delta < 0 {
		return invalidf("Value must be positive when using an increment counter")
	}
	return nil
}

func (m *Manager) validateColumnOrSuperColumn(cf *schema.CFMetaData, cosc *tessera.ColumnOrSuperColumn) error {
	switch {
	case cosc.Column != nil && cosc.SuperColumn != nil:
		return invalidf("ColumnOrSuperColumn must have one of Column or SuperColumn, not both")
	case cosc.Column != nil:
		if cf.Super {
			return invalidf("column specified to super ColumnFamily %s", cf.Name)
		}
		return m.validateColumn(cf, nil, cosc.Column)
	case cosc.SuperColumn != nil:
		sc := cosc.SuperColumn
		if !cf.Super {
			return invalidf("supercolumn specified to ColumnFamily %s containing normal columns", cf.Name)
		}
		if err := validateNames(cf, sc.Name, nil); err != nil {
			return err
		}
		for i := range sc.Columns {
			if err := m.validateColumn(cf, sc.Name, &sc.Columns[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return invalidf("ColumnOrSuperColumn must have one of Column or SuperColumn")
}

func validateDeletion(cf *schema.CFMetaData, del *tessera.Deletion) error {
	if !cf.Super && del.SuperColumn != nil {
		return invalidf("deletion of super_column is not possible on a standard ColumnFamily (KeySpace=%s ColumnFamily=%s)",
			cf.Keyspace, cf.Name)
	}
	if del.SuperColumn != nil {
		if err := validateNames(cf, nil, [][]byte{del.SuperColumn}); err != nil {
			return err
		}
	}
	if del.Predicate == nil {
		return nil
	}
	if del.Predicate.ColumnNames == nil && del.Predicate.SliceRange == nil {
		return invalidf("A SlicePredicate must be given a list of Columns, a SliceRange, or both")
	}
	if del.Predicate.SliceRange != nil {
		return invalidf("Deletion does not yet support SliceRange predicates.")
	}
	return validateNames(cf, del.SuperColumn, del.Predicate.ColumnNames)
}

func (m *Manager) validateMutation(cf *schema.CFMetaData, mut *tessera.Mutation) error {
	switch {
	case mut.ColumnOrSuperColumn != nil && mut.Deletion != nil:
		return invalidf("Mutation may have either a ColumnOrSuperColumn or a Deletion, but not both")
	case mut.ColumnOrSuperColumn != nil:
		return m.validateColumnOrSuperColumn(cf, mut.ColumnOrSuperColumn)
	case mut.Deletion != nil:
		return validateDeletion(cf, mut.Deletion)
	}
	return invalidf("Mutation must have one ColumnOrSuperColumn or one Deletion")
}

func validateKeyRange(r *tessera.KeyRange) error {
	if r == nil {
		return invalidf("key range is required")
	}
	if (r.StartToken == nil) != (r.EndToken == nil) {
		return invalidf("start token and end token must either both be non-null, or both be null")
	}
	if r.ByTokens() && (r.StartKey != nil || r.EndKey != nil) {
		return invalidf("exactly one of {start key, end key} or {start token, end token} must be specified")
	}
	if r.Count <= 0 {
		return invalidf("maxRows must be positive")
	}
	return nil
}

// validateIndexClause checks every expression and returns the indexed EQ expressions a
// scan can be seeded from.
func validateIndexClause(cf *schema.CFMetaData, clause *tessera.IndexClause) ([]tessera.IndexExpression, error) {
	if clause == nil || len(clause.Expressions) == 0 {
		return nil, invalidf("index clause list may not be empty")
	}
	if clause.Count < 0 {
		return nil, invalidf("index clause count must not be negative")
	}
	if len(clause.StartKey) > tessera.MaxNameLength {
		return nil, invalidf("Key length of %d is longer than maximum of %d", len(clause.StartKey), tessera.MaxNameLength)
	}

	var seeds []tessera.IndexExpression
	for _, expr := range clause.Expressions {
		if err := validateNames(cf, nil, [][]byte{expr.ColumnName}); err != nil {
			return nil, err
		}
		if expr.Op < tessera.IndexOperatorEQ || expr.Op > tessera.IndexOperatorLT {
			return nil, invalidf("unknown index operator %d", int(expr.Op))
		}
		if err := cf.ValueValidator(expr.ColumnName).Validate(expr.Value); err != nil {
			return nil, invalidf("index expression value for %s failed validation (%v)",
				hex.EncodeToString(expr.ColumnName), err)
		}
		if expr.Op == tessera.IndexOperatorEQ && cf.IsIndexed(expr.ColumnName) {
			seeds = append(seeds, expr)
		}
	}
	if len(seeds) == 0 {
		return nil, invalidf("Unable to scan unindexed column: no EQ expression on an indexed column")
	}
	return seeds, nil
}
