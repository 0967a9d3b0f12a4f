package operations

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/tessera"
)

// GetIndexedSlices returns the rows whose live columns satisfy every expression of the
// clause. Candidates come from the indexed EQ expression with the fewest matches and are
// re-checked against live data, so stale index entries are harmless.
func (m *Manager) GetIndexedSlices(ctx context.Context, keyspace string, parent tessera.ColumnParent,
	clause *tessera.IndexClause, predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (_ []tessera.KeySlice, err error) {
	defer m.observe("get_indexed_slices", time.Now(), &err)

	req, err := m.prepareSlice(keyspace, parent, predicate, cl)
	if err != nil {
		return nil, err
	}
	if req.cf.Super {
		return nil, invalidf("Unable to scan unindexed column: super CF %s has no indexes", req.cf.Name)
	}
	seeds, err := validateIndexClause(req.cf, clause)
	if err != nil {
		return nil, err
	}

	seed := seeds[0]
	best := m.storage.IndexCardinality(keyspace, req.cf.ID, seed.ColumnName, seed.Value)
	for _, expr := range seeds[1:] {
		if n := m.storage.IndexCardinality(keyspace, req.cf.ID, expr.ColumnName, expr.Value); n < best {
			seed, best = expr, n
		}
	}
	log.Debug().Str("column_family", req.cf.Name).Int("candidates", best).
		Msgf("index scan seeded from %s", req.cf.ColumnComparator().GetString(seed.ColumnName))

	now := m.now()
	out := make([]tessera.KeySlice, 0)
	if clause.Count == 0 {
		return out, nil
	}

	candidates := m.storage.IndexLookup(keyspace, req.cf.ID, seed.ColumnName, seed.Value, clause.StartKey)
	for _, key := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.storage.Read(keyspace, key, req.cf.ID, func(f *column_family.Family) {
			if !matches(req.cf, f, clause.Expressions, now) {
				return
			}
			out = append(out, tessera.KeySlice{
				Key:     key,
				Columns: f.Slice(nil, req.filter, now),
			})
		})
		if len(out) >= int(clause.Count) {
			break
		}
	}
	return out, nil
}

// matches reports whether the live columns of f satisfy every expression.
func matches(cf *schema.CFMetaData, f *column_family.Family, exprs []tessera.IndexExpression, now time.Time) bool {
	for _, expr := range exprs {
		col, ok := f.Column(nil, expr.ColumnName, now)
		if !ok {
			return false
		}
		if !satisfies(expr.Op, cf.ValueValidator(expr.ColumnName).Compare(col.Value, expr.Value)) {
			return false
		}
	}
	return true
}

// satisfies applies op to the result of comparing a column value with the expression.
func satisfies(op tessera.IndexOperator, c int) bool {
	switch op {
	case tessera.IndexOperatorEQ:
		return c == 0
	case tessera.IndexOperatorGTE:
		return c >= 0
	case tessera.IndexOperatorGT:
		return c > 0
	case tessera.IndexOperatorLTE:
		return c <= 0
	case tessera.IndexOperatorLT:
		return c < 0
	}
	return false
}
