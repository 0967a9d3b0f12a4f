package operations

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/tessera"
	"golang.org/x/sync/errgroup"
)

// multigetConcurrency bounds the per-key fan-out of a multiget.
const multigetConcurrency = 16

// Get returns the column, or the super column with its live children, at path.
func (m *Manager) Get(_ context.Context, keyspace string, key []byte, path tessera.ColumnPath,
	cl tessera.ConsistencyLevel) (_ *tessera.ColumnOrSuperColumn, err error) {
	defer m.observe("get", time.Now(), &err)

	if err := validateReadConsistency(cl); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}
	cf, err := m.lookup(keyspace, path.ColumnFamily)
	if err != nil {
		return nil, err
	}
	if err := validateColumnPath(cf, path, true); err != nil {
		return nil, err
	}

	now := m.now()
	var out *tessera.ColumnOrSuperColumn
	m.storage.Read(keyspace, key, cf.ID, func(f *column_family.Family) {
		if path.Column != nil {
			if col, ok := f.Column(path.SuperColumn, path.Column, now); ok {
				out = &tessera.ColumnOrSuperColumn{Column: &col}
			}
			return
		}
		if sc, ok := f.SuperColumn(path.SuperColumn, now); ok {
			out = &tessera.ColumnOrSuperColumn{SuperColumn: &sc}
		}
	})
	if out == nil {
		return nil, newError(ErrNotFound, "%s", describePath(cf, path))
	}
	return out, nil
}

func describePath(cf *schema.CFMetaData, path tessera.ColumnPath) string {
	s := cf.Name
	if path.SuperColumn != nil {
		s += "[" + cf.Comparator.GetString(path.SuperColumn) + "]"
	}
	if path.Column != nil {
		s += "[" + nameComparator(cf, path.SuperColumn).GetString(path.Column) + "]"
	}
	return s
}

// sliceRequest is a validated slice read of one column parent.
type sliceRequest struct {
	cf     *schema.CFMetaData
	super  []byte
	filter column_family.Filter
}

func (m *Manager) prepareSlice(keyspace string, parent tessera.ColumnParent, predicate *tessera.SlicePredicate,
	cl tessera.ConsistencyLevel) (*sliceRequest, error) {
	if err := validateReadConsistency(cl); err != nil {
		return nil, err
	}
	cf, err := m.lookup(keyspace, parent.ColumnFamily)
	if err != nil {
		return nil, err
	}
	if err := validateColumnParent(cf, parent); err != nil {
		return nil, err
	}
	if err := validatePredicate(cf, parent.SuperColumn, predicate); err != nil {
		return nil, err
	}
	return &sliceRequest{
		cf:     cf,
		super:  parent.SuperColumn,
		filter: column_family.NewFilter(predicate),
	}, nil
}

// slice reads one row. A missing row reads as empty.
func (m *Manager) slice(keyspace string, key []byte, req *sliceRequest, now time.Time) []tessera.ColumnOrSuperColumn {
	out := make([]tessera.ColumnOrSuperColumn, 0)
	m.storage.Read(keyspace, key, req.cf.ID, func(f *column_family.Family) {
		out = f.Slice(req.super, req.filter, now)
	})
	return out
}

// GetSlice returns the live columns, or super columns, of one row that match predicate,
// in comparator order.
func (m *Manager) GetSlice(_ context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (_ []tessera.ColumnOrSuperColumn, err error) {
	defer m.observe("get_slice", time.Now(), &err)

	if err := validateKey(key); err != nil {
		return nil, err
	}
	req, err := m.prepareSlice(keyspace, parent, predicate, cl)
	if err != nil {
		return nil, err
	}
	return m.slice(keyspace, key, req, m.now()), nil
}

// GetCount is the number of entries GetSlice would return.
func (m *Manager) GetCount(_ context.Context, keyspace string, key []byte, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (_ int32, err error) {
	defer m.observe("get_count", time.Now(), &err)

	if err := validateKey(key); err != nil {
		return 0, err
	}
	req, err := m.prepareSlice(keyspace, parent, predicate, cl)
	if err != nil {
		return 0, err
	}
	return int32(len(m.slice(keyspace, key, req, m.now()))), nil
}

// MultigetSlice runs GetSlice for every key in parallel. Every key is present in the
// result, with an empty slice when the row holds nothing.
func (m *Manager) MultigetSlice(ctx context.Context, keyspace string, keys [][]byte, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (_ map[string][]tessera.ColumnOrSuperColumn, err error) {
	defer m.observe("multiget_slice", time.Now(), &err)
	return m.multiget(ctx, keyspace, keys, parent, predicate, cl)
}

// MultigetCount is MultigetSlice reduced to counts.
func (m *Manager) MultigetCount(ctx context.Context, keyspace string, keys [][]byte, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (_ map[string]int32, err error) {
	defer m.observe("multiget_count", time.Now(), &err)

	slices, err := m.multiget(ctx, keyspace, keys, parent, predicate, cl)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int32, len(slices))
	for key, cols := range slices {
		out[key] = int32(len(cols))
	}
	return out, nil
}

func (m *Manager) multiget(ctx context.Context, keyspace string, keys [][]byte, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, cl tessera.ConsistencyLevel) (map[string][]tessera.ColumnOrSuperColumn, error) {
	for _, key := range keys {
		if err := validateKey(key); err != nil {
			return nil, err
		}
	}
	req, err := m.prepareSlice(keyspace, parent, predicate, cl)
	if err != nil {
		return nil, err
	}

	now := m.now()
	out := make(map[string][]tessera.ColumnOrSuperColumn, len(keys))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(multigetConcurrency)
	for _, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := m.slice(keyspace, key, req, now)
			mu.Lock()
			out[string(key)] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRangeSlices reads up to range.Count rows in ring order. A row is returned when it
// holds anything for the column family, even if nothing in it is live.
func (m *Manager) GetRangeSlices(ctx context.Context, keyspace string, parent tessera.ColumnParent,
	predicate *tessera.SlicePredicate, keyRange *tessera.KeyRange, cl tessera.ConsistencyLevel) (_ []tessera.KeySlice, err error) {
	defer m.observe("get_range_slices", time.Now(), &err)

	req, err := m.prepareSlice(keyspace, parent, predicate, cl)
	if err != nil {
		return nil, err
	}
	if err := validateKeyRange(keyRange); err != nil {
		return nil, err
	}

	var bounds ring.Bounds
	if keyRange.ByTokens() {
		bounds, err = m.ring.TokenBounds(*keyRange.StartToken, *keyRange.EndToken)
	} else {
		bounds, err = m.ring.KeyBounds(keyRange.StartKey, keyRange.EndKey)
	}
	if err != nil {
		return nil, rangeError(err)
	}

	now := m.now()
	out := make([]tessera.KeySlice, 0)
	m.storage.Range(keyspace, bounds, req.cf.ID, func(key []byte, f *column_family.Family) bool {
		if ctx.Err() != nil {
			return false
		}
		out = append(out, tessera.KeySlice{
			Key:     append([]byte(nil), key...),
			Columns: f.Slice(req.super, req.filter, now),
		})
		return len(out) < int(keyRange.Count)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("keyspace", keyspace).Str("column_family", req.cf.Name).
		Msgf("range scan returned %d rows", len(out))
	return out, nil
}
