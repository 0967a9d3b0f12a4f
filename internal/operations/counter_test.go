package operations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/tessera"
)

func (env *testEnv) counter(t *testing.T, key string, path tessera.ColumnPath) (int64, bool) {
	t.Helper()
	got, err := env.m.Get(t.Context(), ks, []byte(key), path, one)
	if err != nil {
		require.ErrorIs(t, err, ErrNotFound)
		return 0, false
	}
	v, err := marshal.BytesLong(got.Column.Value)
	require.NoError(t, err)
	return v, true
}

func TestManager_Add(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()
	key := []byte("k1")
	parent := tessera.ColumnParent{ColumnFamily: "Counter1"}
	path := tessera.ColumnPath{ColumnFamily: "Counter1", Column: []byte("c1")}

	for _, delta := range []int64{12, 21, 35} {
		req.NoError(env.m.Add(ctx, ks, key, parent, tessera.CounterColumn{Name: []byte("c1"), Value: delta}, one))
	}
	v, ok := env.counter(t, "k1", path)
	req.True(ok)
	req.Equal(int64(68), v)

	req.NoError(env.m.Remove(ctx, ks, key, path, env.clock().UnixMicro()+1000, one))
	_, ok = env.counter(t, "k1", path)
	req.False(ok)

	// removal leaves nothing behind to mask the next increment
	req.NoError(env.m.Add(ctx, ks, key, parent, tessera.CounterColumn{Name: []byte("c1"), Value: 10}, one))
	v, ok = env.counter(t, "k1", path)
	req.True(ok)
	req.Equal(int64(10), v)

	// an insert into a counter family carries a delta
	req.NoError(env.m.Insert(ctx, ks, key, parent, tessera.Column{Name: []byte("c1"), Value: marshal.LongBytes(5), Timestamp: 1}, one))
	v, _ = env.counter(t, "k1", path)
	req.Equal(int64(15), v)

	entries := env.walEntries()
	req.Equal(tessera.OperationIncrement, entries[0].Operation)
}

func TestManager_Add_SuperCounter(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()
	key := []byte("k1")

	for _, sc := range []string{"sc1", "sc2"} {
		parent := tessera.ColumnParent{ColumnFamily: "SuperCounter1", SuperColumn: []byte(sc)}
		req.NoError(env.m.Add(ctx, ks, key, parent, tessera.CounterColumn{Name: []byte("c1"), Value: 2}, one))
		req.NoError(env.m.Add(ctx, ks, key, parent, tessera.CounterColumn{Name: []byte("c1"), Value: 3}, one))
	}

	v, ok := env.counter(t, "k1", tessera.ColumnPath{ColumnFamily: "SuperCounter1", SuperColumn: []byte("sc1"), Column: []byte("c1")})
	req.True(ok)
	req.Equal(int64(5), v)

	req.NoError(env.m.Remove(ctx, ks, key, tessera.ColumnPath{ColumnFamily: "SuperCounter1", SuperColumn: []byte("sc1")}, 1, one))
	supers, err := env.m.GetSlice(ctx, ks, key, tessera.ColumnParent{ColumnFamily: "SuperCounter1"}, allColumns(), one)
	req.NoError(err)
	req.Equal([]string{"sc2"}, columnNames(supers))
}

func TestManager_Add_Concurrent(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewRandomPartitioner())
	parent := tessera.ColumnParent{ColumnFamily: "Counter1"}

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- env.m.Add(t.Context(), ks, []byte("k1"), parent, tessera.CounterColumn{Name: []byte("hits"), Value: 1}, one)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		req.NoError(err)
	}

	v, ok := env.counter(t, "k1", tessera.ColumnPath{ColumnFamily: "Counter1", Column: []byte("hits")})
	req.True(ok)
	req.Equal(int64(writers), v)
}

func TestManager_Add_Validation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())

	tests := map[string]struct {
		parent  tessera.ColumnParent
		column  tessera.CounterColumn
		cl      tessera.ConsistencyLevel
		wantErr error
	}{
		"valid": {
			parent: tessera.ColumnParent{ColumnFamily: "Counter1"},
			column: tessera.CounterColumn{Name: []byte("c1"), Value: 1},
			cl:     one,
		},
		"zero delta": {
			parent: tessera.ColumnParent{ColumnFamily: "Counter1"},
			column: tessera.CounterColumn{Name: []byte("c1")},
			cl:     tessera.ConsistencyZero,
		},
		"negative delta": {
			parent:  tessera.ColumnParent{ColumnFamily: "Counter1"},
			column:  tessera.CounterColumn{Name: []byte("c1"), Value: -1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"non counter family": {
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  tessera.CounterColumn{Name: []byte("c1"), Value: 1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"super family without super column": {
			parent:  tessera.ColumnParent{ColumnFamily: "SuperCounter1"},
			column:  tessera.CounterColumn{Name: []byte("c1"), Value: 1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"empty name": {
			parent:  tessera.ColumnParent{ColumnFamily: "Counter1"},
			column:  tessera.CounterColumn{Value: 1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"unknown column family": {
			parent:  tessera.ColumnParent{ColumnFamily: "Nope"},
			column:  tessera.CounterColumn{Name: []byte("c1"), Value: 1},
			cl:      one,
			wantErr: ErrNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			err := env.m.Add(t.Context(), ks, []byte(name), tc.parent, tc.column, tc.cl)
			if tc.wantErr != nil {
				req.ErrorIs(err, tc.wantErr)
				return
			}
			req.NoError(err)
		})
	}
}
