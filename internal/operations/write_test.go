package operations

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/cdc_emitter"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/tessera"
	"go.uber.org/mock/gomock"
)

func TestManager_Insert_Validation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())

	col := func(name string, value []byte) tessera.Column {
		return tessera.Column{Name: []byte(name), Value: value, Timestamp: 1}
	}

	tests := map[string]struct {
		keyspace      string
		emptyKeyspace bool
		key           string
		parent        tessera.ColumnParent
		column        tessera.Column
		cl            tessera.ConsistencyLevel
		wantErr       error
	}{
		"valid": {
			key:    "k1",
			parent: tessera.ColumnParent{ColumnFamily: "Standard1"},
			column: col("c1", []byte("v")),
			cl:     one,
		},
		"zero consistency is accepted": {
			key:    "k1",
			parent: tessera.ColumnParent{ColumnFamily: "Standard1"},
			column: col("c1", []byte("v")),
			cl:     tessera.ConsistencyZero,
		},
		"any consistency is accepted": {
			key:    "k1",
			parent: tessera.ColumnParent{ColumnFamily: "Standard1"},
			column: col("c1", []byte("v")),
			cl:     tessera.ConsistencyAny,
		},
		"declared validator": {
			key:    "k1",
			parent: tessera.ColumnParent{ColumnFamily: "Validated1"},
			column: col("age", marshal.LongBytes(42)),
			cl:     one,
		},
		"counter delta": {
			key:    "k1",
			parent: tessera.ColumnParent{ColumnFamily: "Counter1"},
			column: col("c1", marshal.LongBytes(3)),
			cl:     one,
		},
		"unknown consistency": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  col("c1", []byte("v")),
			cl:      tessera.ConsistencyLevel(-1),
			wantErr: ErrInvalidRequest,
		},
		"empty keyspace": {
			emptyKeyspace: true,
			key:           "k1",
			parent:        tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:        col("c1", []byte("v")),
			cl:            one,
			wantErr:       ErrInvalidRequest,
		},
		"unknown keyspace": {
			keyspace: "Nope",
			key:      "k1",
			parent:   tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:   col("c1", []byte("v")),
			cl:       one,
			wantErr:  ErrNotFound,
		},
		"empty column family": {
			key:     "k1",
			column:  col("c1", []byte("v")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"empty key": {
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  col("c1", []byte("v")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"key too long": {
			key:     strings.Repeat("k", tessera.MaxNameLength+1),
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  col("c1", []byte("v")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"empty column name": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  col("", []byte("v")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"column name fails comparator": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  tessera.Column{Name: []byte{0xff}, Value: []byte("v"), Timestamp: 1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"negative ttl": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  tessera.Column{Name: []byte("c1"), Value: []byte("v"), Timestamp: 1, TTL: tessera.TTL(-1)},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"zero ttl": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  tessera.Column{Name: []byte("c1"), Value: []byte("v"), Timestamp: 1, TTL: tessera.TTL(0)},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"value too large": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1"},
			column:  col("c1", make([]byte, 1025)),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"declared validator rejects value": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Validated1"},
			column:  col("age", []byte("abc")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"default validator rejects value": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Validated1"},
			column:  col("name", []byte{0xff, 0xfe}),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"super family without super column": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Super1"},
			column:  tessera.Column{Name: marshal.LongBytes(1), Value: []byte("v"), Timestamp: 1},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"super column on standard family": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Standard1", SuperColumn: []byte("sc1")},
			column:  col("c1", []byte("v")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"counter delta is not a long": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Counter1"},
			column:  col("c1", []byte("abc")),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"negative counter delta": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Counter1"},
			column:  col("c1", marshal.LongBytes(-1)),
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
		"counter with ttl": {
			key:     "k1",
			parent:  tessera.ColumnParent{ColumnFamily: "Counter1"},
			column:  tessera.Column{Name: []byte("c1"), Value: marshal.LongBytes(1), Timestamp: 1, TTL: tessera.TTL(10)},
			cl:      one,
			wantErr: ErrInvalidRequest,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			keyspace := ks
			if tc.keyspace != "" || tc.emptyKeyspace {
				keyspace = tc.keyspace
			}

			err := env.m.Insert(t.Context(), keyspace, []byte(tc.key), tc.parent, tc.column, tc.cl)
			if tc.wantErr != nil {
				req.ErrorIs(err, tc.wantErr)
				return
			}
			req.NoError(err)
		})
	}
}

func TestManager_Insert_CommitLog(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()

	env.insert(t, "k1", "Standard1", "c1", "v1", 1)
	entries := env.walEntries()
	req.Len(entries, 1)
	req.Equal(tessera.OperationWrite, entries[0].Operation)
	req.Equal(ks, entries[0].Keyspace)
	req.Equal([]byte("k1"), entries[0].Key)
	req.Equal(env.clock(), entries[0].Timestamp)

	cf, err := env.schema.LookupColumnFamily(ks, "Standard1")
	req.NoError(err)
	req.Len(entries[0].Families[cf.ID], 1)
	req.Equal([]byte("c1"), entries[0].Families[cf.ID][0].Column.Name)

	// a failed append leaves the store untouched
	ctrl := gomock.NewController(t)
	failing := NewMockwriteAhead(ctrl)
	failing.EXPECT().Apply(gomock.Any()).Return(errors.New("disk full"))
	env.m.writeAhead = failing

	err = env.m.Insert(ctx, ks, []byte("k1"), tessera.ColumnParent{ColumnFamily: "Standard1"},
		tessera.Column{Name: []byte("c2"), Value: []byte("v2"), Timestamp: 1}, one)
	req.Error(err)
	_, err = env.m.Get(ctx, ks, []byte("k1"), tessera.ColumnPath{ColumnFamily: "Standard1", Column: []byte("c2")}, one)
	req.ErrorIs(err, ErrNotFound)

	// the commit log is optional
	env.m.writeAhead = nil
	env.insert(t, "k1", "Standard1", "c3", "v3", 1)
	_, err = env.m.Get(ctx, ks, []byte("k1"), tessera.ColumnPath{ColumnFamily: "Standard1", Column: []byte("c3")}, one)
	req.NoError(err)
}

func TestManager_Insert_ChangeStream(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()

	var (
		mu     sync.Mutex
		events []*cdc_emitter.CDCParams
	)
	ctrl := gomock.NewController(t)
	emitter := NewMockcdc(ctrl)
	emitter.EXPECT().Emit(gomock.Any()).Do(func(p *cdc_emitter.CDCParams) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, p)
	}).AnyTimes()
	env.m.cdc = emitter

	env.insert(t, "k1", "Standard1", "c1", "v1", 5)
	// masked by the newer write, so nothing changes and nothing is published
	env.insert(t, "k1", "Standard1", "c1", "v0", 4)
	req.NoError(env.m.Remove(ctx, ks, []byte("k1"), tessera.ColumnPath{ColumnFamily: "Standard1", Column: []byte("c1")}, 6, one))

	req.Len(events, 2)
	req.Equal(tessera.OperationWrite, events[0].Operation)
	req.Equal(ks, events[0].Keyspace)
	req.Equal([]byte("k1"), events[0].RowKey)
	req.Equal("Standard1", events[0].Family)
	req.Equal([]byte("c1"), events[0].Qualifier)
	req.Equal([]byte("v1"), events[0].Value)
	req.Equal(int64(5), events[0].Clock)

	req.Equal(tessera.OperationDelete, events[1].Operation)
	req.True(events[1].Tombstone)
	req.Equal(int64(6), events[1].Clock)
}

func TestManager_BatchMutate(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()

	env.insert(t, "k2", "Standard1", "c1", "old", 1)
	env.insert(t, "k2", "Standard1", "c2", "old", 1)

	mutations := tessera.MutationMap{
		"k2": {
			"Standard1": {
				{Deletion: &tessera.Deletion{Timestamp: 2, Predicate: &tessera.SlicePredicate{ColumnNames: [][]byte{[]byte("c1")}}}},
			},
		},
		"k1": {
			"Standard2": {
				{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{Column: &tessera.Column{Name: []byte("c1"), Value: []byte("s2"), Timestamp: 1}}},
			},
			"Standard1": {
				{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{Column: &tessera.Column{Name: []byte("c1"), Value: []byte("s1"), Timestamp: 1}}},
				{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{Column: &tessera.Column{Name: []byte("c2"), Value: []byte("s1"), Timestamp: 1}}},
			},
			"Super1": {
				{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{SuperColumn: &tessera.SuperColumn{
					Name: []byte("sc1"),
					Columns: []tessera.Column{
						{Name: marshal.LongBytes(2), Value: []byte("b"), Timestamp: 1},
						{Name: marshal.LongBytes(1), Value: []byte("a"), Timestamp: 1},
					},
				}}},
			},
		},
	}
	before := len(env.walEntries())
	req.NoError(env.m.BatchMutate(ctx, ks, mutations, one))

	entries := env.walEntries()[before:]
	req.Len(entries, 2, "one commit log record per row")
	req.Equal([]byte("k1"), entries[0].Key)
	req.Len(entries[0].Families, 3)
	req.Equal([]byte("k2"), entries[1].Key)

	k1 := []byte("k1")
	s1, err := env.m.GetSlice(ctx, ks, k1, tessera.ColumnParent{ColumnFamily: "Standard1"}, allColumns(), one)
	req.NoError(err)
	req.Equal([]string{"c1", "c2"}, columnNames(s1))
	s2, err := env.m.GetSlice(ctx, ks, k1, tessera.ColumnParent{ColumnFamily: "Standard2"}, allColumns(), one)
	req.NoError(err)
	req.Equal([]string{"c1"}, columnNames(s2))
	sc, err := env.m.Get(ctx, ks, k1, tessera.ColumnPath{ColumnFamily: "Super1", SuperColumn: []byte("sc1")}, one)
	req.NoError(err)
	req.Len(sc.SuperColumn.Columns, 2)
	req.Equal(marshal.LongBytes(1), sc.SuperColumn.Columns[0].Name)

	k2, err := env.m.GetSlice(ctx, ks, []byte("k2"), tessera.ColumnParent{ColumnFamily: "Standard1"}, allColumns(), one)
	req.NoError(err)
	req.Equal([]string{"c2"}, columnNames(k2))
}

func TestManager_BatchMutate_Deletion(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	env := newTestEnv(t, ring.NewByteOrderedPartitioner())
	ctx := t.Context()
	key := []byte("k1")

	for _, sc := range []string{"sc1", "sc2"} {
		for _, n := range []int64{1, 2} {
			req.NoError(env.m.Insert(ctx, ks, key, tessera.ColumnParent{ColumnFamily: "Super1", SuperColumn: []byte(sc)},
				tessera.Column{Name: marshal.LongBytes(n), Value: []byte("v"), Timestamp: 1}, one))
		}
	}

	del := func(d tessera.Deletion) tessera.MutationMap {
		return tessera.MutationMap{"k1": {"Super1": {{Deletion: &d}}}}
	}

	// sub columns of one super column
	req.NoError(env.m.BatchMutate(ctx, ks, del(tessera.Deletion{
		Timestamp:   2,
		SuperColumn: []byte("sc1"),
		Predicate:   &tessera.SlicePredicate{ColumnNames: [][]byte{marshal.LongBytes(1)}},
	}), one))
	got, err := env.m.Get(ctx, ks, key, tessera.ColumnPath{ColumnFamily: "Super1", SuperColumn: []byte("sc1")}, one)
	req.NoError(err)
	req.Len(got.SuperColumn.Columns, 1)
	req.Equal(marshal.LongBytes(2), got.SuperColumn.Columns[0].Name)

	// super columns by name
	req.NoError(env.m.BatchMutate(ctx, ks, del(tessera.Deletion{
		Timestamp: 2,
		Predicate: &tessera.SlicePredicate{ColumnNames: [][]byte{[]byte("sc2")}},
	}), one))
	_, err = env.m.Get(ctx, ks, key, tessera.ColumnPath{ColumnFamily: "Super1", SuperColumn: []byte("sc2")}, one)
	req.ErrorIs(err, ErrNotFound)

	// the whole family
	req.NoError(env.m.BatchMutate(ctx, ks, del(tessera.Deletion{Timestamp: 3}), one))
	supers, err := env.m.GetSlice(ctx, ks, key, tessera.ColumnParent{ColumnFamily: "Super1"}, allColumns(), one)
	req.NoError(err)
	req.Empty(supers)
}

func TestManager_BatchMutate_RejectsWholeBatch(t *testing.T) {
	t.Parallel()

	valid := tessera.Mutation{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{
		Column: &tessera.Column{Name: []byte("c1"), Value: []byte("v"), Timestamp: 1},
	}}

	tests := map[string]struct {
		row      map[string][]tessera.Mutation
		emptyKey bool
		wantErr  error
	}{
		"mutation with both payloads": {
			row: map[string][]tessera.Mutation{"Standard1": {{
				ColumnOrSuperColumn: valid.ColumnOrSuperColumn,
				Deletion:            &tessera.Deletion{Timestamp: 1},
			}}},
		},
		"empty mutation": {
			row: map[string][]tessera.Mutation{"Standard1": {{}}},
		},
		"column or super column with both": {
			row: map[string][]tessera.Mutation{"Super1": {{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{
				Column:      valid.ColumnOrSuperColumn.Column,
				SuperColumn: &tessera.SuperColumn{Name: []byte("sc1")},
			}}}},
		},
		"undeclared column family": {
			row:     map[string][]tessera.Mutation{"Nope": {valid}},
			wantErr: ErrNotFound,
		},
		"slice range deletion": {
			row: map[string][]tessera.Mutation{"Standard1": {{Deletion: &tessera.Deletion{
				Timestamp: 1,
				Predicate: &tessera.SlicePredicate{SliceRange: &tessera.SliceRange{Count: 10}},
			}}}},
		},
		"super column deletion on standard family": {
			row: map[string][]tessera.Mutation{"Standard1": {{Deletion: &tessera.Deletion{
				Timestamp:   1,
				SuperColumn: []byte("sc1"),
			}}}},
		},
		"column on super family": {
			row: map[string][]tessera.Mutation{"Super1": {valid}},
		},
		"super column on standard family": {
			row: map[string][]tessera.Mutation{"Standard1": {{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{
				SuperColumn: &tessera.SuperColumn{Name: []byte("sc1")},
			}}}},
		},
		"invalid sub column": {
			row: map[string][]tessera.Mutation{"Super1": {{ColumnOrSuperColumn: &tessera.ColumnOrSuperColumn{
				SuperColumn: &tessera.SuperColumn{
					Name:    []byte("sc1"),
					Columns: []tessera.Column{{Name: []byte("not-a-long"), Value: []byte("v"), Timestamp: 1}},
				},
			}}}},
		},
		"empty key": {
			row:      map[string][]tessera.Mutation{"Standard1": {valid}},
			emptyKey: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)
			env := newTestEnv(t, ring.NewByteOrderedPartitioner())
			ctx := t.Context()

			bad := "k2"
			if tc.emptyKey {
				bad = ""
			}
			wantErr := ErrInvalidRequest
			if tc.wantErr != nil {
				wantErr = tc.wantErr
			}
			mutations := tessera.MutationMap{
				"k1": {"Standard1": {valid}},
				"k3": {"Standard1": {valid}},
				bad:  tc.row,
			}

			err := env.m.BatchMutate(ctx, ks, mutations, one)
			req.ErrorIs(err, wantErr)
			req.Empty(env.walEntries())

			for _, key := range []string{"k1", "k3"} {
				cols, err := env.m.GetSlice(ctx, ks, []byte(key), tessera.ColumnParent{ColumnFamily: "Standard1"}, allColumns(), one)
				req.NoError(err)
				req.Empty(cols)
			}
		})
	}
}
