package column_family

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/tessera"
)

var epoch = time.Unix(1_700_000_000, 0)

func col(name, value string, clock int64) tessera.Column {
	return tessera.Column{Name: []byte(name), Value: []byte(value), Timestamp: clock}
}

func names(cs []tessera.ColumnOrSuperColumn) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Column != nil {
			out = append(out, string(c.Column.Name))
		} else {
			out = append(out, string(c.SuperColumn.Name))
		}
	}
	return out
}

func rangeFilter(start, finish string, reversed bool, count int) Filter {
	return Filter{Start: []byte(start), Finish: []byte(finish), Reversed: reversed, Count: count}
}

func TestReconcile(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		existing *column
		incoming *column
		incomingWins bool
	}{
		"higher clock wins": {
			existing:     &column{clock: 1, value: []byte("z")},
			incoming:     &column{clock: 2, value: []byte("a")},
			incomingWins: true,
		},
		"lower clock loses": {
			existing: &column{clock: 2, value: []byte("a")},
			incoming: &column{clock: 1, value: []byte("z")},
		},
		"tie goes to tombstone": {
			existing:     &column{clock: 5, value: []byte("z")},
			incoming:     &column{clock: 5, deleted: true},
			incomingWins: true,
		},
		"tie keeps existing tombstone": {
			existing: &column{clock: 5, deleted: true},
			incoming: &column{clock: 5, value: []byte("z")},
		},
		"tie goes to larger value": {
			existing:     &column{clock: 5, value: []byte("a")},
			incoming:     &column{clock: 5, value: []byte("b")},
			incomingWins: true,
		},
		"identical keeps existing": {
			existing: &column{clock: 5, value: []byte("a")},
			incoming: &column{clock: 5, value: []byte("a")},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := reconcile(tc.existing, tc.incoming)
			if tc.incomingWins {
				require.Same(t, tc.incoming, got)
				return
			}
			require.Same(t, tc.existing, got)
		})
	}
}

func TestFamily_ResurrectionLaw(t *testing.T) {
	t.Parallel()
	// insert at t1, remove at t2 >= t1, insert at t3: visible iff t3 > t2
	tests := map[string]struct {
		t1, t2, t3   int64
		deleteFamily bool
		visible      bool
	}{
		"later write resurrects":          {t1: 0, t2: 1, t3: 2, visible: true},
		"write at tombstone clock masked": {t1: 0, t2: 1, t3: 1},
		"older write masked":              {t1: 5, t2: 10, t3: 3},
		"family tombstone masks":          {t1: 0, t2: 4, t3: 4, deleteFamily: true},
		"family tombstone then newer":     {t1: 0, t2: 4, t3: 5, deleteFamily: true, visible: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			f := New(false, marshal.BytesType{}, nil)

			f.Apply(Insert(nil, col("c1", "v1", tc.t1)), epoch)
			if tc.deleteFamily {
				f.Apply(Delete(nil, nil, tc.t2), epoch)
			} else {
				f.Apply(Delete(nil, [][]byte{[]byte("c1")}, tc.t2), epoch)
			}
			f.Apply(Insert(nil, col("c1", "v3", tc.t3)), epoch)

			got, ok := f.Column(nil, []byte("c1"), epoch)
			req.Equal(tc.visible, ok)
			if tc.visible {
				req.Equal("v3", string(got.Value))
			}
		})
	}
}

func TestFamily_InsertIsIdempotent(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(false, marshal.BytesType{}, nil)

	changes := f.Apply(Insert(nil, col("c1", "v1", 3)), epoch)
	req.Len(changes, 1)
	req.Empty(f.Apply(Insert(nil, col("c1", "v1", 3)), epoch))

	got := f.Slice(nil, rangeFilter("", "", false, 100), epoch)
	req.Equal([]string{"c1"}, names(got))
}

func TestFamily_Slice(t *testing.T) {
	t.Parallel()
	f := New(false, marshal.BytesType{}, nil)
	for _, n := range []string{"c1", "c2", "c3"} {
		f.Apply(Insert(nil, col(n, "value", 0)), epoch)
	}

	tests := map[string]struct {
		filter Filter
		want   []string
	}{
		"bounded":             {filter: rangeFilter("c1", "c2", false, 1000), want: []string{"c1", "c2"}},
		"reversed bounded":    {filter: rangeFilter("c3", "c2", true, 1000), want: []string{"c3", "c2"}},
		"count limits":        {filter: rangeFilter("a", "z", false, 2), want: []string{"c1", "c2"}},
		"reversed count":      {filter: rangeFilter("", "", true, 2), want: []string{"c3", "c2"}},
		"open start":          {filter: rangeFilter("", "c2", false, 100), want: []string{"c1", "c2"}},
		"start past end":      {filter: rangeFilter("d", "", false, 100), want: []string{}},
		"names sorted unique": {filter: Filter{Names: [][]byte{[]byte("c3"), []byte("c1"), []byte("c1"), []byte("x")}, Count: 4}, want: []string{"c1", "c3"}},
		"zero count":          {filter: rangeFilter("", "", false, 0), want: []string{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := f.Slice(nil, tc.filter, epoch)
			require.Equal(t, tc.want, names(got))
			require.Equal(t, len(tc.want), f.Count(nil, tc.filter, epoch))
		})
	}
}

func TestFamily_LongComparator(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(false, marshal.LongType{}, nil)
	for _, n := range []int64{5, -1, 300, 2} {
		f.Apply(Insert(nil, tessera.Column{Name: marshal.LongBytes(n), Value: []byte("v")}), epoch)
	}

	got := f.Slice(nil, Filter{Start: marshal.LongBytes(0), Count: 10}, epoch)
	var order []int64
	for _, c := range got {
		v, err := marshal.BytesLong(c.Column.Name)
		req.NoError(err)
		order = append(order, v)
	}
	req.Equal([]int64{2, 5, 300}, order)
}

func TestFamily_TTL(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(false, marshal.BytesType{}, nil)

	c := col("c1", "v", 10)
	c.TTL = tessera.TTL(2)
	f.Apply(Insert(nil, c), epoch)

	_, ok := f.Column(nil, []byte("c1"), epoch)
	req.True(ok)
	_, ok = f.Column(nil, []byte("c1"), epoch.Add(time.Second))
	req.True(ok)
	_, ok = f.Column(nil, []byte("c1"), epoch.Add(2*time.Second))
	req.False(ok)

	// the expired column still masks writes at or below its clock
	later := epoch.Add(3 * time.Second)
	f.Apply(Insert(nil, col("c1", "old", 9)), later)
	_, ok = f.Column(nil, []byte("c1"), later)
	req.False(ok)

	// a write without ttl replaces it
	f.Apply(Insert(nil, col("c1", "new", 11)), later)
	got, ok := f.Column(nil, []byte("c1"), later.Add(time.Hour))
	req.True(ok)
	req.Equal("new", string(got.Value))
}

func TestFamily_TTL_EqualClockWrite(t *testing.T) {
	t.Parallel()
	later := epoch.Add(3 * time.Second)

	for name, reaped := range map[string]bool{"lazily expired": false, "reaped": true} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)
			f := New(false, marshal.BytesType{}, nil)

			c := col("c1", "a", 10)
			c.TTL = tessera.TTL(2)
			f.Apply(Insert(nil, c), epoch)
			if reaped {
				req.Equal(1, f.Purge(later, epoch))
			}

			// the expired column is a tombstone at clock 10 and wins the tie
			req.Empty(f.Apply(Insert(nil, col("c1", "z", 10)), later))
			_, ok := f.Column(nil, []byte("c1"), later)
			req.False(ok)
		})
	}
}

func TestFamily_Super(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(true, marshal.BytesType{}, marshal.LongType{})
	sc1, sc2 := []byte("sc1"), []byte("sc2")

	f.Apply(Insert(sc1, tessera.Column{Name: marshal.LongBytes(4), Value: []byte("value4"), Timestamp: 0}), epoch)
	f.Apply(Insert(sc2, tessera.Column{Name: marshal.LongBytes(5), Value: []byte("value5"), Timestamp: 0}), epoch)
	f.Apply(Insert(sc2, tessera.Column{Name: marshal.LongBytes(6), Value: []byte("value6"), Timestamp: 0}), epoch)

	supers := f.Slice(nil, rangeFilter("", "", false, 100), epoch)
	req.Equal([]string{"sc1", "sc2"}, names(supers))
	req.Len(supers[1].SuperColumn.Columns, 2)

	// sub-column slice under a super column
	subs := f.Slice(sc2, Filter{Start: marshal.LongBytes(6), Count: 10}, epoch)
	req.Len(subs, 1)

	// remove the super column, then write below and above its tombstone
	f.Apply(Delete(sc2, nil, 1), epoch)
	_, ok := f.SuperColumn(sc2, epoch)
	req.False(ok)

	f.Apply(Insert(sc2, tessera.Column{Name: marshal.LongBytes(5), Value: []byte("masked"), Timestamp: 1}), epoch)
	_, ok = f.SuperColumn(sc2, epoch)
	req.False(ok)

	f.Apply(Insert(sc2, tessera.Column{Name: marshal.LongBytes(5), Value: []byte("back"), Timestamp: 2}), epoch)
	got, ok := f.SuperColumn(sc2, epoch)
	req.True(ok)
	req.Len(got.Columns, 1)
	req.Equal("back", string(got.Columns[0].Value))

	// deleting by name without a super column removes whole super columns
	f.Apply(Delete(nil, [][]byte{sc1}, 3), epoch)
	req.Equal([]string{"sc2"}, names(f.Slice(nil, rangeFilter("", "", false, 100), epoch)))
}

func TestFamily_Counters(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(false, marshal.BytesType{}, nil)
	name := []byte("c1")

	for _, d := range []int64{12, 21, 35} {
		f.Apply(Add(nil, name, d, 0, "node-a"), epoch)
	}
	got, ok := f.Column(nil, name, epoch)
	req.True(ok)
	total, err := marshal.BytesLong(got.Value)
	req.NoError(err)
	req.Equal(int64(68), total)

	// partial sums from other nodes are summed
	f.Apply(Add(nil, name, 2, 0, "node-b"), epoch)
	got, _ = f.Column(nil, name, epoch)
	total, _ = marshal.BytesLong(got.Value)
	req.Equal(int64(70), total)

	f.Apply(Clear(nil, [][]byte{name}), epoch)
	_, ok = f.Column(nil, name, epoch)
	req.False(ok)

	f.Apply(Add(nil, name, 10, 0, "node-a"), epoch)
	got, _ = f.Column(nil, name, epoch)
	total, _ = marshal.BytesLong(got.Value)
	req.Equal(int64(10), total)

	f.Apply(Clear(nil, nil), epoch)
	req.True(f.IsEmpty())
}

func TestFamily_Purge(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	f := New(false, marshal.BytesType{}, nil)

	expiring := col("ttl", "v", 1)
	expiring.TTL = tessera.TTL(1)
	f.Apply(Insert(nil, expiring), epoch)
	f.Apply(Insert(nil, col("keep", "v", 1)), epoch)
	f.Apply(Delete(nil, [][]byte{[]byte("gone")}, 2), epoch)
	req.True(f.HasExpiring())

	// before the grace period only the expired column turns into a tombstone
	n := f.Purge(epoch.Add(2*time.Second), epoch.Add(-time.Hour))
	req.Equal(1, n)
	req.False(f.HasExpiring())
	_, ok := f.Column(nil, []byte("ttl"), epoch.Add(2*time.Second))
	req.False(ok)

	// past the grace period tombstones go away
	n = f.Purge(epoch.Add(time.Hour), epoch.Add(time.Hour))
	req.Equal(2, n)
	req.Equal(1, f.columns.len())

	f.Apply(Delete(nil, nil, 5), epoch)
	req.False(f.IsEmpty())
	f.Purge(epoch.Add(time.Hour), epoch.Add(time.Hour))
	req.True(f.IsEmpty())
}
