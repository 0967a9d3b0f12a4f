package reaper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cfg     *Config
		wantErr bool
	}{
		"missing storage": {
			cfg:     &Config{GCInterval: 1, SweepInterval: 1},
			wantErr: true,
		},
		"zero intervals": {
			cfg:     &Config{Storage: NewMockstorage(gomock.NewController(t))},
			wantErr: true,
		},
		"valid": {
			cfg: &Config{Storage: NewMockstorage(gomock.NewController(t)), GCInterval: 1, SweepInterval: 60},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := New(tc.cfg)
			if tc.wantErr {
				req.Error(err)
				req.Nil(got)
				return
			}
			req.NoError(err)
			req.NotNil(got)
		})
	}
}

func TestReaper_GarbageCollector(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := NewMockstorage(ctrl)

	r, err := New(&Config{Storage: store, GCInterval: 1, SweepInterval: 60})
	req.NoError(err)

	now := time.Unix(1_700_000_000, 0)
	r.Reap(&ReapParams{Keyspace: "ks", RowKey: []byte("late"), ExpiresAt: now.Add(time.Hour).UnixNano()})
	r.Reap(&ReapParams{Keyspace: "ks", RowKey: []byte("key1"), ExpiresAt: now.Add(-time.Second).UnixNano()})
	r.Reap(&ReapParams{Keyspace: "ks", RowKey: []byte("key1"), ExpiresAt: now.UnixNano()})
	r.Reap(&ReapParams{Keyspace: "ks", RowKey: []byte("key2"), ExpiresAt: now.UnixNano()})

	// one purge per due row
	store.EXPECT().PurgeRow("ks", []byte("key1"), now).Return(2)
	store.EXPECT().PurgeRow("ks", []byte("key2"), now).Return(1)
	req.Equal(3, r.garbageCollector(now))

	// nothing else is due until the late hint
	req.Zero(r.garbageCollector(now.Add(time.Minute)))

	later := now.Add(2 * time.Hour)
	store.EXPECT().PurgeRow("ks", []byte("late"), later).Return(1)
	req.Equal(1, r.garbageCollector(later))
	req.Zero(r.pending.Len())
}

func TestReaper_Sweep(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := NewMockstorage(ctrl)

	r, err := New(&Config{Storage: store, GCInterval: 1, SweepInterval: 1})
	req.NoError(err)

	now := time.Unix(1_700_000_000, 0)
	store.EXPECT().Purge(now).Return(5)
	req.Equal(5, r.sweep(now))
}

func TestReaper_StartStop(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	ctrl := gomock.NewController(t)
	store := NewMockstorage(ctrl)
	store.EXPECT().Purge(gomock.Any()).Return(0).AnyTimes()
	store.EXPECT().PurgeRow(gomock.Any(), gomock.Any(), gomock.Any()).Return(0).AnyTimes()

	r, err := New(&Config{Storage: store, GCInterval: 1, SweepInterval: 1})
	req.NoError(err)
	req.NoError(r.Start())
	r.Reap(&ReapParams{Keyspace: "ks", RowKey: []byte("key1"), ExpiresAt: time.Now().UnixNano()})
	req.NoError(r.Stop())
	req.Equal("Reaper", r.Name())
}
