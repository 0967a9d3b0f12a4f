package shard_storage

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetShardIndex(t *testing.T) {
	tests := map[string]struct {
		shardCount int
		rowKeys    [][]byte
	}{
		"one shard": {
			shardCount: 1,
			rowKeys:    [][]byte{[]byte("key1"), []byte("key2"), {}},
		},
		"binary keys": {
			shardCount: 8,
			rowKeys:    [][]byte{{0x00}, {0xff, 0x00, 0x01}, []byte("Keyspace1"), []byte(uuid.NewString())},
		},
		"misconfigured count falls back to the first shard": {
			shardCount: 0,
			rowKeys:    [][]byte{[]byte("key1")},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)
			m := &Manager{shardCount: tc.shardCount}

			for _, key := range tc.rowKeys {
				idx := m.getShardIndex(string(key))
				if tc.shardCount <= 0 {
					req.Zero(idx)
					continue
				}
				req.GreaterOrEqual(idx, 0)
				req.Less(idx, tc.shardCount)
				req.Equal(idx, m.getShardIndex(string(key)), "a row always maps to the same shard")
			}
		})
	}
}

func TestGetShardIndex_Spread(t *testing.T) {
	req := require.New(t)
	const (
		shardCount = 16
		rows       = 160000
	)
	m := &Manager{shardCount: shardCount}
	rnd := rand.New(rand.NewSource(7))

	counts := make([]int, shardCount)
	key := make([]byte, 12)
	for i := 0; i < rows; i++ {
		binary.BigEndian.PutUint32(key, uint32(i))
		_, _ = rnd.Read(key[4:])
		counts[m.getShardIndex(string(key))]++
	}

	mean := rows / shardCount
	for shard, n := range counts {
		req.InDelta(mean, n, float64(mean)/10, "shard %d holds %d rows", shard, n)
	}
}
