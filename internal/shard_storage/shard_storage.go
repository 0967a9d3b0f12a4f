// Package shard_storage holds the rows of every keyspace in memory.
//
// Rows of a keyspace are spread over a fixed number of shards by an FNV-1a hash of the
// row key. A shard lock only guards the map from key to row; reconciliation happens
// under the row's own lock, so writers to different rows of one shard never wait on
// each other.
//
// Hashing loses key order, so each keyspace also keeps every row position in a B-tree
// ordered by (token, key). Range scans copy a batch of positions from the tree, release
// it, and then visit the rows one at a time.
package shard_storage

import (
	"bytes"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/index"
	"github.com/tessera-db/tessera/internal/ring"
)

const positionDegree = 32

// row is one row key of one keyspace. A removed row has been unlinked by the reaper;
// a writer that finds it removed must look the key up again.
type row struct {
	mu       sync.RWMutex
	key      []byte
	token    ring.Token
	families map[int32]*column_family.Family
	removed  bool
}

// shard is a slice of the rows of one keyspace.
type shard struct {
	mu   sync.RWMutex
	rows map[string]*row
}

type position struct {
	token ring.Token
	key   string
}

func lessPosition(a, b position) bool {
	if c := bytes.Compare(a.token, b.token); c != 0 {
		return c < 0
	}
	return a.key < b.key
}

// table is the storage of one keyspace.
type table struct {
	shards []*shard

	posMu     sync.RWMutex
	positions *btree.BTreeG[position]

	index *index.Index

	// gc grace per column family, learned from the writes that reached it
	graceMu sync.RWMutex
	graces  map[int32]time.Duration
}

func newTable(shardCount int) *table {
	t := &table{
		shards:    make([]*shard, shardCount),
		positions: btree.NewG[position](positionDegree, lessPosition),
		index:     index.New(),
		graces:    make(map[int32]time.Duration),
	}
	for i := range t.shards {
		t.shards[i] = &shard{rows: make(map[string]*row)}
	}
	return t
}

// getShardIndex determines which shard a particular row key belongs to.
func (m *Manager) getShardIndex(rowKey string) int {
	if m.shardCount <= 0 {
		return 0
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(rowKey))
	hash := h.Sum32()

	return int(hash % uint32(m.shardCount))
}

func (m *Manager) shardFor(t *table, key []byte) *shard {
	return t.shards[m.getShardIndex(string(key))]
}

// lookup returns the row for key, or nil.
func (m *Manager) lookup(t *table, key []byte) *row {
	s := m.shardFor(t, key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[string(key)]
}

// getOrCreate returns the row for key, linking a new one into its shard and the
// position tree when needed.
func (m *Manager) getOrCreate(t *table, key []byte) *row {
	s := m.shardFor(t, key)

	s.mu.RLock()
	r, ok := s.rows[string(key)]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok = s.rows[string(key)]; ok {
		return r
	}

	r = &row{
		key:      append([]byte(nil), key...),
		token:    m.partitioner.Token(key),
		families: make(map[int32]*column_family.Family),
	}
	s.rows[string(key)] = r

	t.posMu.Lock()
	t.positions.ReplaceOrInsert(position{token: r.token, key: string(key)})
	t.posMu.Unlock()

	return r
}

// unlink removes r from its shard and the position tree. The caller holds the shard
// lock and the row lock.
func (t *table) unlink(s *shard, r *row) {
	r.removed = true
	delete(s.rows, string(r.key))

	t.posMu.Lock()
	t.positions.Delete(position{token: r.token, key: string(r.key)})
	t.posMu.Unlock()
}
