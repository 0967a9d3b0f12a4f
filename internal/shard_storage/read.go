package shard_storage

import (
	"bytes"
	"sort"

	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/ring"
)

// scanBatch is how many positions a range scan copies out of the tree at a time.
const scanBatch = 256

// Read calls fn with the family cfID of row key while holding the row's read lock. It
// reports false, without calling fn, when the row holds nothing for that family.
func (m *Manager) Read(keyspace string, key []byte, cfID int32, fn func(f *column_family.Family)) bool {
	t := m.table(keyspace)
	if t == nil {
		return false
	}
	r := m.lookup(t, key)
	if r == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.families[cfID]
	if !ok {
		return false
	}
	fn(f)
	return true
}

// Range visits, in ring order, every row inside bounds that holds data or tombstones for
// cfID. fn runs under the row's read lock and stops the scan by returning false.
func (m *Manager) Range(keyspace string, bounds ring.Bounds, cfID int32, fn func(key []byte, f *column_family.Family) bool) {
	t := m.table(keyspace)
	if t == nil {
		return
	}

	for _, seg := range bounds.Segments() {
		var after *position
		for {
			batch := t.positionsIn(seg, after, scanBatch)
			for _, p := range batch {
				if !m.visit(t, []byte(p.key), cfID, fn) {
					return
				}
			}
			if len(batch) < scanBatch {
				break
			}
			after = &batch[len(batch)-1]
		}
	}
}

// visit calls fn for one row and reports whether the scan should go on.
func (m *Manager) visit(t *table, key []byte, cfID int32, fn func([]byte, *column_family.Family) bool) bool {
	r := m.lookup(t, key)
	if r == nil {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.families[cfID]
	if !ok {
		return true
	}
	return fn(r.key, f)
}

// positionsIn copies up to limit positions of seg, starting after the given position
// or at the start of the segment.
func (t *table) positionsIn(seg ring.Segment, after *position, limit int) []position {
	pivot := position{token: seg.From}
	if after != nil {
		pivot = *after
	}

	out := make([]position, 0, limit)
	t.posMu.RLock()
	defer t.posMu.RUnlock()
	t.positions.AscendGreaterOrEqual(pivot, func(p position) bool {
		if after != nil {
			if p.key == after.key && bytes.Equal(p.token, after.token) {
				return true
			}
		} else if !seg.FromInclusive && p.token.Compare(seg.From) == 0 {
			return true
		}
		if seg.To != nil && p.token.Compare(seg.To) > 0 {
			return false
		}
		out = append(out, p)
		return len(out) < limit
	})
	return out
}

// IndexCardinality is the number of keys indexed under value for column of cfID.
func (m *Manager) IndexCardinality(keyspace string, cfID int32, column, value []byte) int {
	t := m.table(keyspace)
	if t == nil {
		return 0
	}
	return t.index.Cardinality(cfID, column, value)
}

// IndexLookup returns the keys indexed under value, in ring order, starting at the
// position of startKey when it is set.
func (m *Manager) IndexLookup(keyspace string, cfID int32, column, value, startKey []byte) [][]byte {
	t := m.table(keyspace)
	if t == nil {
		return nil
	}

	keys := t.index.Lookup(cfID, column, value)
	positions := make([]position, 0, len(keys))
	for _, k := range keys {
		positions = append(positions, position{token: m.partitioner.Token(k), key: string(k)})
	}
	sort.Slice(positions, func(i, j int) bool {
		return lessPosition(positions[i], positions[j])
	})

	var start *position
	if len(startKey) > 0 {
		start = &position{token: m.partitioner.Token(startKey), key: string(startKey)}
	}

	out := make([][]byte, 0, len(positions))
	for _, p := range positions {
		if start != nil && lessPosition(p, *start) {
			continue
		}
		out = append(out, []byte(p.key))
	}
	return out
}
