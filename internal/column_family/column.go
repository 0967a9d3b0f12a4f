package column_family

import (
	"bytes"
	"math"
	"time"

	"github.com/google/btree"
	"github.com/tessera-db/tessera/internal/marshal"
	"github.com/tessera-db/tessera/internal/tessera"
)

const (
	btreeDegree = 16
	// liveClock marks a scope with no tombstone.
	liveClock = math.MinInt64
)

// column is a stored column, column tombstone or counter.
type column struct {
	name  []byte
	value []byte
	clock int64
	ttl   int32
	// expiresAt is unix nanoseconds; zero never expires.
	expiresAt int64

	deleted bool
	// localDeletion is the unix second a tombstone was written, used for gc grace.
	localDeletion int64

	// counts holds per-node partial sums of a counter column.
	counts map[string]int64
}

func newColumn(c *tessera.Column, now time.Time) *column {
	col := &column{
		name:  c.Name,
		value: c.Value,
		clock: c.Timestamp,
	}
	if c.TTL != nil && *c.TTL > 0 {
		col.ttl = *c.TTL
		col.expiresAt = now.Add(time.Duration(col.ttl) * time.Second).UnixNano()
	}
	return col
}

func newTombstone(name []byte, clock int64, now time.Time) *column {
	return &column{name: name, clock: clock, deleted: true, localDeletion: now.Unix()}
}

func (c *column) expired(now time.Time) bool {
	return c.expiresAt != 0 && now.UnixNano() >= c.expiresAt
}

// live reports whether the column is visible under a covering tombstone at maskedAt.
func (c *column) live(maskedAt int64, now time.Time) bool {
	if c.deleted {
		return false
	}
	if c.counts != nil {
		return true
	}
	return c.clock > maskedAt && !c.expired(now)
}

func (c *column) isCounter() bool {
	return c.counts != nil
}

func (c *column) counterTotal() int64 {
	var total int64
	for _, v := range c.counts {
		total += v
	}
	return total
}

func (c *column) toColumn() tessera.Column {
	out := tessera.Column{Name: c.name, Value: c.value, Timestamp: c.clock}
	if c.ttl > 0 {
		out.TTL = tessera.TTL(c.ttl)
	}
	if c.isCounter() {
		out.Value = marshal.LongBytes(c.counterTotal())
	}
	return out
}

// reconcile returns whichever of two versions of a column wins. Higher clocks win; on a
// tie a tombstone beats a value, then the larger value wins, and otherwise existing is
// kept.
func reconcile(existing, incoming *column) *column {
	switch {
	case incoming.clock > existing.clock:
		return incoming
	case incoming.clock < existing.clock:
		return existing
	case existing.deleted != incoming.deleted:
		if incoming.deleted {
			return incoming
		}
		return existing
	case bytes.Compare(incoming.value, existing.value) > 0:
		return incoming
	}
	return existing
}

// columns is a comparator-ordered set of columns.
type columns struct {
	tree *btree.BTreeG[*column]
}

func newColumns(cmp marshal.AbstractType) *columns {
	return &columns{
		tree: btree.NewG(btreeDegree, func(a, b *column) bool {
			return cmp.Compare(a.name, b.name) < 0
		}),
	}
}

func (cs *columns) get(name []byte) (*column, bool) {
	return cs.tree.Get(&column{name: name})
}

func (cs *columns) put(c *column) {
	cs.tree.ReplaceOrInsert(c)
}

func (cs *columns) remove(name []byte) {
	cs.tree.Delete(&column{name: name})
}

func (cs *columns) len() int {
	return cs.tree.Len()
}

// purgeMasked drops every column a tombstone at clock makes unreachable.
func (cs *columns) purgeMasked(clock int64) {
	var doomed []*column
	cs.tree.Ascend(func(c *column) bool {
		if !c.isCounter() && c.clock <= clock {
			doomed = append(doomed, c)
		}
		return true
	})
	for _, c := range doomed {
		cs.tree.Delete(c)
	}
}

// asOf returns c as it stands at now: an expired column acts as a tombstone at its
// own clock, whether or not the reaper has converted it yet.
func (c *column) asOf(now time.Time) *column {
	if c.deleted || !c.expired(now) {
		return c
	}
	return &column{name: c.name, clock: c.clock, deleted: true}
}

// reconcileInto merges incoming as of now and reports whether it won.
func (cs *columns) reconcileInto(incoming *column, now time.Time) bool {
	existing, ok := cs.get(incoming.name)
	if ok && reconcile(existing.asOf(now), incoming) != incoming {
		return false
	}
	cs.put(incoming)
	return true
}
