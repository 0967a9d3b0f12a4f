// Package index keeps KEYS secondary indexes: for each indexed column, the row keys
// last written with each value. Entries can go stale after updates and deletes, so
// readers must re-check candidates against live row data.
package index

import (
	"sync"
)

type columnIndex struct {
	byValue map[string]map[string]struct{}
	byKey   map[string]string
}

func newColumnIndex() *columnIndex {
	return &columnIndex{
		byValue: make(map[string]map[string]struct{}),
		byKey:   make(map[string]string),
	}
}

// Index holds the secondary indexes of one keyspace, by column family id.
type Index struct {
	mu      sync.RWMutex
	entries map[int32]map[string]*columnIndex
}

func New() *Index {
	return &Index{entries: make(map[int32]map[string]*columnIndex)}
}

// Add records that key now holds value in column. The key's previous value for that
// column, if any, stops pointing at it.
func (ix *Index) Add(cfID int32, column, value, key []byte) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	cols, ok := ix.entries[cfID]
	if !ok {
		cols = make(map[string]*columnIndex)
		ix.entries[cfID] = cols
	}
	ci, ok := cols[string(column)]
	if !ok {
		ci = newColumnIndex()
		cols[string(column)] = ci
	}

	k := string(key)
	if prev, ok := ci.byKey[k]; ok {
		if prev == string(value) {
			return
		}
		ci.unlink(prev, k)
	}
	keys, ok := ci.byValue[string(value)]
	if !ok {
		keys = make(map[string]struct{})
		ci.byValue[string(value)] = keys
	}
	keys[k] = struct{}{}
	ci.byKey[k] = string(value)
}

// Remove forgets key for column.
func (ix *Index) Remove(cfID int32, column, key []byte) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ci, ok := ix.entries[cfID][string(column)]
	if !ok {
		return
	}
	if prev, ok := ci.byKey[string(key)]; ok {
		ci.unlink(prev, string(key))
		delete(ci.byKey, string(key))
	}
}

// RemoveKey forgets key in every indexed column of a family.
func (ix *Index) RemoveKey(cfID int32, key []byte) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, ci := range ix.entries[cfID] {
		if prev, ok := ci.byKey[string(key)]; ok {
			ci.unlink(prev, string(key))
			delete(ci.byKey, string(key))
		}
	}
}

func (ci *columnIndex) unlink(value, key string) {
	keys := ci.byValue[value]
	delete(keys, key)
	if len(keys) == 0 {
		delete(ci.byValue, value)
	}
}

// Lookup returns the keys indexed under value, in no particular order.
func (ix *Index) Lookup(cfID int32, column, value []byte) [][]byte {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ci, ok := ix.entries[cfID][string(column)]
	if !ok {
		return nil
	}
	keys := ci.byValue[string(value)]
	out := make([][]byte, 0, len(keys))
	for k := range keys {
		out = append(out, []byte(k))
	}
	return out
}

// Cardinality is the number of keys indexed under value.
func (ix *Index) Cardinality(cfID int32, column, value []byte) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries[cfID][string(column)].valueKeys(string(value)))
}

func (ci *columnIndex) valueKeys(value string) map[string]struct{} {
	if ci == nil {
		return nil
	}
	return ci.byValue[value]
}

// Drop removes every index of a column family.
func (ix *Index) Drop(cfID int32) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, cfID)
}
