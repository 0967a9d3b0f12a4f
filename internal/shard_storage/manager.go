package shard_storage

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/ring"
)

var defaultShardCount = 16

type tokenizer interface {
	Token(key []byte) ring.Token
}

// Manager is the in-memory row store of every keyspace.
type Manager struct {
	mu     sync.RWMutex
	tables map[string]*table

	shardCount  int
	partitioner tokenizer
}

type Config struct {
	// ShardCount is the number of shards per keyspace. Zero picks the default.
	ShardCount  int
	Partitioner tokenizer
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ShardCount < 0 || c.ShardCount > 1024 {
		errGrp = append(errGrp, errors.New("shard count must be between 1 and 1024"))
	}
	if c.Partitioner == nil {
		errGrp = append(errGrp, errors.New("partitioner cannot be nil"))
	}
	return errors.Join(errGrp...)
}

// New creates an empty row store.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	shardCount := cfg.ShardCount
	if shardCount == 0 {
		shardCount = defaultShardCount
	}

	return &Manager{
		tables:      make(map[string]*table),
		shardCount:  shardCount,
		partitioner: cfg.Partitioner,
	}, nil
}

func (m *Manager) table(keyspace string) *table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[keyspace]
}

func (m *Manager) getOrCreateTable(keyspace string) *table {
	if t := m.table(keyspace); t != nil {
		return t
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[keyspace]
	if !ok {
		t = newTable(m.shardCount)
		m.tables[keyspace] = t
		log.Debug().Str("keyspace", keyspace).Msgf("created table with %d shards", m.shardCount)
	}
	return t
}

// DropKeyspace discards every row of a keyspace.
func (m *Manager) DropKeyspace(keyspace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, keyspace)
}

// RenameKeyspace moves the rows of oldName to newName.
func (m *Manager) RenameKeyspace(oldName, newName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tables[oldName]; ok {
		m.tables[newName] = t
		delete(m.tables, oldName)
	}
}

// RowCount is the number of rows held across all keyspaces.
func (m *Manager) RowCount() int {
	m.mu.RLock()
	tables := make([]*table, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, t)
	}
	m.mu.RUnlock()

	total := 0
	for _, t := range tables {
		for _, s := range t.shards {
			s.mu.RLock()
			total += len(s.rows)
			s.mu.RUnlock()
		}
	}
	return total
}
