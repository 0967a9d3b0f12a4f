// Package schema is the registry of keyspaces and column families. Column family data
// is keyed by a numeric id assigned here, so a rename never touches stored rows.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/tessera"
)

const (
	schemaFile           = "schema.json"
	defaultStrategyClass = "SimpleStrategy"
	systemKeyspace       = "system"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrExists            = errors.New("already exists")
	ErrInvalidDefinition = errors.New("invalid definition")
)

type keyspace struct {
	def tessera.KsDef
	cfs map[string]*CFMetaData
}

// Registry holds the live schema. Lookups take a read lock; changes are persisted
// before they become visible.
type Registry struct {
	mu        sync.RWMutex
	keyspaces map[string]*keyspace
	nextID    int32
	file      string
}

type Config struct {
	// Path is the directory schema.json lives in.
	Path string
	// Bootstrap is applied when no schema file exists yet.
	Bootstrap []tessera.KsDef
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("schema path is required"))
	}
	return errors.Join(errGrp...)
}

// persisted is the on-disk layout of schema.json.
type persisted struct {
	NextID    int32           `json:"next_id"`
	Keyspaces []tessera.KsDef `json:"keyspaces"`
}

func New(cfg *Config) (*Registry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create schema directory: %w", err)
	}

	r := &Registry{
		keyspaces: make(map[string]*keyspace),
		nextID:    1000,
		file:      filepath.Join(cfg.Path, schemaFile),
	}

	loaded, err := r.load()
	if err != nil {
		return nil, err
	}
	if loaded {
		return r, nil
	}

	for _, ks := range cfg.Bootstrap {
		if err := r.AddKeyspace(ks); err != nil {
			return nil, fmt.Errorf("failed to bootstrap keyspace %s: %w", ks.Name, err)
		}
	}
	return r, nil
}

func (r *Registry) load() (bool, error) {
	data, err := os.ReadFile(r.file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read schema file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return false, fmt.Errorf("failed to parse schema file: %w", err)
	}

	for _, ksDef := range p.Keyspaces {
		ks := &keyspace{def: ksDef, cfs: make(map[string]*CFMetaData)}
		for _, cfDef := range ksDef.CfDefs {
			cfDef.Keyspace = ksDef.Name
			m, err := newCFMetaData(cfDef)
			if err != nil {
				return false, err
			}
			ks.cfs[m.Name] = m
		}
		ks.def.CfDefs = nil
		r.keyspaces[ksDef.Name] = ks
	}
	r.nextID = p.NextID

	log.Info().Int("keyspaces", len(r.keyspaces)).Str("file", r.file).Msg("schema loaded")
	return true, nil
}

// persist writes the schema atomically. Callers hold the write lock.
func (r *Registry) persist() error {
	p := persisted{NextID: r.nextID}
	for _, name := range r.keyspaceNames() {
		p.Keyspaces = append(p.Keyspaces, r.describe(r.keyspaces[name]))
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	tmp := r.file + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	if err := os.Rename(tmp, r.file); err != nil {
		return fmt.Errorf("failed to replace schema file: %w", err)
	}
	return nil
}

// LookupColumnFamily resolves a column family of a keyspace.
func (r *Registry) LookupColumnFamily(ks, cf string) (*CFMetaData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keyspaces[ks]
	if !ok {
		return nil, fmt.Errorf("%w: keyspace %s", ErrNotFound, ks)
	}
	m, ok := k.cfs[cf]
	if !ok {
		return nil, fmt.Errorf("%w: unconfigured columnfamily %s", ErrNotFound, cf)
	}
	return m, nil
}

// LookupByID resolves a column family by id, wherever its keyspace now lives. Ids are
// never reused, so records written before a rename still find their column family.
func (r *Registry) LookupByID(id int32) (*CFMetaData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.keyspaces {
		for _, m := range k.cfs {
			if m.ID == id {
				return m, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: columnfamily id %d", ErrNotFound, id)
}

// HasKeyspace reports whether ks is defined.
func (r *Registry) HasKeyspace(ks string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keyspaces[ks]
	return ok
}

// Keyspaces lists keyspace names in sorted order.
func (r *Registry) Keyspaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keyspaceNames()
}

func (r *Registry) keyspaceNames() []string {
	names := make([]string, 0, len(r.keyspaces))
	for name := range r.keyspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DescribeKeyspace returns the full definition of ks.
func (r *Registry) DescribeKeyspace(ks string) (tessera.KsDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keyspaces[ks]
	if !ok {
		return tessera.KsDef{}, fmt.Errorf("%w: keyspace %s", ErrNotFound, ks)
	}
	return r.describe(k), nil
}

func (r *Registry) describe(k *keyspace) tessera.KsDef {
	def := k.def
	def.CfDefs = make([]tessera.CfDef, 0, len(k.cfs))
	for _, m := range k.cfs {
		def.CfDefs = append(def.CfDefs, m.Def())
	}
	sort.Slice(def.CfDefs, func(i, j int) bool {
		return def.CfDefs[i].Name < def.CfDefs[j].Name
	})
	return def
}

// ColumnFamilies returns the metadata of every column family in ks.
func (r *Registry) ColumnFamilies(ks string) ([]*CFMetaData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.keyspaces[ks]
	if !ok {
		return nil, fmt.Errorf("%w: keyspace %s", ErrNotFound, ks)
	}
	out := make([]*CFMetaData, 0, len(k.cfs))
	for _, m := range k.cfs {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
