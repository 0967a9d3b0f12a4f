package schema

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/tessera"
)

// AddKeyspace defines a keyspace together with its column families.
func (r *Registry) AddKeyspace(def tessera.KsDef) error {
	if !validName(def.Name) {
		return fmt.Errorf("%w: invalid keyspace name %q", ErrInvalidDefinition, def.Name)
	}
	if def.Name == systemKeyspace {
		return fmt.Errorf("%w: %s keyspace is reserved", ErrInvalidDefinition, systemKeyspace)
	}
	if def.StrategyClass == "" {
		def.StrategyClass = defaultStrategyClass
	}
	if def.ReplicationFactor <= 0 {
		def.ReplicationFactor = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keyspaces[def.Name]; ok {
		return fmt.Errorf("%w: keyspace %s", ErrExists, def.Name)
	}

	ks := &keyspace{def: def, cfs: make(map[string]*CFMetaData)}
	nextID := r.nextID
	for _, cfDef := range def.CfDefs {
		cfDef.Keyspace = def.Name
		cfDef.ID = nextID
		m, err := newCFMetaData(cfDef)
		if err != nil {
			return err
		}
		if _, dup := ks.cfs[m.Name]; dup {
			return fmt.Errorf("%w: column family %s defined twice", ErrInvalidDefinition, m.Name)
		}
		ks.cfs[m.Name] = m
		nextID++
	}
	ks.def.CfDefs = nil

	r.keyspaces[def.Name] = ks
	prevID := r.nextID
	r.nextID = nextID
	if err := r.persist(); err != nil {
		delete(r.keyspaces, def.Name)
		r.nextID = prevID
		return err
	}

	log.Info().Str("keyspace", def.Name).Int("column_families", len(ks.cfs)).Msg("keyspace added")
	return nil
}

// UpdateKeyspace changes the replication settings of a keyspace. Column families are
// left alone.
func (r *Registry) UpdateKeyspace(def tessera.KsDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[def.Name]
	if !ok {
		return fmt.Errorf("%w: keyspace %s", ErrNotFound, def.Name)
	}
	if len(def.CfDefs) > 0 {
		return fmt.Errorf("%w: keyspace update does not accept column families", ErrInvalidDefinition)
	}

	prev := ks.def
	if def.StrategyClass != "" {
		ks.def.StrategyClass = def.StrategyClass
	}
	if def.ReplicationFactor > 0 {
		ks.def.ReplicationFactor = def.ReplicationFactor
	}
	if err := r.persist(); err != nil {
		ks.def = prev
		return err
	}
	return nil
}

// DropKeyspace removes a keyspace and returns the ids of the column families it held.
func (r *Registry) DropKeyspace(name string) ([]int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[name]
	if !ok {
		return nil, fmt.Errorf("%w: keyspace %s", ErrNotFound, name)
	}

	delete(r.keyspaces, name)
	if err := r.persist(); err != nil {
		r.keyspaces[name] = ks
		return nil, err
	}

	ids := make([]int32, 0, len(ks.cfs))
	for _, m := range ks.cfs {
		ids = append(ids, m.ID)
	}
	log.Info().Str("keyspace", name).Msg("keyspace dropped")
	return ids, nil
}

// RenameKeyspace moves every column family to a new keyspace name.
func (r *Registry) RenameKeyspace(oldName, newName string) error {
	if !validName(newName) || newName == systemKeyspace {
		return fmt.Errorf("%w: invalid keyspace name %q", ErrInvalidDefinition, newName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[oldName]
	if !ok {
		return fmt.Errorf("%w: keyspace %s", ErrNotFound, oldName)
	}
	if _, exists := r.keyspaces[newName]; exists {
		return fmt.Errorf("%w: keyspace %s", ErrExists, newName)
	}

	renamed := &keyspace{def: ks.def, cfs: make(map[string]*CFMetaData, len(ks.cfs))}
	renamed.def.Name = newName
	for name, m := range ks.cfs {
		cp := *m
		cp.Keyspace = newName
		renamed.cfs[name] = &cp
	}

	delete(r.keyspaces, oldName)
	r.keyspaces[newName] = renamed
	if err := r.persist(); err != nil {
		delete(r.keyspaces, newName)
		r.keyspaces[oldName] = ks
		return err
	}

	log.Info().Str("from", oldName).Str("to", newName).Msg("keyspace renamed")
	return nil
}

// AddColumnFamily defines a new column family and assigns its id.
func (r *Registry) AddColumnFamily(def tessera.CfDef) (*CFMetaData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[def.Keyspace]
	if !ok {
		return nil, fmt.Errorf("%w: keyspace %s", ErrNotFound, def.Keyspace)
	}
	if _, exists := ks.cfs[def.Name]; exists {
		return nil, fmt.Errorf("%w: column family %s", ErrExists, def.Name)
	}

	def.ID = r.nextID
	m, err := newCFMetaData(def)
	if err != nil {
		return nil, err
	}

	ks.cfs[m.Name] = m
	r.nextID++
	if err := r.persist(); err != nil {
		delete(ks.cfs, m.Name)
		r.nextID--
		return nil, err
	}

	log.Info().Str("keyspace", def.Keyspace).Str("column_family", def.Name).
		Int32("id", m.ID).Msg("column family added")
	return m, nil
}

// DropColumnFamily removes a column family and returns its id.
func (r *Registry) DropColumnFamily(ksName, cfName string) (int32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[ksName]
	if !ok {
		return 0, fmt.Errorf("%w: keyspace %s", ErrNotFound, ksName)
	}
	m, ok := ks.cfs[cfName]
	if !ok {
		return 0, fmt.Errorf("%w: column family %s", ErrNotFound, cfName)
	}

	delete(ks.cfs, cfName)
	if err := r.persist(); err != nil {
		ks.cfs[cfName] = m
		return 0, err
	}

	log.Info().Str("keyspace", ksName).Str("column_family", cfName).Msg("column family dropped")
	return m.ID, nil
}

// RenameColumnFamily changes a column family's name. Its id, and so its data, stay put.
func (r *Registry) RenameColumnFamily(ksName, oldName, newName string) error {
	if !validName(newName) {
		return fmt.Errorf("%w: invalid column family name %q", ErrInvalidDefinition, newName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ks, ok := r.keyspaces[ksName]
	if !ok {
		return fmt.Errorf("%w: keyspace %s", ErrNotFound, ksName)
	}
	m, ok := ks.cfs[oldName]
	if !ok {
		return fmt.Errorf("%w: column family %s", ErrNotFound, oldName)
	}
	if _, exists := ks.cfs[newName]; exists {
		return fmt.Errorf("%w: column family %s", ErrExists, newName)
	}

	cp := *m
	cp.Name = newName
	delete(ks.cfs, oldName)
	ks.cfs[newName] = &cp
	if err := r.persist(); err != nil {
		delete(ks.cfs, newName)
		ks.cfs[oldName] = m
		return err
	}
	return nil
}
