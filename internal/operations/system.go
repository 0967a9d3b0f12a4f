package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/cdc_emitter"
	"github.com/tessera-db/tessera/internal/tessera"
	"github.com/tessera-db/tessera/internal/wal"
)

// Truncate removes all data of a column family, tombstones and index entries included.
func (m *Manager) Truncate(_ context.Context, keyspace, cfName string) (err error) {
	defer m.observe("truncate", time.Now(), &err)

	cf, err := m.lookup(keyspace, cfName)
	if err != nil {
		return err
	}
	if err := m.logTruncate(keyspace, cf.ID); err != nil {
		return err
	}

	rows := m.storage.Truncate(keyspace, cf.ID)
	if m.cdc != nil {
		m.cdc.Emit(&cdc_emitter.CDCParams{
			Operation: tessera.OperationTruncate,
			Keyspace:  keyspace,
			Family:    cf.Name,
			Clock:     m.now().UnixMicro(),
			Tombstone: true,
		})
	}
	log.Info().Str("keyspace", keyspace).Str("column_family", cf.Name).Int("rows", rows).Msg("truncated")
	return nil
}

// logTruncate records that the data of cfIDs is gone, so replay drops what came before.
func (m *Manager) logTruncate(keyspace string, cfIDs ...int32) error {
	if m.writeAhead == nil {
		return nil
	}
	for _, id := range cfIDs {
		err := m.writeAhead.Apply(&wal.Entry{
			Operation: tessera.OperationTruncate,
			Keyspace:  keyspace,
			CfID:      id,
			Timestamp: m.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to append to commit log: %w", err)
		}
	}
	return nil
}

func (m *Manager) SystemAddKeyspace(_ context.Context, def tessera.KsDef) (err error) {
	defer m.observe("system_add_keyspace", time.Now(), &err)
	return schemaError(m.schema.AddKeyspace(def))
}

func (m *Manager) SystemUpdateKeyspace(_ context.Context, def tessera.KsDef) (err error) {
	defer m.observe("system_update_keyspace", time.Now(), &err)
	return schemaError(m.schema.UpdateKeyspace(def))
}

// SystemDropKeyspace removes a keyspace and all of its data.
func (m *Manager) SystemDropKeyspace(_ context.Context, name string) (err error) {
	defer m.observe("system_drop_keyspace", time.Now(), &err)

	ids, err := m.schema.DropKeyspace(name)
	if err != nil {
		return schemaError(err)
	}
	m.storage.DropKeyspace(name)
	return m.logTruncate(name, ids...)
}

// SystemRenameKeyspace renames a keyspace. Its rows move with it.
func (m *Manager) SystemRenameKeyspace(_ context.Context, oldName, newName string) (err error) {
	defer m.observe("system_rename_keyspace", time.Now(), &err)

	if err := m.schema.RenameKeyspace(oldName, newName); err != nil {
		return schemaError(err)
	}
	m.storage.RenameKeyspace(oldName, newName)
	return nil
}

func (m *Manager) SystemAddColumnFamily(_ context.Context, def tessera.CfDef) (err error) {
	defer m.observe("system_add_column_family", time.Now(), &err)

	if def.Keyspace == "" {
		return invalidf("keyspace may not be empty")
	}
	_, err = m.schema.AddColumnFamily(def)
	return schemaError(err)
}

// SystemDropColumnFamily removes a column family and its data.
func (m *Manager) SystemDropColumnFamily(_ context.Context, keyspace, cfName string) (err error) {
	defer m.observe("system_drop_column_family", time.Now(), &err)

	id, err := m.schema.DropColumnFamily(keyspace, cfName)
	if err != nil {
		return schemaError(err)
	}
	m.storage.DropColumnFamilies(keyspace, id)
	return m.logTruncate(keyspace, id)
}

// SystemRenameColumnFamily renames a column family. Data is keyed by id and stays put.
func (m *Manager) SystemRenameColumnFamily(_ context.Context, keyspace, oldName, newName string) (err error) {
	defer m.observe("system_rename_column_family", time.Now(), &err)
	return schemaError(m.schema.RenameColumnFamily(keyspace, oldName, newName))
}
