package operations

import (
	"context"

	"github.com/tessera-db/tessera/internal/tessera"
)

const systemKeyspace = "system"

// DescribeKeyspaces returns every keyspace definition in name order.
func (m *Manager) DescribeKeyspaces(_ context.Context) ([]tessera.KsDef, error) {
	names := m.schema.Keyspaces()
	out := make([]tessera.KsDef, 0, len(names))
	for _, name := range names {
		def, err := m.schema.DescribeKeyspace(name)
		if err != nil {
			// dropped since Keyspaces was read
			continue
		}
		out = append(out, def)
	}
	return out, nil
}

func (m *Manager) DescribeKeyspace(_ context.Context, name string) (*tessera.KsDef, error) {
	def, err := m.schema.DescribeKeyspace(name)
	if err != nil {
		return nil, schemaError(err)
	}
	return &def, nil
}

// DescribeRing reports the token ranges of keyspace. A single node owns the whole ring.
func (m *Manager) DescribeRing(_ context.Context, keyspace string) ([]tessera.TokenRange, error) {
	if keyspace == systemKeyspace {
		return nil, invalidf("There is no ring for the keyspace: %s", keyspace)
	}
	if !m.schema.HasKeyspace(keyspace) {
		return nil, newError(ErrNotFound, "keyspace %s", keyspace)
	}
	return m.ring.DescribeRing(), nil
}

func (m *Manager) DescribePartitioner(_ context.Context) string {
	return m.ring.Partitioner().Name()
}

func (m *Manager) DescribeVersion(_ context.Context) string {
	return version
}

func (m *Manager) DescribeClusterName(_ context.Context) string {
	return m.clusterName
}
