package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/tessera"
)

const sampleConfig = `
node:
  id: node-a
  data_dir: /var/lib/tessera
server:
  address: 127.0.0.1
  port: 7160
cdc:
  port: 7161
  buffer_size: 64
metrics:
  enabled: false
commit_log:
  sync: true
reaper:
  interval_seconds: 5
storage:
  shard_count: 32
logging:
  level: debug
  format: console
partitioner: byte_ordered
keyspaces:
  - name: Keyspace1
    column_families:
      - name: Standard1
        comparator: AsciiType
      - name: Super1
        column_type: Super
        comparator: BytesType
        subcomparator: LongType
      - name: Indexed1
        comparator: AsciiType
        column_metadata:
          - name: birthdate
            validation_class: LongType
            index_type: KEYS
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tessera.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	req.NoError(err)

	req.Equal("node-a", cfg.Node.ID)
	req.Equal("/var/lib/tessera", cfg.Node.DataDir)
	req.Equal("127.0.0.1", cfg.Server.Address)
	req.Equal(7160, cfg.Server.Port)
	req.Equal(7161, cfg.CDC.Port)
	req.Equal("127.0.0.1", cfg.CDC.Address)
	req.Equal(64, cfg.CDC.BufferSize)
	req.True(cfg.CDCEnabled())
	req.False(cfg.MetricsEnabled())
	req.True(cfg.CommitLogEnabled())
	req.True(cfg.CommitLog.Sync)
	req.Equal(5, cfg.Reaper.IntervalSeconds)
	req.Equal(60, cfg.Reaper.SweepIntervalSeconds)
	req.Equal(32, cfg.Storage.ShardCount)
	req.Equal(defaultMaxValueBytes, cfg.Limits.MaxValueBytes)
	req.Equal("console", cfg.Logging.Format)
	req.Equal("byte_ordered", cfg.Partitioner)
	req.Len(cfg.Keyspaces, 1)
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	t.Setenv("TESSERA_DATA_DIR", dir)

	cfg, err := LoadConfig(writeConfig(t, "{}"))
	req.NoError(err)

	req.Equal(dir, cfg.Node.DataDir)
	req.NotEmpty(cfg.Node.ID)
	req.Equal(9160, cfg.Server.Port)
	req.Equal(9161, cfg.CDC.Port)
	req.Equal(9090, cfg.Metrics.Port)
	req.Equal(16, cfg.Storage.ShardCount)
	req.Equal("info", cfg.Logging.Level)
	req.Equal("json", cfg.Logging.Format)
	req.Equal("random", cfg.Partitioner)
	req.True(cfg.MetricsEnabled())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("TESSERA_SERVER_PORT", "8160")
	t.Setenv("TESSERA_LOG_LEVEL", "warn")
	t.Setenv("TESSERA_COMMIT_LOG_ENABLED", "false")
	t.Setenv("TESSERA_PARTITIONER", "collating")
	t.Setenv("TESSERA_SHARD_COUNT", "not-a-number")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	req.NoError(err)

	req.Equal(8160, cfg.Server.Port)
	req.Equal("warn", cfg.Logging.Level)
	req.False(cfg.CommitLogEnabled())
	req.Equal("collating", cfg.Partitioner)
	req.Equal(32, cfg.Storage.ShardCount)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]struct {
		body    string
		wantErr string
	}{
		"malformed yaml": {
			body:    "server: [",
			wantErr: "failed to parse config file",
		},
		"port out of range": {
			body:    "server:\n  port: 70000\n",
			wantErr: "server.port 70000 is out of range",
		},
		"half a tls pair": {
			body:    "server:\n  tls_cert_file: cert.pem\n",
			wantErr: "must be set together",
		},
		"cdc on the server port": {
			body:    "server:\n  port: 7000\ncdc:\n  port: 7000\n",
			wantErr: "cdc.port must differ",
		},
		"too many shards": {
			body:    "storage:\n  shard_count: 4096\n",
			wantErr: "storage.shard_count",
		},
		"unknown log level": {
			body:    "logging:\n  level: loud\n",
			wantErr: "unknown logging.level",
		},
		"duplicate keyspace": {
			body:    "keyspaces:\n  - name: a\n  - name: a\n",
			wantErr: "keyspace a is defined twice",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			t.Setenv("TESSERA_DATA_DIR", t.TempDir())

			_, err := LoadConfig(writeConfig(t, tc.body))
			req.Error(err)
			req.Contains(err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	req := require.New(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	req.Error(err)
	req.Contains(err.Error(), "failed to read config file")
}

func TestConfig_BootstrapSchema(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	req.NoError(err)

	defs := cfg.BootstrapSchema()
	req.Len(defs, 1)
	req.Equal("Keyspace1", defs[0].Name)
	req.Len(defs[0].CfDefs, 3)

	super := defs[0].CfDefs[1]
	req.Equal(tessera.ColumnTypeSuper, super.ColumnType)
	req.Equal("LongType", super.SubcomparatorType)

	indexed := defs[0].CfDefs[2]
	req.Equal("Keyspace1", indexed.Keyspace)
	req.Equal([]tessera.ColumnDef{{
		Name:            []byte("birthdate"),
		ValidationClass: "LongType",
		IndexType:       tessera.IndexTypeKeys,
	}}, indexed.ColumnMetadata)
}
