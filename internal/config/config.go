package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tessera-db/tessera/internal/tessera"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "tessera.yaml"

	defaultMaxValueBytes = 16 << 20
	maxShardCount        = 1024
)

// NodeConfig identifies this node and where it keeps its files.
type NodeConfig struct {
	ID           string `yaml:"id"`
	DataDir      string `yaml:"data_dir"`
	ClusterName  string `yaml:"cluster_name"`
	InitialToken string `yaml:"initial_token"`
}

// ServerConfig holds the client-facing gRPC server configuration
type ServerConfig struct {
	Address              string `yaml:"address"`
	Port                 int    `yaml:"port"`
	TLSCertFile          string `yaml:"tls_cert_file"`
	TLSKeyFile           string `yaml:"tls_key_file"`
	MaxConcurrentStreams uint32 `yaml:"max_concurrent_streams"`
	Reflection           bool   `yaml:"reflection"`
}

// CDCConfig holds the change stream server configuration
type CDCConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	Address    string `yaml:"address"`
	Port       int    `yaml:"port"`
	BufferSize int    `yaml:"buffer_size"`
}

// MetricsConfig holds the prometheus endpoint configuration
type MetricsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type CommitLogConfig struct {
	Enabled *bool `yaml:"enabled"`
	// Sync fsyncs after every record.
	Sync bool `yaml:"sync"`
}

type ReaperConfig struct {
	IntervalSeconds      int `yaml:"interval_seconds"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
}

type StorageConfig struct {
	ShardCount int `yaml:"shard_count"`
}

type LimitsConfig struct {
	MaxValueBytes int `yaml:"max_value_bytes"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// KeyspaceConfig bootstraps a keyspace the first time a node starts with an empty data
// directory.
type KeyspaceConfig struct {
	Name              string               `yaml:"name"`
	StrategyClass     string               `yaml:"strategy_class"`
	ReplicationFactor int                  `yaml:"replication_factor"`
	ColumnFamilies    []ColumnFamilyConfig `yaml:"column_families"`
}

type ColumnFamilyConfig struct {
	Name                   string         `yaml:"name"`
	ColumnType             string         `yaml:"column_type"`
	Comparator             string         `yaml:"comparator"`
	Subcomparator          string         `yaml:"subcomparator"`
	DefaultValidationClass string         `yaml:"default_validation_class"`
	Counter                bool           `yaml:"counter"`
	GCGraceSeconds         int32          `yaml:"gc_grace_seconds"`
	Comment                string         `yaml:"comment"`
	ColumnMetadata         []ColumnConfig `yaml:"column_metadata"`
}

// ColumnConfig names a column as text; it is stored as its UTF-8 bytes.
type ColumnConfig struct {
	Name            string `yaml:"name"`
	ValidationClass string `yaml:"validation_class"`
	IndexType       string `yaml:"index_type"`
	IndexName       string `yaml:"index_name"`
}

// Config represents the complete configuration of a tessera node
type Config struct {
	Node        NodeConfig       `yaml:"node"`
	Server      ServerConfig     `yaml:"server"`
	CDC         CDCConfig        `yaml:"cdc"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	CommitLog   CommitLogConfig  `yaml:"commit_log"`
	Reaper      ReaperConfig     `yaml:"reaper"`
	Storage     StorageConfig    `yaml:"storage"`
	Limits      LimitsConfig     `yaml:"limits"`
	Logging     LoggingConfig    `yaml:"logging"`
	Partitioner string           `yaml:"partitioner"`
	Keyspaces   []KeyspaceConfig `yaml:"keyspaces"`
}

// LoadConfig reads the YAML file at filePath, then applies TESSERA_* environment
// overrides and defaults. An empty filePath looks for tessera.yaml in the default data
// directory and falls back to defaults when there is none.
func LoadConfig(filePath string) (*Config, error) {
	var cfg Config

	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvironmentOverrides(&cfg)

	if err := setDefaults(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(filePath string) ([]byte, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return data, nil
	}

	dataDir, err := tessera.GetDataDir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dataDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// applyEnvironmentOverrides lets TESSERA_* variables take precedence over the file
func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv("TESSERA_NODE_ID"); v != "" {
		cfg.Node.ID = v
	}
	if v := os.Getenv("TESSERA_DATA_DIR"); v != "" {
		cfg.Node.DataDir = v
	}
	if v := os.Getenv("TESSERA_CLUSTER_NAME"); v != "" {
		cfg.Node.ClusterName = v
	}
	if v := os.Getenv("TESSERA_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	envInt("TESSERA_SERVER_PORT", &cfg.Server.Port)
	if v := os.Getenv("TESSERA_TLS_CERT_FILE"); v != "" {
		cfg.Server.TLSCertFile = v
	}
	if v := os.Getenv("TESSERA_TLS_KEY_FILE"); v != "" {
		cfg.Server.TLSKeyFile = v
	}
	envInt("TESSERA_CDC_PORT", &cfg.CDC.Port)
	envBool("TESSERA_CDC_ENABLED", &cfg.CDC.Enabled)
	envInt("TESSERA_METRICS_PORT", &cfg.Metrics.Port)
	envBool("TESSERA_METRICS_ENABLED", &cfg.Metrics.Enabled)
	envBool("TESSERA_COMMIT_LOG_ENABLED", &cfg.CommitLog.Enabled)
	envInt("TESSERA_SHARD_COUNT", &cfg.Storage.ShardCount)
	envInt("TESSERA_MAX_VALUE_BYTES", &cfg.Limits.MaxValueBytes)
	if v := os.Getenv("TESSERA_PARTITIONER"); v != "" {
		cfg.Partitioner = v
	}
	if v := os.Getenv("TESSERA_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TESSERA_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(name string, dst **bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = &b
		}
	}
}

// setDefaults sets default values for unspecified configuration
func setDefaults(cfg *Config) error {
	if cfg.Node.DataDir == "" {
		dataDir, err := tessera.GetDataDir()
		if err != nil {
			return err
		}
		cfg.Node.DataDir = dataDir
	}
	if cfg.Node.ID == "" {
		cfg.Node.ID = uuid.NewString()
	}
	if cfg.Node.ClusterName == "" {
		cfg.Node.ClusterName = "Test Cluster"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9160
	}

	if cfg.CDC.Enabled == nil {
		cfg.CDC.Enabled = boolPtr(true)
	}
	if cfg.CDC.Address == "" {
		cfg.CDC.Address = cfg.Server.Address
	}
	if cfg.CDC.Port == 0 {
		cfg.CDC.Port = 9161
	}
	if cfg.CDC.BufferSize == 0 {
		cfg.CDC.BufferSize = 1000
	}

	if cfg.Metrics.Enabled == nil {
		cfg.Metrics.Enabled = boolPtr(true)
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = cfg.Server.Address
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}

	if cfg.CommitLog.Enabled == nil {
		cfg.CommitLog.Enabled = boolPtr(true)
	}

	if cfg.Reaper.IntervalSeconds == 0 {
		cfg.Reaper.IntervalSeconds = 1
	}
	if cfg.Reaper.SweepIntervalSeconds == 0 {
		cfg.Reaper.SweepIntervalSeconds = 60
	}

	if cfg.Storage.ShardCount == 0 {
		cfg.Storage.ShardCount = 16
	}
	if cfg.Limits.MaxValueBytes == 0 {
		cfg.Limits.MaxValueBytes = defaultMaxValueBytes
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Partitioner == "" {
		cfg.Partitioner = "random"
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

// Validate collects every problem with the configuration.
func (c *Config) Validate() error {
	var errGrp []error

	if c.Node.DataDir == "" {
		errGrp = append(errGrp, errors.New("node.data_dir is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errGrp = append(errGrp, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if (c.Server.TLSCertFile == "") != (c.Server.TLSKeyFile == "") {
		errGrp = append(errGrp, errors.New("server.tls_cert_file and server.tls_key_file must be set together"))
	}
	if c.CDCEnabled() {
		if c.CDC.Port <= 0 || c.CDC.Port > 65535 {
			errGrp = append(errGrp, fmt.Errorf("cdc.port %d is out of range", c.CDC.Port))
		}
		if c.CDC.Port == c.Server.Port {
			errGrp = append(errGrp, errors.New("cdc.port must differ from server.port"))
		}
		if c.CDC.BufferSize < 0 {
			errGrp = append(errGrp, errors.New("cdc.buffer_size must not be negative"))
		}
	}
	if c.MetricsEnabled() {
		if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
			errGrp = append(errGrp, fmt.Errorf("metrics.port %d is out of range", c.Metrics.Port))
		}
		if c.Metrics.Port == c.Server.Port {
			errGrp = append(errGrp, errors.New("metrics.port must differ from server.port"))
		}
	}
	if c.Reaper.IntervalSeconds < 0 || c.Reaper.SweepIntervalSeconds < 0 {
		errGrp = append(errGrp, errors.New("reaper intervals must not be negative"))
	}
	if c.Storage.ShardCount < 0 || c.Storage.ShardCount > maxShardCount {
		errGrp = append(errGrp, fmt.Errorf("storage.shard_count must be between 1 and %d", maxShardCount))
	}
	if c.Limits.MaxValueBytes < 0 {
		errGrp = append(errGrp, errors.New("limits.max_value_bytes must not be negative"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errGrp = append(errGrp, fmt.Errorf("unknown logging.level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errGrp = append(errGrp, fmt.Errorf("unknown logging.format %q", c.Logging.Format))
	}

	seen := make(map[string]struct{}, len(c.Keyspaces))
	for _, ks := range c.Keyspaces {
		if ks.Name == "" {
			errGrp = append(errGrp, errors.New("keyspace name is required"))
			continue
		}
		if _, dup := seen[ks.Name]; dup {
			errGrp = append(errGrp, fmt.Errorf("keyspace %s is defined twice", ks.Name))
		}
		seen[ks.Name] = struct{}{}
		for _, cf := range ks.ColumnFamilies {
			if cf.Name == "" {
				errGrp = append(errGrp, fmt.Errorf("keyspace %s: column family name is required", ks.Name))
			}
		}
	}

	return errors.Join(errGrp...)
}

func (c *Config) CDCEnabled() bool {
	return c.CDC.Enabled == nil || *c.CDC.Enabled
}

func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}

func (c *Config) CommitLogEnabled() bool {
	return c.CommitLog.Enabled == nil || *c.CommitLog.Enabled
}

// BootstrapSchema converts the configured keyspaces to schema definitions.
func (c *Config) BootstrapSchema() []tessera.KsDef {
	out := make([]tessera.KsDef, 0, len(c.Keyspaces))
	for _, ks := range c.Keyspaces {
		def := tessera.KsDef{
			Name:              ks.Name,
			StrategyClass:     ks.StrategyClass,
			ReplicationFactor: ks.ReplicationFactor,
		}
		for _, cf := range ks.ColumnFamilies {
			cfDef := tessera.CfDef{
				Keyspace:               ks.Name,
				Name:                   cf.Name,
				ColumnType:             cf.ColumnType,
				ComparatorType:         cf.Comparator,
				SubcomparatorType:      cf.Subcomparator,
				DefaultValidationClass: cf.DefaultValidationClass,
				Counter:                cf.Counter,
				GCGraceSeconds:         cf.GCGraceSeconds,
				Comment:                cf.Comment,
			}
			for _, col := range cf.ColumnMetadata {
				cfDef.ColumnMetadata = append(cfDef.ColumnMetadata, tessera.ColumnDef{
					Name:            []byte(col.Name),
					ValidationClass: col.ValidationClass,
					IndexType:       col.IndexType,
					IndexName:       col.IndexName,
				})
			}
			def.CfDefs = append(def.CfDefs, cfDef)
		}
		out = append(out, def)
	}
	return out
}
