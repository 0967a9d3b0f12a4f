package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/app"
	"github.com/tessera-db/tessera/internal/cdc_emitter"
	"github.com/tessera-db/tessera/internal/config"
	"github.com/tessera-db/tessera/internal/metrics"
	"github.com/tessera-db/tessera/internal/operations"
	"github.com/tessera-db/tessera/internal/reaper"
	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/schema"
	"github.com/tessera-db/tessera/internal/server/grpc"
	"github.com/tessera-db/tessera/internal/shard_storage"
	"github.com/tessera-db/tessera/internal/wal"
)

const stopTimeout = 30 * time.Second

func main() {
	application, err := initialize()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}

	if err = application.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("application stopped with errors")
	}
}

func configureLogging(cfg *config.LoggingConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return nil
}

func initialize() (*app.App, error) {
	var deps []app.Dependency

	// TESSERA_CONFIG points at the YAML file; without it tessera.yaml in the data
	// directory is used when present.
	cfg, err := config.LoadConfig(os.Getenv("TESSERA_CONFIG"))
	if err != nil {
		return nil, err
	}
	if err := configureLogging(&cfg.Logging); err != nil {
		return nil, err
	}

	registry, err := schema.New(&schema.Config{
		Path:      cfg.Node.DataDir,
		Bootstrap: cfg.BootstrapSchema(),
	})
	if err != nil {
		return nil, err
	}

	partitioner, err := ring.Get(cfg.Partitioner)
	if err != nil {
		return nil, err
	}
	tokenRing, err := ring.New(&ring.Config{
		Partitioner:  partitioner,
		InitialToken: cfg.Node.InitialToken,
		Endpoint:     fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
	})
	if err != nil {
		return nil, err
	}

	store, err := shard_storage.New(&shard_storage.Config{
		ShardCount:  cfg.Storage.ShardCount,
		Partitioner: partitioner,
	})
	if err != nil {
		return nil, err
	}

	nodeMetrics := metrics.New(cfg.Node.ID)
	nodeMetrics.RegisterRowGauge(store.RowCount)

	opsCfg := &operations.Config{
		Storage:       store,
		Schema:        registry,
		Ring:          tokenRing,
		Metrics:       nodeMetrics,
		NodeID:        cfg.Node.ID,
		ClusterName:   cfg.Node.ClusterName,
		MaxValueBytes: cfg.Limits.MaxValueBytes,
	}

	var commitLog *wal.Manager
	if cfg.CommitLogEnabled() {
		commitLog, err = wal.New(&wal.Config{
			Path: cfg.Node.DataDir,
			Sync: cfg.CommitLog.Sync,
		})
		if err != nil {
			return nil, err
		}
		opsCfg.WAL = commitLog
		deps = append(deps, commitLog)
	}

	// the reaper purges expired columns and tombstones past their grace period
	reaperGC, err := reaper.New(&reaper.Config{
		Storage:       store,
		Metrics:       nodeMetrics,
		GCInterval:    cfg.Reaper.IntervalSeconds,
		SweepInterval: cfg.Reaper.SweepIntervalSeconds,
	})
	if err != nil {
		return nil, err
	}
	opsCfg.GarbageCollector = reaperGC
	deps = append(deps, reaperGC)

	if cfg.CDCEnabled() {
		cdcEmitter, err := cdc_emitter.New(&cdc_emitter.Config{
			Port:       cfg.CDC.Port,
			Address:    cfg.CDC.Address,
			BufferSize: cfg.CDC.BufferSize,
			Metrics:    nodeMetrics,
		})
		if err != nil {
			return nil, err
		}
		opsCfg.CDC = cdcEmitter
		deps = append(deps, cdcEmitter)
	}

	opsManager, err := operations.New(opsCfg)
	if err != nil {
		return nil, err
	}

	if commitLog != nil {
		replayed, err := opsManager.Replay(commitLog)
		if err != nil {
			return nil, fmt.Errorf("failed to replay commit log: %w", err)
		}
		nodeMetrics.RecordReplay(replayed)
		log.Info().Int("records", replayed).Int("rows", store.RowCount()).Msg("commit log replayed")
	}

	srv, err := grpc.NewServer(&grpc.Config{
		Address:              cfg.Server.Address,
		Port:                 cfg.Server.Port,
		Operations:           opsManager,
		TLSCertFile:          cfg.Server.TLSCertFile,
		TLSKeyFile:           cfg.Server.TLSKeyFile,
		MaxConcurrentStreams: cfg.Server.MaxConcurrentStreams,
		Reflection:           cfg.Server.Reflection,
	})
	if err != nil {
		return nil, err
	}
	deps = append(deps, srv)

	if cfg.MetricsEnabled() {
		metricsServer, err := metrics.NewServer(&metrics.Config{
			Address: cfg.Metrics.Address,
			Port:    cfg.Metrics.Port,
			Metrics: nodeMetrics,
		})
		if err != nil {
			return nil, err
		}
		deps = append(deps, metricsServer)
	}

	application, err := app.CreateApp(&app.Config{
		ServiceName: "Tessera",
		StopTimeout: stopTimeout,
	}, deps...)
	if err != nil {
		return nil, err
	}

	return application, nil
}
