// Package operations is the request layer of a node. Every call resolves its column
// family in the schema, is validated completely, is appended to the commit log and only
// then touches the store. Applied changes are published to the change stream and
// expiring columns are handed to the reaper.
package operations

import (
	"errors"
	"time"

	"github.com/tessera-db/tessera/internal/cdc_emitter"
	"github.com/tessera-db/tessera/internal/reaper"
	"github.com/tessera-db/tessera/internal/wal"
)

//go:generate mockgen -destination=manager_mock.go -package=operations -source=manager.go

const (
	defaultMaxValueBytes = 16 << 20
	version              = "19.4.0"
)

type writeAhead interface {
	Apply(e *wal.Entry) error
}

type garbageCollector interface {
	Reap(p *reaper.ReapParams)
}

type cdc interface {
	Emit(params *cdc_emitter.CDCParams)
}

type recorder interface {
	RecordRequest(operation string, seconds float64)
	RecordError(operation, kind string)
}

type Manager struct {
	garbageCollector garbageCollector
	writeAhead       writeAhead
	storage          storageManager
	schema           schemaRegistry
	ring             tokenRing
	cdc              cdc
	metrics          recorder

	nodeID        string
	clusterName   string
	maxValueBytes int
	now           func() time.Time
}

type Config struct {
	GarbageCollector garbageCollector
	// WAL may be nil when the commit log is disabled.
	WAL     writeAhead
	Storage storageManager
	Schema  schemaRegistry
	Ring    tokenRing
	// CDC may be nil when the change stream is disabled.
	CDC     cdc
	Metrics recorder

	// NodeID keys this node's share of every counter.
	NodeID        string
	ClusterName   string
	MaxValueBytes int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.GarbageCollector == nil {
		errGrp = append(errGrp, errors.New("garbage collector cannot be nil"))
	}
	if c.Storage == nil {
		errGrp = append(errGrp, errors.New("storage cannot be nil"))
	}
	if c.Schema == nil {
		errGrp = append(errGrp, errors.New("schema cannot be nil"))
	}
	if c.Ring == nil {
		errGrp = append(errGrp, errors.New("ring cannot be nil"))
	}
	if c.NodeID == "" {
		errGrp = append(errGrp, errors.New("node id cannot be empty"))
	}
	if c.MaxValueBytes < 0 {
		errGrp = append(errGrp, errors.New("max value bytes cannot be negative"))
	}
	return errors.Join(errGrp...)
}

// New creates a new operations manager
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		garbageCollector: cfg.GarbageCollector,
		writeAhead:       cfg.WAL,
		storage:          cfg.Storage,
		schema:           cfg.Schema,
		ring:             cfg.Ring,
		cdc:              cfg.CDC,
		metrics:          cfg.Metrics,
		nodeID:           cfg.NodeID,
		clusterName:      cfg.ClusterName,
		maxValueBytes:    cfg.MaxValueBytes,
		now:              time.Now,
	}
	if m.maxValueBytes == 0 {
		m.maxValueBytes = defaultMaxValueBytes
	}
	if m.clusterName == "" {
		m.clusterName = "Test Cluster"
	}
	return m, nil
}

// observe records the latency and outcome of one call. Use it as
//
//	defer m.observe("get", time.Now(), &err)
func (m *Manager) observe(operation string, start time.Time, err *error) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordRequest(operation, time.Since(start).Seconds())
	if err != nil && *err != nil {
		m.metrics.RecordError(operation, errorKind(*err))
	}
}
