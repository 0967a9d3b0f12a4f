// Package reaper reclaims expired columns and old tombstones ahead of the lazy
// read-time checks. TTL writes register hints that are served once they come due; a
// slower periodic sweep visits every row to drop tombstones past their gc grace.
package reaper

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/metrics"
)

//go:generate mockgen -destination=./reaper_mock.go -package=reaper -source=reaper.go

type storage interface {
	PurgeRow(keyspace string, key []byte, now time.Time) int
	Purge(now time.Time) int
}

// ReapParams tells the reaper that a row holds a column expiring at ExpiresAt (unix
// nanoseconds).
type ReapParams struct {
	Keyspace  string `json:"keyspace"`
	RowKey    []byte `json:"rowKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

type Reaper struct {
	collector chan ReapParams
	storage   storage
	metrics   *metrics.Metrics

	mutex   sync.Mutex
	pending hints

	reapInterval  time.Duration
	sweepInterval time.Duration

	procCtx context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	now     func() time.Time
}

type Config struct {
	Storage storage
	Metrics *metrics.Metrics
	// GCInterval is how often due hints are served, in seconds.
	GCInterval int
	// SweepInterval is how often every row is swept, in seconds.
	SweepInterval int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Storage == nil {
		errGrp = append(errGrp, errors.New("storage cannot be nil"))
	}
	if c.GCInterval <= 0 {
		errGrp = append(errGrp, errors.New("GCInterval must be greater than 0"))
	}
	if c.SweepInterval <= 0 {
		errGrp = append(errGrp, errors.New("SweepInterval must be greater than 0"))
	}
	return errors.Join(errGrp...)
}

// New creates a new Reaper.
func New(cfg *Config) (*Reaper, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Reaper{
		collector:     make(chan ReapParams, 10000),
		storage:       cfg.Storage,
		metrics:       cfg.Metrics,
		reapInterval:  time.Duration(cfg.GCInterval) * time.Second,
		sweepInterval: time.Duration(cfg.SweepInterval) * time.Second,
		procCtx:       ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		now:           time.Now,
	}, nil
}

// Reap registers a hint. It never blocks the write path: when the collector is full
// the hint is dropped and the row is left to the next sweep.
func (r *Reaper) Reap(p *ReapParams) {
	select {
	case r.collector <- *p:
	default:
		log.Debug().Str("keyspace", p.Keyspace).Msg("reaper collector full, dropping hint")
	}
}

func (r *Reaper) Start() error {
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.reapInterval)
		defer ticker.Stop()
		sweeper := time.NewTicker(r.sweepInterval)
		defer sweeper.Stop()

		for {
			select {
			case <-r.procCtx.Done():
				return
			case p := <-r.collector:
				r.collect(p)
			case <-ticker.C:
				r.garbageCollector(r.now())
			case <-sweeper.C:
				r.sweep(r.now())
			}
		}
	}()
	return nil
}

func (r *Reaper) Stop() error {
	if r.cancel != nil {
		r.cancel()
	}

	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		return errors.New("timed out waiting for the reaper to stop")
	}
	return nil
}

func (r *Reaper) Name() string {
	return "Reaper"
}

func (r *Reaper) collect(p ReapParams) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	heap.Push(&r.pending, p)
}

// garbageCollector purges every row whose hint has come due.
func (r *Reaper) garbageCollector(now time.Time) int {
	// drain hints that arrived since the last tick
	for {
		select {
		case p := <-r.collector:
			r.collect(p)
			continue
		default:
		}
		break
	}

	due := r.due(now.UnixNano())
	if len(due) == 0 {
		return 0
	}

	purged := 0
	for _, p := range due {
		purged += r.storage.PurgeRow(p.Keyspace, p.RowKey, now)
	}
	r.metrics.RecordReap("hints", purged)

	log.Debug().
		Str("duration", time.Since(now).String()).
		Msgf("Garbage collection complete: processed %d hints, purged %d", len(due), purged)
	return purged
}

// due pops the hints expiring at or before now, one per row.
func (r *Reaper) due(now int64) []ReapParams {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seen := make(map[string]struct{})
	var out []ReapParams
	for r.pending.Len() > 0 && r.pending[0].ExpiresAt <= now {
		p := heap.Pop(&r.pending).(ReapParams)
		id := p.Keyspace + "\x00" + string(p.RowKey)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (r *Reaper) sweep(now time.Time) int {
	purged := r.storage.Purge(now)
	r.metrics.RecordReap("sweep", purged)
	log.Debug().Str("duration", time.Since(now).String()).Msgf("sweep complete: purged %d", purged)
	return purged
}

// hints is a min-heap on ExpiresAt.
type hints []ReapParams

func (h hints) Len() int           { return len(h) }
func (h hints) Less(i, j int) bool { return h[i].ExpiresAt < h[j].ExpiresAt }
func (h hints) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *hints) Push(x any) {
	*h = append(*h, x.(ReapParams))
}

func (h *hints) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
