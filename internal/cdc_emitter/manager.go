// Package cdc_emitter streams every applied change to subscribers of the litetable CDC
// gRPC service.
package cdc_emitter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/metrics"
	"google.golang.org/grpc"
)

const defaultBufferSize = 100000

type Config struct {
	Port    int
	Address string
	// BufferSize bounds the events waiting to be dispatched. Zero picks the default.
	BufferSize int
	Metrics    *metrics.Metrics
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Port <= 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("invalid address: %s", c.Address))
	}
	if c.BufferSize < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid buffer size: %d", c.BufferSize))
	}
	return errors.Join(errGrp...)
}

type Manager struct {
	v1.UnimplementedCDCServiceServer

	port    int
	address string
	server  *grpc.Server
	metrics *metrics.Metrics

	emitChan   chan *CDCParams
	procCtx    context.Context
	procCancel context.CancelFunc

	streams    map[string]v1.CDCService_CDCStreamServer
	streamsMux sync.Mutex
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	buffer := cfg.BufferSize
	if buffer == 0 {
		buffer = defaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		port:       cfg.Port,
		address:    cfg.Address,
		metrics:    cfg.Metrics,
		emitChan:   make(chan *CDCParams, buffer),
		procCtx:    ctx,
		procCancel: cancel,
		streams:    make(map[string]v1.CDCService_CDCStreamServer),
	}

	m.server = grpc.NewServer()
	v1.RegisterCDCServiceServer(m.server, m)
	return m, nil
}

func (m *Manager) Start() error {
	addr := net.JoinHostPort(m.address, fmt.Sprintf("%d", m.port))
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	log.Info().Msgf("CDC gRPC server listening at %s", addr)
	return m.serve(lis)
}

// serve runs the dispatcher and blocks serving lis.
func (m *Manager) serve(lis net.Listener) error {
	go m.dispatchLoop()

	if err := m.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("CDC gRPC server failed: %w", err)
	}
	return nil
}

func (m *Manager) Stop() error {
	// streams return once the process context is done
	if m.procCancel != nil {
		m.procCancel()
	}
	if m.server != nil {
		m.server.GracefulStop()
	}
	return nil
}

func (m *Manager) Name() string {
	return "CDC Emitter"
}

// CDCStream registers the caller and holds the stream open until the client goes away
// or the server stops.
func (m *Manager) CDCStream(req *v1.CDCSubscriptionRequest, stream v1.CDCService_CDCStreamServer) error {
	id := req.GetClientId()
	if id == "" {
		id = uuid.NewString()
	}

	m.register(id, stream)
	defer m.unregister(id)
	log.Info().Str("client", id).Msg("CDC client subscribed")

	select {
	case <-stream.Context().Done():
	case <-m.procCtx.Done():
	}
	log.Info().Str("client", id).Msg("CDC client disconnected")
	return nil
}

func (m *Manager) register(clientID string, stream v1.CDCService_CDCStreamServer) {
	m.streamsMux.Lock()
	defer m.streamsMux.Unlock()
	m.streams[clientID] = stream
	m.metrics.SetCDCSubscribers(len(m.streams))
}

func (m *Manager) unregister(clientID string) {
	m.streamsMux.Lock()
	defer m.streamsMux.Unlock()
	delete(m.streams, clientID)
	m.metrics.SetCDCSubscribers(len(m.streams))
}

func (m *Manager) subscribers() int {
	m.streamsMux.Lock()
	defer m.streamsMux.Unlock()
	return len(m.streams)
}

func (m *Manager) dispatchLoop() {
	for {
		select {
		case <-m.procCtx.Done():
			return
		case p := <-m.emitChan:
			m.raiseCDCEvent(p)
		}
	}
}
