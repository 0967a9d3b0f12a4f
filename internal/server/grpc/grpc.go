package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	grpc2 "google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

//go:generate mockgen -destination=./grpc_mock.go -package=grpc -source=grpc.go

type grpcServer interface {
	Serve(lis net.Listener) error
	GracefulStop()
}

// Server implements the app.Dependency interface for the client-facing gRPC server
type Server struct {
	address  string
	server   grpcServer
	port     int
	listener net.Listener
}

type Config struct {
	Address    string
	Port       int
	Operations operations
	// TLSCertFile and TLSKeyFile enable TLS when both are set.
	TLSCertFile          string
	TLSKeyFile           string
	MaxConcurrentStreams uint32
	Reflection           bool
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Address == "" {
		errGrp = append(errGrp, fmt.Errorf("address required"))
	}
	if c.Port == 0 {
		errGrp = append(errGrp, fmt.Errorf("port required"))
	}
	if c.Operations == nil {
		errGrp = append(errGrp, fmt.Errorf("operations required"))
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		errGrp = append(errGrp, fmt.Errorf("tls cert and key must be set together"))
	}

	return errors.Join(errGrp...)
}

func (c *Config) serverOptions() ([]grpc2.ServerOption, error) {
	opts := []grpc2.ServerOption{grpc2.ChainUnaryInterceptor(logRequests)}
	if c.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc2.MaxConcurrentStreams(c.MaxConcurrentStreams))
	}
	if c.TLSCertFile != "" {
		creds, err := credentials.NewServerTLSFromFile(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS credentials: %w", err)
		}
		opts = append(opts, grpc2.Creds(creds))
	}
	return opts, nil
}

// NewServer creates a new gRPC server instance
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts, err := cfg.serverOptions()
	if err != nil {
		return nil, err
	}

	srv := grpc2.NewServer(opts...)
	srv.RegisterService(&ServiceDesc, &service{
		operations: cfg.Operations,
	})
	if cfg.Reflection {
		reflection.Register(srv)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Address, cfg.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to create listener on port %d: %w", cfg.Port, err)
	}

	return &Server{
		address:  cfg.Address,
		server:   srv,
		port:     cfg.Port,
		listener: lis,
	}, nil
}

func (s *Server) Start() error {
	log.Info().Msgf("gRPC server listening at %s:%d", s.address, s.port)

	errCh := make(chan error, 1)

	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errCh <- err
			log.Error().Err(err).Msg("gRPC server failed")
			return
		}
		errCh <- nil
	}()

	// Block briefly for error or nil return
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping gRPC server")
	s.server.GracefulStop()
	return nil
}

func (s *Server) Name() string {
	return "gRPC Server"
}

// logRequests logs every call with its latency at debug level, and failures at warn.
func logRequests(ctx context.Context, req any, info *grpc2.UnaryServerInfo,
	handler grpc2.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	if err != nil {
		log.Warn().Err(err).Str("method", info.FullMethod).Str("code", code.String()).Msg("request failed")
		return resp, err
	}
	log.Debug().Str("method", info.FullMethod).Dur("latency", time.Since(start)).Msg("request served")
	return resp, nil
}
