package grpc

import (
	"context"

	"github.com/tessera-db/tessera/internal/tessera"
)

func (s *service) DescribeKeyspaces(ctx context.Context, _ *Empty) (*KeyspacesResponse, error) {
	defs, err := s.operations.DescribeKeyspaces(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &KeyspacesResponse{Keyspaces: defs}, nil
}

func (s *service) DescribeKeyspace(ctx context.Context, msg *KeyspaceRequest) (*tessera.KsDef, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	def, err := s.operations.DescribeKeyspace(ctx, msg.Keyspace)
	if err != nil {
		return nil, toStatus(err)
	}
	return def, nil
}

func (s *service) DescribeRing(ctx context.Context, msg *KeyspaceRequest) (*RingResponse, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	ranges, err := s.operations.DescribeRing(ctx, msg.Keyspace)
	if err != nil {
		return nil, toStatus(err)
	}
	return &RingResponse{Ranges: ranges}, nil
}

func (s *service) DescribePartitioner(ctx context.Context, _ *Empty) (*StringResponse, error) {
	return &StringResponse{Value: s.operations.DescribePartitioner(ctx)}, nil
}

func (s *service) DescribeVersion(ctx context.Context, _ *Empty) (*StringResponse, error) {
	return &StringResponse{Value: s.operations.DescribeVersion(ctx)}, nil
}

func (s *service) DescribeClusterName(ctx context.Context, _ *Empty) (*StringResponse, error) {
	return &StringResponse{Value: s.operations.DescribeClusterName(ctx)}, nil
}

func (s *service) SystemAddKeyspace(ctx context.Context, msg *tessera.KsDef) (*Empty, error) {
	if err := s.operations.SystemAddKeyspace(ctx, *msg); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemUpdateKeyspace(ctx context.Context, msg *tessera.KsDef) (*Empty, error) {
	if err := s.operations.SystemUpdateKeyspace(ctx, *msg); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemDropKeyspace(ctx context.Context, msg *KeyspaceRequest) (*Empty, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	if err := s.operations.SystemDropKeyspace(ctx, msg.Keyspace); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemRenameKeyspace(ctx context.Context, msg *RenameKeyspaceRequest) (*Empty, error) {
	if err := s.operations.SystemRenameKeyspace(ctx, msg.From, msg.To); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemAddColumnFamily(ctx context.Context, msg *tessera.CfDef) (*Empty, error) {
	if err := s.operations.SystemAddColumnFamily(ctx, *msg); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemDropColumnFamily(ctx context.Context, msg *ColumnFamilyRequest) (*Empty, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	if err := s.operations.SystemDropColumnFamily(ctx, msg.Keyspace, msg.ColumnFamily); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) SystemRenameColumnFamily(ctx context.Context, msg *RenameColumnFamilyRequest) (*Empty, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	if err := s.operations.SystemRenameColumnFamily(ctx, msg.Keyspace, msg.From, msg.To); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}
