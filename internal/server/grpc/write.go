package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *service) Insert(ctx context.Context, msg *InsertRequest) (*Empty, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnParent.ColumnFamily); err != nil {
		return nil, err
	}
	if err := s.operations.Insert(ctx, msg.Keyspace, msg.Key, msg.ColumnParent, msg.Column, msg.ConsistencyLevel); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) Add(ctx context.Context, msg *AddRequest) (*Empty, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnParent.ColumnFamily); err != nil {
		return nil, err
	}
	if err := s.operations.Add(ctx, msg.Keyspace, msg.Key, msg.ColumnParent, msg.Column, msg.ConsistencyLevel); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) Remove(ctx context.Context, msg *RemoveRequest) (*Empty, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnPath.ColumnFamily); err != nil {
		return nil, err
	}
	err := s.operations.Remove(ctx, msg.Keyspace, msg.Key, msg.ColumnPath, msg.Timestamp, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) BatchMutate(ctx context.Context, msg *BatchMutateRequest) (*Empty, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	if len(msg.Mutations) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "mutations required")
	}
	err := s.operations.BatchMutate(ctx, msg.Keyspace, toMutationMap(msg.Mutations), msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}

func (s *service) Truncate(ctx context.Context, msg *ColumnFamilyRequest) (*Empty, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	if err := s.operations.Truncate(ctx, msg.Keyspace, msg.ColumnFamily); err != nil {
		return nil, toStatus(err)
	}
	return &Empty{}, nil
}
