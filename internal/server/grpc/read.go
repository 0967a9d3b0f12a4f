package grpc

import (
	"context"
	"errors"

	"github.com/tessera-db/tessera/internal/tessera"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func validateKeyspace(keyspace string) error {
	if keyspace == "" {
		return status.Errorf(codes.InvalidArgument, "keyspace required")
	}
	return nil
}

func validateRow(keyspace string, key []byte, cf string) error {
	var errGrp []error
	if keyspace == "" {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "keyspace required"))
	}
	if len(key) == 0 {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "key required"))
	}
	if cf == "" {
		errGrp = append(errGrp, status.Errorf(codes.InvalidArgument, "column family required"))
	}
	return errors.Join(errGrp...)
}

func (s *service) Get(ctx context.Context, msg *GetRequest) (*tessera.ColumnOrSuperColumn, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnPath.ColumnFamily); err != nil {
		return nil, err
	}
	got, err := s.operations.Get(ctx, msg.Keyspace, msg.Key, msg.ColumnPath, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return got, nil
}

func (s *service) GetSlice(ctx context.Context, msg *SliceRequest) (*SliceResponse, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnParent.ColumnFamily); err != nil {
		return nil, err
	}
	cols, err := s.operations.GetSlice(ctx, msg.Keyspace, msg.Key, msg.ColumnParent, msg.Predicate, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &SliceResponse{Columns: cols}, nil
}

func (s *service) GetCount(ctx context.Context, msg *SliceRequest) (*CountResponse, error) {
	if err := validateRow(msg.Keyspace, msg.Key, msg.ColumnParent.ColumnFamily); err != nil {
		return nil, err
	}
	n, err := s.operations.GetCount(ctx, msg.Keyspace, msg.Key, msg.ColumnParent, msg.Predicate, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CountResponse{Count: n}, nil
}

func (s *service) MultigetSlice(ctx context.Context, msg *MultigetRequest) (*KeySlicesResponse, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	rows, err := s.operations.MultigetSlice(ctx, msg.Keyspace, msg.Keys, msg.ColumnParent, msg.Predicate, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &KeySlicesResponse{Rows: toKeySlices(msg.Keys, rows)}, nil
}

func (s *service) MultigetCount(ctx context.Context, msg *MultigetRequest) (*KeyCountsResponse, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	counts, err := s.operations.MultigetCount(ctx, msg.Keyspace, msg.Keys, msg.ColumnParent, msg.Predicate, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &KeyCountsResponse{Counts: toKeyCounts(msg.Keys, counts)}, nil
}

func (s *service) GetRangeSlices(ctx context.Context, msg *RangeSlicesRequest) (*KeySlicesResponse, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	rows, err := s.operations.GetRangeSlices(ctx, msg.Keyspace, msg.ColumnParent, msg.Predicate, msg.Range, msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &KeySlicesResponse{Rows: rows}, nil
}

func (s *service) GetIndexedSlices(ctx context.Context, msg *IndexedSlicesRequest) (*KeySlicesResponse, error) {
	if err := validateKeyspace(msg.Keyspace); err != nil {
		return nil, err
	}
	rows, err := s.operations.GetIndexedSlices(ctx, msg.Keyspace, msg.ColumnParent, msg.IndexClause, msg.Predicate,
		msg.ConsistencyLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &KeySlicesResponse{Rows: rows}, nil
}
