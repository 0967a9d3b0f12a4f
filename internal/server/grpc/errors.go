package grpc

import (
	"context"
	"errors"

	ops "github.com/tessera-db/tessera/internal/operations"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps an operations error onto a gRPC status.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, ops.ErrInvalidRequest):
		code = codes.InvalidArgument
	case errors.Is(err, ops.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, ops.ErrUnavailable):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
