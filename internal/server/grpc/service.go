package grpc

import (
	"context"

	"github.com/tessera-db/tessera/internal/tessera"
	grpc2 "google.golang.org/grpc"
)

const serviceName = "tessera.Tessera"

// TesseraServer is the server side of the tessera.Tessera service.
type TesseraServer interface {
	Get(context.Context, *GetRequest) (*tessera.ColumnOrSuperColumn, error)
	GetSlice(context.Context, *SliceRequest) (*SliceResponse, error)
	GetCount(context.Context, *SliceRequest) (*CountResponse, error)
	MultigetSlice(context.Context, *MultigetRequest) (*KeySlicesResponse, error)
	MultigetCount(context.Context, *MultigetRequest) (*KeyCountsResponse, error)
	GetRangeSlices(context.Context, *RangeSlicesRequest) (*KeySlicesResponse, error)
	GetIndexedSlices(context.Context, *IndexedSlicesRequest) (*KeySlicesResponse, error)
	Insert(context.Context, *InsertRequest) (*Empty, error)
	Add(context.Context, *AddRequest) (*Empty, error)
	Remove(context.Context, *RemoveRequest) (*Empty, error)
	BatchMutate(context.Context, *BatchMutateRequest) (*Empty, error)
	Truncate(context.Context, *ColumnFamilyRequest) (*Empty, error)

	DescribeKeyspaces(context.Context, *Empty) (*KeyspacesResponse, error)
	DescribeKeyspace(context.Context, *KeyspaceRequest) (*tessera.KsDef, error)
	DescribeRing(context.Context, *KeyspaceRequest) (*RingResponse, error)
	DescribePartitioner(context.Context, *Empty) (*StringResponse, error)
	DescribeVersion(context.Context, *Empty) (*StringResponse, error)
	DescribeClusterName(context.Context, *Empty) (*StringResponse, error)

	SystemAddKeyspace(context.Context, *tessera.KsDef) (*Empty, error)
	SystemUpdateKeyspace(context.Context, *tessera.KsDef) (*Empty, error)
	SystemDropKeyspace(context.Context, *KeyspaceRequest) (*Empty, error)
	SystemRenameKeyspace(context.Context, *RenameKeyspaceRequest) (*Empty, error)
	SystemAddColumnFamily(context.Context, *tessera.CfDef) (*Empty, error)
	SystemDropColumnFamily(context.Context, *ColumnFamilyRequest) (*Empty, error)
	SystemRenameColumnFamily(context.Context, *RenameColumnFamilyRequest) (*Empty, error)
}

// ServiceDesc describes the tessera.Tessera service for grpc.Server.RegisterService.
var ServiceDesc = grpc2.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*TesseraServer)(nil),
	Methods: []grpc2.MethodDesc{
		unary("Get", TesseraServer.Get),
		unary("GetSlice", TesseraServer.GetSlice),
		unary("GetCount", TesseraServer.GetCount),
		unary("MultigetSlice", TesseraServer.MultigetSlice),
		unary("MultigetCount", TesseraServer.MultigetCount),
		unary("GetRangeSlices", TesseraServer.GetRangeSlices),
		unary("GetIndexedSlices", TesseraServer.GetIndexedSlices),
		unary("Insert", TesseraServer.Insert),
		unary("Add", TesseraServer.Add),
		unary("Remove", TesseraServer.Remove),
		unary("BatchMutate", TesseraServer.BatchMutate),
		unary("Truncate", TesseraServer.Truncate),
		unary("DescribeKeyspaces", TesseraServer.DescribeKeyspaces),
		unary("DescribeKeyspace", TesseraServer.DescribeKeyspace),
		unary("DescribeRing", TesseraServer.DescribeRing),
		unary("DescribePartitioner", TesseraServer.DescribePartitioner),
		unary("DescribeVersion", TesseraServer.DescribeVersion),
		unary("DescribeClusterName", TesseraServer.DescribeClusterName),
		unary("SystemAddKeyspace", TesseraServer.SystemAddKeyspace),
		unary("SystemUpdateKeyspace", TesseraServer.SystemUpdateKeyspace),
		unary("SystemDropKeyspace", TesseraServer.SystemDropKeyspace),
		unary("SystemRenameKeyspace", TesseraServer.SystemRenameKeyspace),
		unary("SystemAddColumnFamily", TesseraServer.SystemAddColumnFamily),
		unary("SystemDropColumnFamily", TesseraServer.SystemDropColumnFamily),
		unary("SystemRenameColumnFamily", TesseraServer.SystemRenameColumnFamily),
	},
	Streams: []grpc2.StreamDesc{},
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unary builds the method descriptor for one request/response call.
func unary[Req, Resp any](name string, call func(TesseraServer, context.Context, *Req) (*Resp, error)) grpc2.MethodDesc {
	return grpc2.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc2.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TesseraServer), ctx, in)
			}
			info := &grpc2.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TesseraServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// service implements TesseraServer on top of the operations manager.
type service struct {
	operations operations
}

var _ TesseraServer = (*service)(nil)
