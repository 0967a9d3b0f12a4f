package grpc

import (
	"context"

	"github.com/tessera-db/tessera/internal/tessera"
	grpc2 "google.golang.org/grpc"
)

// Client calls the tessera.Tessera service over any client connection. Every call is
// sent with the msgpack content-subtype.
type Client struct {
	cc grpc2.ClientConnInterface
}

func NewClient(cc grpc2.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc2.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc2.CallOption{grpc2.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, in *GetRequest, opts ...grpc2.CallOption) (*tessera.ColumnOrSuperColumn, error) {
	return invoke[tessera.ColumnOrSuperColumn](ctx, c, "Get", in, opts)
}

func (c *Client) GetSlice(ctx context.Context, in *SliceRequest, opts ...grpc2.CallOption) (*SliceResponse, error) {
	return invoke[SliceResponse](ctx, c, "GetSlice", in, opts)
}

func (c *Client) GetCount(ctx context.Context, in *SliceRequest, opts ...grpc2.CallOption) (*CountResponse, error) {
	return invoke[CountResponse](ctx, c, "GetCount", in, opts)
}

func (c *Client) MultigetSlice(ctx context.Context, in *MultigetRequest, opts ...grpc2.CallOption) (*KeySlicesResponse, error) {
	return invoke[KeySlicesResponse](ctx, c, "MultigetSlice", in, opts)
}

func (c *Client) MultigetCount(ctx context.Context, in *MultigetRequest, opts ...grpc2.CallOption) (*KeyCountsResponse, error) {
	return invoke[KeyCountsResponse](ctx, c, "MultigetCount", in, opts)
}

func (c *Client) GetRangeSlices(ctx context.Context, in *RangeSlicesRequest, opts ...grpc2.CallOption) (*KeySlicesResponse, error) {
	return invoke[KeySlicesResponse](ctx, c, "GetRangeSlices", in, opts)
}

func (c *Client) GetIndexedSlices(ctx context.Context, in *IndexedSlicesRequest, opts ...grpc2.CallOption) (*KeySlicesResponse, error) {
	return invoke[KeySlicesResponse](ctx, c, "GetIndexedSlices", in, opts)
}

func (c *Client) Insert(ctx context.Context, in *InsertRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Insert", in, opts)
}

func (c *Client) Add(ctx context.Context, in *AddRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Add", in, opts)
}

func (c *Client) Remove(ctx context.Context, in *RemoveRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Remove", in, opts)
}

func (c *Client) BatchMutate(ctx context.Context, in *BatchMutateRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "BatchMutate", in, opts)
}

func (c *Client) Truncate(ctx context.Context, in *ColumnFamilyRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Truncate", in, opts)
}

func (c *Client) DescribeKeyspaces(ctx context.Context, opts ...grpc2.CallOption) (*KeyspacesResponse, error) {
	return invoke[KeyspacesResponse](ctx, c, "DescribeKeyspaces", &Empty{}, opts)
}

func (c *Client) DescribeKeyspace(ctx context.Context, in *KeyspaceRequest, opts ...grpc2.CallOption) (*tessera.KsDef, error) {
	return invoke[tessera.KsDef](ctx, c, "DescribeKeyspace", in, opts)
}

func (c *Client) DescribeRing(ctx context.Context, in *KeyspaceRequest, opts ...grpc2.CallOption) (*RingResponse, error) {
	return invoke[RingResponse](ctx, c, "DescribeRing", in, opts)
}

func (c *Client) DescribePartitioner(ctx context.Context, opts ...grpc2.CallOption) (*StringResponse, error) {
	return invoke[StringResponse](ctx, c, "DescribePartitioner", &Empty{}, opts)
}

func (c *Client) DescribeVersion(ctx context.Context, opts ...grpc2.CallOption) (*StringResponse, error) {
	return invoke[StringResponse](ctx, c, "DescribeVersion", &Empty{}, opts)
}

func (c *Client) DescribeClusterName(ctx context.Context, opts ...grpc2.CallOption) (*StringResponse, error) {
	return invoke[StringResponse](ctx, c, "DescribeClusterName", &Empty{}, opts)
}

func (c *Client) SystemAddKeyspace(ctx context.Context, in *tessera.KsDef, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemAddKeyspace", in, opts)
}

func (c *Client) SystemUpdateKeyspace(ctx context.Context, in *tessera.KsDef, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemUpdateKeyspace", in, opts)
}

func (c *Client) SystemDropKeyspace(ctx context.Context, in *KeyspaceRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemDropKeyspace", in, opts)
}

func (c *Client) SystemRenameKeyspace(ctx context.Context, in *RenameKeyspaceRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemRenameKeyspace", in, opts)
}

func (c *Client) SystemAddColumnFamily(ctx context.Context, in *tessera.CfDef, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemAddColumnFamily", in, opts)
}

func (c *Client) SystemDropColumnFamily(ctx context.Context, in *ColumnFamilyRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemDropColumnFamily", in, opts)
}

func (c *Client) SystemRenameColumnFamily(ctx context.Context, in *RenameColumnFamilyRequest, opts ...grpc2.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "SystemRenameColumnFamily", in, opts)
}
