package cdc_emitter

import (
	"context"
	"net"
	"testing"
	"time"

	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/tessera"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cfg     *Config
		wantErr bool
	}{
		"invalid config": {
			cfg:     &Config{},
			wantErr: true,
		},
		"negative buffer": {
			cfg:     &Config{Port: 9999, Address: "127.0.0.1", BufferSize: -1},
			wantErr: true,
		},
		"valid config": {
			cfg: &Config{Port: 9999, Address: "127.0.0.1"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)
			m, err := New(tc.cfg)
			if tc.wantErr {
				req.Error(err)
				req.Nil(m)
				return
			}
			req.NoError(err)
			req.Equal(defaultBufferSize, cap(m.emitChan))
			req.Equal("CDC Emitter", m.Name())
		})
	}
}

func TestManager_CDCStream(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m, err := New(&Config{Port: 9999, Address: "127.0.0.1", BufferSize: 10})
	req.NoError(err)

	lis := bufconn.Listen(1 << 20)
	served := make(chan error, 1)
	go func() { served <- m.serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	req.NoError(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := v1.NewCDCServiceClient(conn).CDCStream(ctx, &v1.CDCSubscriptionRequest{ClientId: "client-1"})
	req.NoError(err)

	req.Eventually(func() bool { return m.subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	m.Emit(&CDCParams{
		Operation: tessera.OperationWrite,
		Keyspace:  "Keyspace1",
		RowKey:    []byte("key1"),
		Family:    "Standard1",
		Qualifier: []byte("c1"),
		Value:     []byte("v1"),
		Clock:     7,
	})

	event, err := stream.Recv()
	req.NoError(err)
	req.Equal(v1.LitetableOperation_WRITE, event.GetOperation())
	req.Equal("key1", event.GetRowKey())
	req.Equal("Keyspace1/Standard1", event.GetFamily())
	req.Equal("c1", event.GetQualifier())
	req.Equal([]byte("v1"), event.GetValue())
	req.Equal(int64(7), event.GetTimestampUnix())

	// cancelling the client unsubscribes it
	cancel()
	req.Eventually(func() bool { return m.subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)

	req.NoError(m.Stop())
	req.NoError(<-served)
}
