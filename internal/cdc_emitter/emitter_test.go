package cdc_emitter

import (
	"testing"

	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/stretchr/testify/require"
	"github.com/tessera-db/tessera/internal/tessera"
)

func TestManager_Emit(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	m := &Manager{emitChan: make(chan *CDCParams, 1)}

	first := &CDCParams{Family: "Standard1"}
	m.Emit(first)
	// full buffer drops instead of blocking
	m.Emit(&CDCParams{Family: "Standard1"})

	req.Len(m.emitChan, 1)
	req.Same(first, <-m.emitChan)
}

func TestToEvent(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		params *CDCParams
		want   *v1.CDCEvent
	}{
		"column write": {
			params: &CDCParams{
				Operation: tessera.OperationWrite,
				Keyspace:  "Keyspace1",
				RowKey:    []byte("user:123"),
				Family:    "Standard1",
				Qualifier: []byte("name"),
				Value:     []byte("champ"),
				Clock:     10,
				ExpiresAt: 99,
			},
			want: &v1.CDCEvent{
				Operation:     v1.LitetableOperation_WRITE,
				RowKey:        "user:123",
				Family:        "Keyspace1/Standard1",
				Qualifier:     "name",
				Value:         []byte("champ"),
				TimestampUnix: 10,
				ExpiresAtUnix: 99,
			},
		},
		"counter add": {
			params: &CDCParams{
				Operation: tessera.OperationIncrement,
				RowKey:    []byte("k"),
				Family:    "Counter1",
				Qualifier: []byte("hits"),
			},
			want: &v1.CDCEvent{
				Operation: v1.LitetableOperation_WRITE,
				RowKey:    "k",
				Family:    "Counter1",
				Qualifier: "hits",
			},
		},
		"super column delete": {
			params: &CDCParams{
				Operation:   tessera.OperationDelete,
				Keyspace:    "Keyspace2",
				RowKey:      []byte("k"),
				Family:      "Super1",
				SuperColumn: []byte("sc1"),
				Clock:       5,
				Tombstone:   true,
			},
			want: &v1.CDCEvent{
				Operation:     v1.LitetableOperation_DELETE,
				RowKey:        "k",
				Family:        "Keyspace2/Super1:sc1",
				TimestampUnix: 5,
				Tombstone:     true,
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := toEvent(tc.params)
			req := require.New(t)
			req.Equal(tc.want.GetOperation(), got.GetOperation())
			req.Equal(tc.want.GetRowKey(), got.GetRowKey())
			req.Equal(tc.want.GetFamily(), got.GetFamily())
			req.Equal(tc.want.GetQualifier(), got.GetQualifier())
			req.Equal(tc.want.GetValue(), got.GetValue())
			req.Equal(tc.want.GetTimestampUnix(), got.GetTimestampUnix())
			req.Equal(tc.want.GetTombstone(), got.GetTombstone())
			req.Equal(tc.want.GetExpiresAtUnix(), got.GetExpiresAtUnix())
		})
	}
}
