package cdc_emitter

import (
	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/tessera"
)

// CDCParams is one applied change. SuperColumn is set for changes inside a super column
// family; Qualifier is empty when a whole super column or family was deleted.
type CDCParams struct {
	Operation   tessera.Operation `json:"operation"`
	Keyspace    string            `json:"keyspace"`
	RowKey      []byte            `json:"key"`
	Family      string            `json:"family"`
	SuperColumn []byte            `json:"superColumn,omitempty"`
	Qualifier   []byte            `json:"qualifier,omitempty"`
	Value       []byte            `json:"value,omitempty"`
	Clock       int64             `json:"clock"`
	Tombstone   bool              `json:"isTombstone"`
	ExpiresAt   int64             `json:"expiresAt,omitempty"`
}

// Emit queues a change for every subscriber. It never blocks the write path: when the
// buffer is full the event is dropped.
func (m *Manager) Emit(params *CDCParams) {
	select {
	case m.emitChan <- params:
		m.metrics.RecordCDCEvent()
	default:
		m.metrics.RecordCDCDropped()
		log.Warn().Str("family", params.Family).Msg("CDC buffer full, dropping event")
	}
}

// raiseCDCEvent sends the event to every connected stream, dropping streams that fail.
func (m *Manager) raiseCDCEvent(params *CDCParams) {
	event := toEvent(params)

	m.streamsMux.Lock()
	defer m.streamsMux.Unlock()

	for id, stream := range m.streams {
		if err := stream.Send(event); err != nil {
			log.Warn().Err(err).Str("client", id).Msg("removing gRPC stream due to send error")
			delete(m.streams, id)
		}
	}
	m.metrics.SetCDCSubscribers(len(m.streams))
}

// toEvent names the family keyspace/cf, or keyspace/cf:super inside a super column.
func toEvent(p *CDCParams) *v1.CDCEvent {
	family := p.Family
	if p.Keyspace != "" {
		family = p.Keyspace + "/" + family
	}
	if len(p.SuperColumn) > 0 {
		family += ":" + string(p.SuperColumn)
	}

	event := &v1.CDCEvent{
		RowKey:        string(p.RowKey),
		Family:        family,
		Qualifier:     string(p.Qualifier),
		Value:         p.Value,
		TimestampUnix: p.Clock,
		Tombstone:     p.Tombstone,
		ExpiresAtUnix: p.ExpiresAt,
	}

	switch p.Operation {
	case tessera.OperationRead:
		event.Operation = v1.LitetableOperation_READ
	case tessera.OperationWrite, tessera.OperationIncrement:
		event.Operation = v1.LitetableOperation_WRITE
	case tessera.OperationDelete, tessera.OperationTruncate:
		event.Operation = v1.LitetableOperation_DELETE
	}
	return event
}
