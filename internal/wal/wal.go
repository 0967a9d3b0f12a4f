// Package wal is the commit log. Every validated row mutation is appended before it is
// applied, and the log is replayed into the store at start-up.
//
// Each record is a JSON Entry compressed with snappy and framed by its length:
//
//	[4-byte big-endian length][snappy block]
package wal

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/rs/zerolog/log"
	"github.com/tessera-db/tessera/internal/column_family"
	"github.com/tessera-db/tessera/internal/tessera"
)

const (
	defaultWalDirectory = "wal"
	defaultWALFile      = "commit.log"
	frameHeaderSize     = 4
	maxFrameSize        = 256 << 20
)

// Entry is one commit log record. Writes carry the ops of every column family they
// touch, keyed by column family id; truncates name the column family in CfID.
type Entry struct {
	Operation tessera.Operation            `json:"operation"`
	Keyspace  string                       `json:"keyspace"`
	Key       []byte                       `json:"key,omitempty"`
	Families  map[int32][]column_family.Op `json:"families,omitempty"`
	CfID      int32                        `json:"cf_id,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

type Manager struct {
	mu      sync.Mutex
	walFile *os.File
	path    string
	sync    bool
}

type Config struct {
	// Path where the WAL directory will be saved
	Path string
	// Sync fsyncs the log after every append.
	Sync bool
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("home directory cannot be empty"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	walPath := filepath.Join(cfg.Path, defaultWalDirectory, defaultWALFile)
	if err := os.MkdirAll(filepath.Dir(walPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create WAL directory: %w", err)
	}

	file, err := os.OpenFile(walPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file: %w", err)
	}

	return &Manager{
		walFile: file,
		path:    walPath,
		sync:    cfg.Sync,
	}, nil
}

// Apply appends e to the log. A mutation is not acknowledged before Apply returns.
func (m *Manager) Apply(e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	block := snappy.Encode(nil, data)

	frame := make([]byte, frameHeaderSize+len(block))
	binary.BigEndian.PutUint32(frame, uint32(len(block)))
	copy(frame[frameHeaderSize:], block)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.walFile == nil {
		return errors.New("WAL is closed")
	}
	if _, err = m.walFile.Write(frame); err != nil {
		return fmt.Errorf("failed to write to WAL: %w", err)
	}
	if m.sync {
		if err = m.walFile.Sync(); err != nil {
			return fmt.Errorf("failed to sync WAL: %w", err)
		}
	}
	return nil
}

// Replay reads the log from the start and calls fn for every record, in order. A torn
// final frame, left by a crash mid-append, ends the replay without error; an entry that
// fails to decode is skipped.
func (m *Manager) Replay(fn func(e *Entry) error) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header := make([]byte, frameHeaderSize)
	replayed := 0
	for {
		if _, err = io.ReadFull(r, header); err != nil {
			if errors.Is(err, io.EOF) {
				return replayed, nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				log.Warn().Str("file", m.path).Msg("ignoring torn WAL frame header")
				return replayed, nil
			}
			return replayed, err
		}

		size := binary.BigEndian.Uint32(header)
		if size > maxFrameSize {
			return replayed, fmt.Errorf("WAL frame of %d bytes exceeds limit", size)
		}
		block := make([]byte, size)
		if _, err = io.ReadFull(r, block); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				log.Warn().Str("file", m.path).Msg("ignoring torn WAL frame")
				return replayed, nil
			}
			return replayed, err
		}

		data, err := snappy.Decode(nil, block)
		if err != nil {
			log.Error().Err(err).Msg("skipping corrupt WAL frame")
			continue
		}
		var e Entry
		if err = json.Unmarshal(data, &e); err != nil {
			log.Error().Err(err).Msg("skipping malformed WAL entry")
			continue
		}

		if err = fn(&e); err != nil {
			return replayed, err
		}
		replayed++
	}
}

func (m *Manager) Start() error {
	return nil
}

// Stop flushes and closes the log.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.walFile == nil {
		return nil
	}
	syncErr := m.walFile.Sync()
	closeErr := m.walFile.Close()
	m.walFile = nil
	return errors.Join(syncErr, closeErr)
}

func (m *Manager) Name() string {
	return "Commit Log"
}
