package marshal

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// LexicalUUIDType orders 16-byte UUIDs by their most significant then least
// significant halves, as signed integers.
type LexicalUUIDType struct{}

func (LexicalUUIDType) Compare(a, b []byte) int {
	if c, ok := compareEmpty(a, b); ok {
		return c
	}
	for _, off := range []int{0, 8} {
		x := int64(binary.BigEndian.Uint64(a[off : off+8]))
		y := int64(binary.BigEndian.Uint64(b[off : off+8]))
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
	}
	return 0
}

func (LexicalUUIDType) Validate(b []byte) error {
	return validateUUID(b)
}

func (LexicalUUIDType) GetString(b []byte) string { return uuidString(b) }
func (LexicalUUIDType) Name() string              { return "LexicalUUIDType" }

// TimeUUIDType orders version 1 UUIDs by their embedded timestamp, breaking ties on the
// raw bytes.
type TimeUUIDType struct{}

func (TimeUUIDType) Compare(a, b []byte) int {
	if c, ok := compareEmpty(a, b); ok {
		return c
	}
	ta, tb := uuid.UUID(a).Time(), uuid.UUID(b).Time()
	switch {
	case ta < tb:
		return -1
	case ta > tb:
		return 1
	}
	return bytes.Compare(a, b)
}

func (TimeUUIDType) Validate(b []byte) error {
	if err := validateUUID(b); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if v := uuid.UUID(b).Version(); v != 1 {
		return fmt.Errorf("%w: TimeUUID only makes sense with version 1 UUIDs (got %d)",
			errInvalidValue, v)
	}
	return nil
}

func (TimeUUIDType) GetString(b []byte) string { return uuidString(b) }
func (TimeUUIDType) Name() string              { return "TimeUUIDType" }

func validateUUID(b []byte) error {
	if len(b) != 0 && len(b) != 16 {
		return fmt.Errorf("%w: UUIDs must be exactly 16 bytes", errInvalidValue)
	}
	return nil
}

func uuidString(b []byte) string {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return ""
	}
	return u.String()
}
