package marshal

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// LongType orders 8-byte big-endian signed integers.
type LongType struct{}

func (LongType) Compare(a, b []byte) int {
	if c, ok := compareEmpty(a, b); ok {
		return c
	}
	x, y := int64(binary.BigEndian.Uint64(a)), int64(binary.BigEndian.Uint64(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (LongType) Validate(b []byte) error {
	if len(b) != 0 && len(b) != 8 {
		return fmt.Errorf("%w: expected 8 or 0 byte long (%d)", errInvalidValue, len(b))
	}
	return nil
}

func (LongType) GetString(b []byte) string {
	if len(b) != 8 {
		return ""
	}
	return strconv.FormatInt(int64(binary.BigEndian.Uint64(b)), 10)
}

func (LongType) Name() string { return "LongType" }

// LongBytes encodes v the way LongType expects.
func LongBytes(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

// BytesLong decodes an 8-byte big-endian value.
func BytesLong(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: expected 8 byte long (%d)", errInvalidValue, len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
