// Package marshal holds the comparators that order column names and validate column
// values. A column family picks its comparator once, by name, when it is defined.
package marshal

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

var errInvalidValue = errors.New("invalid value")

// AbstractType orders and validates byte strings of one kind.
type AbstractType interface {
	// Compare returns -1, 0 or 1.
	Compare(a, b []byte) int
	// Validate rejects byte strings the type cannot represent.
	Validate(b []byte) error
	// GetString renders b for error messages and logs.
	GetString(b []byte) string
	// Name is the class name used in schema definitions.
	Name() string
}

// BytesType orders by raw bytes.
type BytesType struct{}

func (BytesType) Compare(a, b []byte) int  { return bytes.Compare(a, b) }
func (BytesType) Validate([]byte) error     { return nil }
func (BytesType) GetString(b []byte) string { return hex.EncodeToString(b) }
func (BytesType) Name() string              { return "BytesType" }

// AsciiType orders by bytes and only accepts 7-bit characters.
type AsciiType struct{}

func (AsciiType) Compare(a, b []byte) int { return bytes.Compare(a, b) }

func (AsciiType) Validate(b []byte) error {
	for i, c := range b {
		if c > 0x7f {
			return fmt.Errorf("%w: invalid byte for ascii: %d at %d", errInvalidValue, c, i)
		}
	}
	return nil
}

func (AsciiType) GetString(b []byte) string { return string(b) }
func (AsciiType) Name() string              { return "AsciiType" }

// UTF8Type orders by bytes, which for valid UTF-8 is code point order.
type UTF8Type struct{}

func (UTF8Type) Compare(a, b []byte) int { return bytes.Compare(a, b) }

func (UTF8Type) Validate(b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("%w: invalid UTF8 bytes %s", errInvalidValue, hex.EncodeToString(b))
	}
	return nil
}

func (UTF8Type) GetString(b []byte) string { return string(b) }
func (UTF8Type) Name() string              { return "UTF8Type" }

// compareEmpty orders empty byte strings before everything else. ok is false when
// neither side is empty.
func compareEmpty(a, b []byte) (int, bool) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 0, true
	case len(a) == 0:
		return -1, true
	case len(b) == 0:
		return 1, true
	}
	return 0, false
}
