package marshal

import (
	"errors"
	"fmt"
	"strings"
)

const classPrefix = "org.apache.cassandra.db.marshal."

var types = map[string]AbstractType{
	"BytesType":       BytesType{},
	"AsciiType":       AsciiType{},
	"UTF8Type":        UTF8Type{},
	"LongType":        LongType{},
	"LexicalUUIDType": LexicalUUIDType{},
	"TimeUUIDType":    TimeUUIDType{},
}

// Get resolves a type by its short or fully qualified class name. An empty name is
// BytesType.
func Get(name string) (AbstractType, error) {
	if name == "" {
		return BytesType{}, nil
	}
	t, ok := types[strings.TrimPrefix(name, classPrefix)]
	if !ok {
		return nil, fmt.Errorf("unknown comparator or validator: %s", name)
	}
	return t, nil
}

// IsInvalidValue reports whether err came from a failed Validate.
func IsInvalidValue(err error) bool {
	return errors.Is(err, errInvalidValue)
}
