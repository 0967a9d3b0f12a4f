package tessera

import (
	"fmt"
	"strings"
)

// ConsistencyLevel is carried on every call. A single node acknowledges every level it
// accepts on its own.
type ConsistencyLevel int

const (
	ConsistencyZero ConsistencyLevel = iota
	ConsistencyOne
	ConsistencyQuorum
	ConsistencyLocalQuorum
	ConsistencyEachQuorum
	ConsistencyAll
	ConsistencyAny
)

var consistencyNames = map[ConsistencyLevel]string{
	ConsistencyZero:        "ZERO",
	ConsistencyOne:         "ONE",
	ConsistencyQuorum:      "QUORUM",
	ConsistencyLocalQuorum: "LOCAL_QUORUM",
	ConsistencyEachQuorum:  "EACH_QUORUM",
	ConsistencyAll:         "ALL",
	ConsistencyAny:         "ANY",
}

func (c ConsistencyLevel) String() string {
	if s, ok := consistencyNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ConsistencyLevel(%d)", int(c))
}

// Valid reports whether c is a known level.
func (c ConsistencyLevel) Valid() bool {
	_, ok := consistencyNames[c]
	return ok
}

// ParseConsistencyLevel accepts the level names, case-insensitively.
func ParseConsistencyLevel(s string) (ConsistencyLevel, error) {
	for level, name := range consistencyNames {
		if strings.EqualFold(name, s) {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown consistency level %q", s)
}
