package ring

import (
	"errors"
	"fmt"

	"github.com/tessera-db/tessera/internal/tessera"
)

var (
	ErrInvalidRange = errors.New("invalid range")
)

// Segment is a contiguous, non-wrapping run of the ring. A nil To means the end of the
// ring.
type Segment struct {
	From          Token
	FromInclusive bool
	To            Token
}

// Contains reports whether t falls inside the segment.
func (s Segment) Contains(t Token) bool {
	c := t.Compare(s.From)
	if c < 0 || (c == 0 && !s.FromInclusive) {
		return false
	}
	return s.To == nil || t.Compare(s.To) <= 0
}

// Bounds is a range of the ring. Key ranges include their left bound and never wrap;
// token ranges exclude the left bound and wrap past the origin when Right <= Left.
type Bounds struct {
	Left        Token
	Right       Token
	IncludeLeft bool
}

// Segments splits the bounds into at most two non-wrapping segments, in ring order
// starting at Left.
func (b Bounds) Segments() []Segment {
	first := Segment{From: b.Left, FromInclusive: b.IncludeLeft}
	if b.Right.IsMinimum() {
		return []Segment{first}
	}
	if b.IncludeLeft || b.Left.Compare(b.Right) < 0 {
		first.To = b.Right
		return []Segment{first}
	}
	// (Left, Right] with Right <= Left wraps around the origin. Left == Right is the
	// whole ring starting after Left.
	return []Segment{
		first,
		{From: Token{}, FromInclusive: true, To: b.Right},
	}
}

// Ring is the single-node view of token ownership.
type Ring struct {
	partitioner Partitioner
	token       Token
	endpoint    string
}

type Config struct {
	Partitioner Partitioner
	// InitialToken is this node's token. Empty picks one from the endpoint.
	InitialToken string
	Endpoint     string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Partitioner == nil {
		errGrp = append(errGrp, errors.New("partitioner is required"))
	}
	if c.Endpoint == "" {
		errGrp = append(errGrp, errors.New("endpoint is required"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Ring, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var token Token
	if cfg.InitialToken != "" {
		t, err := cfg.Partitioner.TokenFromString(cfg.InitialToken)
		if err != nil {
			return nil, err
		}
		token = t
	} else {
		token = cfg.Partitioner.Token([]byte(cfg.Endpoint))
	}

	return &Ring{
		partitioner: cfg.Partitioner,
		token:       token,
		endpoint:    cfg.Endpoint,
	}, nil
}

func (r *Ring) Partitioner() Partitioner {
	return r.partitioner
}

// Token returns the token of key.
func (r *Ring) Token(key []byte) Token {
	return r.partitioner.Token(key)
}

// DescribeRing reports the one range this node owns: all of it.
func (r *Ring) DescribeRing() []tessera.TokenRange {
	s := r.partitioner.TokenString(r.token)
	return []tessera.TokenRange{{
		StartToken: s,
		EndToken:   s,
		Endpoints:  []string{r.endpoint},
	}}
}

// KeyBounds turns an inclusive key range into ring bounds. An empty end key runs to the
// end of the ring.
func (r *Ring) KeyBounds(startKey, endKey []byte) (Bounds, error) {
	left := r.partitioner.Token(startKey)
	if len(startKey) == 0 {
		left = Token{}
	}
	right := Token{}
	if len(endKey) > 0 {
		right = r.partitioner.Token(endKey)
	}

	if !right.IsMinimum() && left.Compare(right) > 0 {
		if r.partitioner.PreservesOrder() {
			return Bounds{}, fmt.Errorf("%w: start key must sort before (or equal to) finish key in your partitioner", ErrInvalidRange)
		}
		return Bounds{}, fmt.Errorf("%w: start key's md5 sorts after end key's md5; this is not allowed, you probably should not specify end key at all under RandomPartitioner", ErrInvalidRange)
	}

	return Bounds{Left: left, Right: right, IncludeLeft: true}, nil
}

// TokenBounds parses a (start, end] token range.
func (r *Ring) TokenBounds(startToken, endToken string) (Bounds, error) {
	left, err := r.partitioner.TokenFromString(startToken)
	if err != nil {
		return Bounds{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	right, err := r.partitioner.TokenFromString(endToken)
	if err != nil {
		return Bounds{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return Bounds{Left: left, Right: right}, nil
}
