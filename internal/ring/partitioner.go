// Package ring places row keys on the token ring and answers which rows a key or token
// range covers, in ring order.
package ring

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Token is a position on the ring. Tokens of one partitioner compare with bytes.Compare;
// the empty token is the minimum and sorts before every other token.
type Token []byte

// Compare orders two tokens.
func (t Token) Compare(o Token) int {
	return bytes.Compare(t, o)
}

// IsMinimum reports whether t is the ring origin.
func (t Token) IsMinimum() bool {
	return len(t) == 0
}

// Partitioner maps row keys to tokens.
type Partitioner interface {
	Token(key []byte) Token
	TokenFromString(s string) (Token, error)
	TokenString(t Token) string
	// PreservesOrder reports whether token order equals key order.
	PreservesOrder() bool
	Name() string
}

// Get resolves a partitioner by name.
func Get(name string) (Partitioner, error) {
	switch name {
	case "", "random", "RandomPartitioner":
		return NewRandomPartitioner(), nil
	case "byte_ordered", "ByteOrderedPartitioner":
		return NewByteOrderedPartitioner(), nil
	case "collating", "CollatingOrderPreservingPartitioner":
		return NewCollatingPartitioner(), nil
	}
	return nil, fmt.Errorf("unknown partitioner: %s", name)
}

// RandomPartitioner places keys by their md5 digest.
type RandomPartitioner struct{}

func NewRandomPartitioner() *RandomPartitioner {
	return &RandomPartitioner{}
}

func (p *RandomPartitioner) Token(key []byte) Token {
	sum := md5.Sum(key)
	return Token(sum[:])
}

// TokenString renders the digest as a decimal integer. The minimum token is "".
func (p *RandomPartitioner) TokenString(t Token) string {
	if t.IsMinimum() {
		return ""
	}
	return new(big.Int).SetBytes(t).String()
}

func (p *RandomPartitioner) TokenFromString(s string) (Token, error) {
	if s == "" {
		return Token{}, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > md5.Size*8 {
		return nil, fmt.Errorf("invalid token for RandomPartitioner: %q", s)
	}
	return Token(n.FillBytes(make([]byte, md5.Size))), nil
}

func (p *RandomPartitioner) PreservesOrder() bool { return false }
func (p *RandomPartitioner) Name() string         { return "RandomPartitioner" }

// ByteOrderedPartitioner uses the key itself as the token.
type ByteOrderedPartitioner struct{}

func NewByteOrderedPartitioner() *ByteOrderedPartitioner {
	return &ByteOrderedPartitioner{}
}

func (p *ByteOrderedPartitioner) Token(key []byte) Token {
	return Token(bytes.Clone(key))
}

func (p *ByteOrderedPartitioner) TokenString(t Token) string {
	return hex.EncodeToString(t)
}

func (p *ByteOrderedPartitioner) TokenFromString(s string) (Token, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid token for ByteOrderedPartitioner: %w", err)
	}
	return Token(b), nil
}

func (p *ByteOrderedPartitioner) PreservesOrder() bool { return true }
func (p *ByteOrderedPartitioner) Name() string         { return "ByteOrderedPartitioner" }

// CollatingPartitioner orders keys by their en-US collation key.
type CollatingPartitioner struct {
	mu       sync.Mutex
	collator *collate.Collator
	buf      collate.Buffer
}

func NewCollatingPartitioner() *CollatingPartitioner {
	return &CollatingPartitioner{
		collator: collate.New(language.AmericanEnglish),
	}
}

func (p *CollatingPartitioner) Token(key []byte) Token {
	if len(key) == 0 {
		return Token{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	k := p.collator.Key(&p.buf, key)
	t := Token(bytes.Clone(k))
	p.buf.Reset()
	return t
}

func (p *CollatingPartitioner) TokenString(t Token) string {
	return hex.EncodeToString(t)
}

func (p *CollatingPartitioner) TokenFromString(s string) (Token, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid token for CollatingOrderPreservingPartitioner: %w", err)
	}
	return Token(b), nil
}

func (p *CollatingPartitioner) PreservesOrder() bool { return true }
func (p *CollatingPartitioner) Name() string {
	return "CollatingOrderPreservingPartitioner"
}
