// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package hamming implements the Hamming(m) codec family: systematic
// encode/decode of single-bit-error codewords over GF(2) bit strings,
// built from a precomputed cyclic syndrome table per spec.md §4.3.
package hamming

import (
	"fmt"
	"sync"

	"github.com/xtaci/gd/bitstream"
	"github.com/xtaci/gd/gderr"
)

// MinDegree and MaxDegree bound the supported Hamming code degrees.
const (
	MinDegree = 3
	MaxDegree = 10
)

// Codec is an immutable Hamming(m) codec. Once built its tables never
// change, so a *Codec is safe to share by reference across goroutines
// (the same contract the teacher's RS and FEC codecs rely on).
type Codec struct {
	degree int
	n, k   int

	indexToSyndrome []int
	syndromeToIndex []int
}

var cache sync.Map // degree -> *Codec, since tables are pure functions of m

// New builds the Hamming(m) codec for the given degree, m in
// [MinDegree, MaxDegree]. Codecs for a given degree are cached: tables
// are read-only and expensive enough to build that sharing them across
// instances avoids repeat work.
func New(degree int) (*Codec, error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, gderr.New(gderr.InvalidParams, fmt.Sprintf("hamming: degree %d out of range [%d,%d]", degree, MinDegree, MaxDegree))
	}
	if c, ok := cache.Load(degree); ok {
		return c.(*Codec), nil
	}

	n := (1 << uint(degree)) - 1
	k := n - degree
	indexToSyndrome, syndromeToIndex := buildTables(degree)
	c := &Codec{degree: degree, n: n, k: k, indexToSyndrome: indexToSyndrome, syndromeToIndex: syndromeToIndex}
	actual, _ := cache.LoadOrStore(degree, c)
	return actual.(*Codec), nil
}

// Degree returns m.
func (c *Codec) Degree() int { return c.degree }

// N returns the codeword bit length 2^m-1.
func (c *Codec) N() int { return c.n }

// K returns the info bit length n-m.
func (c *Codec) K() int { return c.k }

// Syndrome computes the parity-check syndrome of a full n-bit codeword:
// the XOR, over every set bit, of that bit's table value.
func (c *Codec) Syndrome(word *bitstream.BitString) int {
	syn := 0
	for i := 0; i < c.n; i++ {
		if word.Bit(i) != 0 {
			syn ^= c.indexToSyndrome[i]
		}
	}
	return syn
}

// Encode builds the n-bit codeword for the given k-bit info word and
// m-bit deviation. When dev is all zero the result is the error-free
// systematic codeword info||parity; otherwise it differs from that
// codeword in exactly the one bit pos_of(dev).
func (c *Codec) Encode(info, dev *bitstream.BitString) (*bitstream.BitString, error) {
	if info.Len() != c.k {
		return nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("hamming: info length %d, want %d", info.Len(), c.k))
	}
	if dev.Len() != c.degree {
		return nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("hamming: deviation length %d, want %d", dev.Len(), c.degree))
	}

	syn := 0
	for i := 0; i < c.k; i++ {
		if info.Bit(i) != 0 {
			syn ^= c.indexToSyndrome[i]
		}
	}
	parity := bitstream.FromUint(uint64(syn), c.degree)
	word := info.Concat(parity)

	devVal := dev.Uint()
	if devVal != 0 {
		pos, ok := c.posOf(int(devVal))
		if !ok {
			return nil, gderr.New(gderr.InvalidFrame, fmt.Sprintf("hamming: deviation %d has no error position", devVal))
		}
		word.FlipBit(pos)
	}
	return word, nil
}

// Decode splits an n-bit codeword into its k-bit base and m-bit
// deviation, correcting a single bit error first when the syndrome is
// non-zero.
func (c *Codec) Decode(word *bitstream.BitString) (base, dev *bitstream.BitString, err error) {
	if word.Len() != c.n {
		return nil, nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("hamming: word length %d, want %d", word.Len(), c.n))
	}

	syn := c.Syndrome(word)
	corrected := word.Slice(0, c.n)
	if syn != 0 {
		pos, ok := c.posOf(syn)
		if !ok {
			return nil, nil, gderr.New(gderr.InvalidFrame, fmt.Sprintf("hamming: syndrome %d has no error position", syn))
		}
		corrected.FlipBit(pos)
	}

	base = corrected.Slice(0, c.k)
	dev = bitstream.FromUint(uint64(syn), c.degree)
	return base, dev, nil
}

func (c *Codec) posOf(syn int) (int, bool) {
	if syn <= 0 || syn >= len(c.syndromeToIndex) {
		return 0, false
	}
	pos := c.syndromeToIndex[syn]
	return pos, pos >= 0
}
