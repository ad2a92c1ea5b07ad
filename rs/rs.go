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

// Package rs implements the Reed-Solomon over GF(2^8) algebra layer:
// a systematic generator built from a Vandermonde matrix, exact
// encode/decode of (base, deviation) byte pairs, and an optional
// precoding/postcoding transform for error alignment, per spec.md §4.4.
package rs

import (
	"fmt"

	"github.com/xtaci/gd/gderr"
	"github.com/xtaci/gd/gf256"
	"github.com/xtaci/gd/matrix"
)

// Codec is an RS(n,k) codec: n total symbols, k info symbols, symbol
// width 8 bits. Not safe for concurrent SetPrecoding calls; Encode and
// Decode are read-only and safe to call concurrently once set up.
type Codec struct {
	n, k int
	p    *matrix.Matrix // k x (n-k) parity block

	t, tinv *matrix.Matrix // optional n x n precoding pair
}

// New builds the RS(n,k) systematic generator G = V_left^-1 * V from a
// Vandermonde matrix V (k rows, n cols), then keeps only its parity
// block P (the right n-k columns); the left k columns are always the
// identity by construction, so base symbols are reproduced verbatim.
func New(n, k int) (*Codec, error) {
	if !(0 < k && k < n && n < 256) {
		return nil, gderr.New(gderr.InvalidParams, fmt.Sprintf("rs: constraints 0<k<n<256 violated (n=%d,k=%d)", n, k))
	}

	v := matrix.Vandermonde(k, n)
	vLeftInv, err := matrix.InverseLeftSubmatrix(v)
	if err != nil {
		return nil, gderr.Wrap(gderr.SingularMatrix, err, "rs: vandermonde left block not invertible")
	}
	g := vLeftInv.Multiply(v)
	p := g.ColBlock(k, n-k)

	return &Codec{n: n, k: k, p: p}, nil
}

// N returns the codeword length.
func (c *Codec) N() int { return c.n }

// K returns the info symbol count.
func (c *Codec) K() int { return c.k }

// SetPrecoding installs a square error-alignment transform: rows must
// supply exactly n rows of n bytes. The left-inverse T^-1 is computed
// and cached; Encode applies T^-1 as postcoding, Decode applies T as
// precoding. Passing rows=nil clears any previously installed
// transform.
func (c *Codec) SetPrecoding(rows [][]byte) error {
	if rows == nil {
		c.t, c.tinv = nil, nil
		return nil
	}
	if len(rows) != c.n {
		return gderr.New(gderr.InvalidParams, fmt.Sprintf("rs: precoding row count %d, want %d", len(rows), c.n))
	}
	t := matrix.New(c.n, c.n)
	for i, row := range rows {
		if len(row) != c.n {
			return gderr.New(gderr.InvalidParams, fmt.Sprintf("rs: precoding row %d has length %d, want %d", i, len(row), c.n))
		}
		copy(t.Row(i), row)
	}

	tinv, err := matrix.InverseLeftSubmatrix(t)
	if err != nil {
		return gderr.Wrap(gderr.SingularMatrix, err, "rs: precoding matrix is singular")
	}

	c.t, c.tinv = t, tinv
	return nil
}

// Encode computes the systematic codeword for base (k bytes) and
// deviation (n-k bytes): parity = base*P, word = base‖(parity+deviation).
// When a precoding transform is installed, the postcoding T^-1 is
// applied to the whole word before it is returned.
func (c *Codec) Encode(base, deviation []byte) ([]byte, error) {
	if len(base) != c.k {
		return nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("rs: base length %d, want %d", len(base), c.k))
	}
	if len(deviation) != c.n-c.k {
		return nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("rs: deviation length %d, want %d", len(deviation), c.n-c.k))
	}

	parity := matrix.MulRowVector(base, c.p)
	word := make([]byte, c.n)
	copy(word, base)
	for i, p := range parity {
		word[c.k+i] = gf256.Add(p, deviation[i])
	}

	if c.tinv != nil {
		word = matrix.MulColVector(c.tinv, word)
	}
	return word, nil
}

// Decode splits an n-byte codeword into its k-byte base and (n-k)-byte
// deviation. When a precoding transform is installed, T is applied
// first to undo it.
func (c *Codec) Decode(word []byte) (base, deviation []byte, err error) {
	if len(word) != c.n {
		return nil, nil, gderr.New(gderr.LengthMismatch, fmt.Sprintf("rs: word length %d, want %d", len(word), c.n))
	}

	y := word
	if c.t != nil {
		y = matrix.MulColVector(c.t, word)
	}

	base = make([]byte, c.k)
	copy(base, y[:c.k])

	noiseFreeParity := matrix.MulRowVector(base, c.p)
	deviation = make([]byte, c.n-c.k)
	for i, p := range noiseFreeParity {
		deviation[i] = gf256.Add(y[c.k+i], p)
	}
	return base, deviation, nil
}
