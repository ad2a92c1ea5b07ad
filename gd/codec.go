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

package gd

import (
	"fmt"

	"github.com/xtaci/gd/bitstream"
	"github.com/xtaci/gd/gderr"
	"github.com/xtaci/gd/hamming"
	"github.com/xtaci/gd/rs"
)

// codec unifies the byte-unit (RS) and bit-unit (Hamming) ECC families
// behind one shape the engine can chunk, dedup and repack without
// knowing which algebra backs it. Mirrors how libecc's gd_byte_unit.rs
// and gd_bit_unit.rs both implement the same GDTrait despite operating
// on bytes and bits respectively.
type codec interface {
	// chunkByteLen is the number of input/output bytes per chunk.
	chunkByteLen() int
	// infoBitLen is the wire width, in bits, of an as-is base field.
	infoBitLen() int
	// devBitLen is the wire width, in bits, of a deviation field.
	devBitLen() int
	// decodeChunk splits one input chunk into its base and deviation.
	decodeChunk(chunk []byte) (base, dev *bitstream.BitString, err error)
	// encodeChunk rebuilds one output chunk from a base and deviation.
	encodeChunk(base, dev *bitstream.BitString) ([]byte, error)
	// setErrorAlignment installs a precoding transform; unsupported by
	// Hamming.
	setErrorAlignment(rows [][]byte) error
}

type rsCodec struct {
	c *rs.Codec
}

func newRSCodec(n, k int) (*rsCodec, error) {
	c, err := rs.New(n, k)
	if err != nil {
		return nil, err
	}
	return &rsCodec{c: c}, nil
}

func (r *rsCodec) chunkByteLen() int { return r.c.N() }
func (r *rsCodec) infoBitLen() int   { return r.c.K() * 8 }
func (r *rsCodec) devBitLen() int    { return (r.c.N() - r.c.K()) * 8 }

func (r *rsCodec) decodeChunk(chunk []byte) (*bitstream.BitString, *bitstream.BitString, error) {
	base, dev, err := r.c.Decode(chunk)
	if err != nil {
		return nil, nil, err
	}
	return bitstream.FromBytes(base, len(base)*8), bitstream.FromBytes(dev, len(dev)*8), nil
}

func (r *rsCodec) encodeChunk(base, dev *bitstream.BitString) ([]byte, error) {
	baseBytes, _ := base.ToBytes()
	devBytes, _ := dev.ToBytes()
	return r.c.Encode(baseBytes, devBytes)
}

func (r *rsCodec) setErrorAlignment(rows [][]byte) error {
	return r.c.SetPrecoding(rows)
}

type hammingCodec struct {
	c            *hamming.Codec
	chunkBytelen int
}

func newHammingCodec(degree int) (*hammingCodec, error) {
	c, err := hamming.New(degree)
	if err != nil {
		return nil, err
	}
	chunkBytelen := c.N() / 8
	if chunkBytelen < 1 {
		return nil, gderr.New(gderr.InvalidParams, fmt.Sprintf("gd: hamming degree %d gives n=%d < 8, no byte chunk fits", degree, c.N()))
	}
	return &hammingCodec{c: c, chunkBytelen: chunkBytelen}, nil
}

func (h *hammingCodec) chunkByteLen() int { return h.chunkBytelen }
func (h *hammingCodec) infoBitLen() int   { return h.c.K() }
func (h *hammingCodec) devBitLen() int    { return h.c.Degree() }

// frameBits embeds a chunk_bytelen-byte payload as the low-order bits
// of an n-bit Msb0 frame, MSB-padding the high n-chunk_bytelen*8 bits
// with zeros as spec.md §4.6 requires.
func (h *hammingCodec) frameBits(chunk []byte) *bitstream.BitString {
	payloadBits := h.chunkBytelen * 8
	pad := h.c.N() - payloadBits
	zero := bitstream.NewBitString(pad)
	payload := bitstream.FromBytes(chunk, payloadBits)
	return zero.Concat(payload)
}

func (h *hammingCodec) decodeChunk(chunk []byte) (*bitstream.BitString, *bitstream.BitString, error) {
	word := h.frameBits(chunk)
	return h.c.Decode(word)
}

func (h *hammingCodec) encodeChunk(base, dev *bitstream.BitString) ([]byte, error) {
	word, err := h.c.Encode(base, dev)
	if err != nil {
		return nil, err
	}
	payloadBits := h.chunkBytelen * 8
	pad := h.c.N() - payloadBits
	payload := word.Slice(pad, word.Len())
	out, _ := payload.ToBytes()
	return out, nil
}

func (h *hammingCodec) setErrorAlignment(rows [][]byte) error {
	return gderr.New(gderr.InvalidParams, "gd: error alignment is an RS-only operation")
}
