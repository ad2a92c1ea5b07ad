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

// Package bitstream provides a most-significant-bit-first bit string
// type along with a reader and writer, the packing substrate the GD
// chunker/packer and the dictionary's id encoding build on.
package bitstream

import "fmt"

// BitLen returns the number of bits needed to represent values in
// [0, n], i.e. ceil(log2(n+1)), the dictionary's id_bitlen formula.
// BitLen(0) is 1 (a single bit is still needed to encode the value 0).
func BitLen(n int) int {
	if n <= 0 {
		return 1
	}
	bits := 0
	for v := n; v > 0; v >>= 1 {
		bits++
	}
	return bits
}

// Writer accumulates bits MSB-first and exposes the packed byte stream.
// Mirrors the read side (Reader) bit for bit: WriteBits followed by
// ReadBits round-trips exactly.
type Writer struct {
	buf       []byte
	bitOffset int // next bit to write within buf[len(buf)-1], 0 means a fresh byte is needed
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBit appends a single bit (0 or 1, MSB-first within each byte).
func (w *Writer) WriteBit(bit byte) {
	if w.bitOffset == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit != 0 {
		w.buf[len(w.buf)-1] |= 1 << uint(7-w.bitOffset)
	}
	w.bitOffset++
	if w.bitOffset == 8 {
		w.bitOffset = 0
	}
}

// WriteBits writes the low n bits of v, MSB-first.
func (w *Writer) WriteBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(byte((v >> uint(i)) & 1))
	}
}

// WriteBitString writes every bit of bs in order.
func (w *Writer) WriteBitString(bs *BitString) {
	for i := 0; i < bs.Len(); i++ {
		w.WriteBit(bs.Bit(i))
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	if w.bitOffset == 0 {
		return len(w.buf) * 8
	}
	return (len(w.buf)-1)*8 + w.bitOffset
}

// PadBits returns how many zero bits would be appended by Bytes to reach
// a byte boundary (always in [0,7]).
func (w *Writer) PadBits() int {
	if w.bitOffset == 0 {
		return 0
	}
	return 8 - w.bitOffset
}

// Bytes returns the packed stream, zero-padded up to a byte boundary.
// The trailing pad is always strictly less than 8 bits, per spec's
// stricter stopping predicate (see the reader's Available semantics).
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Reader reads bits MSB-first from a byte slice. Adapted from the
// classic barcode-decoder BitSource pattern: consume any leftover bits
// in the current byte first, then whole bytes, then a final partial
// byte.
type Reader struct {
	bytes      []byte
	byteOffset int
	bitOffset  int
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{bytes: data}
}

// Available returns the number of bits that can still be read.
func (r *Reader) Available() int {
	return 8*(len(r.bytes)-r.byteOffset) - r.bitOffset
}

// ErrShortRead is returned when fewer bits remain than requested.
var ErrShortRead = fmt.Errorf("bitstream: short read")

// ReadBits reads numBits bits (1..64) and returns them as the
// least-significant bits of the result.
func (r *Reader) ReadBits(numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, fmt.Errorf("bitstream: invalid bit count %d", numBits)
	}
	if numBits == 0 {
		return 0, nil
	}
	if numBits > r.Available() {
		return 0, ErrShortRead
	}

	var result uint64

	if r.bitOffset > 0 {
		bitsLeft := 8 - r.bitOffset
		toRead := numBits
		if toRead > bitsLeft {
			toRead = bitsLeft
		}
		bitsToNotRead := bitsLeft - toRead
		mask := byte(0xFF>>uint(8-toRead)) << uint(bitsToNotRead)
		result = uint64((r.bytes[r.byteOffset] & mask) >> uint(bitsToNotRead))
		numBits -= toRead
		r.bitOffset += toRead
		if r.bitOffset == 8 {
			r.bitOffset = 0
			r.byteOffset++
		}
	}

	for numBits >= 8 {
		result = (result << 8) | uint64(r.bytes[r.byteOffset])
		r.byteOffset++
		numBits -= 8
	}

	if numBits > 0 {
		bitsToNotRead := 8 - numBits
		mask := byte(0xFF>>uint(bitsToNotRead)) << uint(bitsToNotRead)
		result = (result << uint(numBits)) | uint64((r.bytes[r.byteOffset]&mask)>>uint(bitsToNotRead))
		r.bitOffset += numBits
	}

	return result, nil
}

// ReadBitString reads n bits into a BitString.
func (r *Reader) ReadBitString(n int) (*BitString, error) {
	bs := NewBitString(n)
	for i := 0; i < n; i++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return nil, err
		}
		bs.SetBit(i, byte(bit))
	}
	return bs, nil
}

// BitString is a most-significant-bit-first sequence of bits whose
// length need not be a multiple of 8.
type BitString struct {
	bits []byte // one bit per byte slot, 0 or 1; simple and clear over a packed representation
	n    int
}

// NewBitString returns a zero-filled BitString of length n bits.
func NewBitString(n int) *BitString {
	return &BitString{bits: make([]byte, n), n: n}
}

// FromBytes builds a BitString of length n bits (n <= 8*len(data)) by
// reading the first n bits of data MSB-first.
func FromBytes(data []byte, n int) *BitString {
	bs := NewBitString(n)
	for i := 0; i < n; i++ {
		byteIdx := i / 8
		bitIdx := uint(7 - i%8)
		bs.bits[i] = (data[byteIdx] >> bitIdx) & 1
	}
	return bs
}

// FromUint builds a BitString of length n holding the low n bits of v,
// MSB-first.
func FromUint(v uint64, n int) *BitString {
	bs := NewBitString(n)
	for i := 0; i < n; i++ {
		bs.bits[i] = byte((v >> uint(n-1-i)) & 1)
	}
	return bs
}

// Len returns the number of bits.
func (bs *BitString) Len() int { return bs.n }

// Bit returns the bit at position i (0 = MSB).
func (bs *BitString) Bit(i int) byte { return bs.bits[i] }

// SetBit sets the bit at position i.
func (bs *BitString) SetBit(i int, v byte) { bs.bits[i] = v & 1 }

// Uint returns the value of the bit string interpreted as an unsigned
// integer, MSB-first. Panics if Len() > 64.
func (bs *BitString) Uint() uint64 {
	if bs.n > 64 {
		panic("bitstream: bit string too long to convert to uint64")
	}
	var v uint64
	for i := 0; i < bs.n; i++ {
		v = (v << 1) | uint64(bs.bits[i])
	}
	return v
}

// Concat returns a new BitString that is bs followed by other.
func (bs *BitString) Concat(other *BitString) *BitString {
	out := NewBitString(bs.n + other.n)
	copy(out.bits, bs.bits)
	copy(out.bits[bs.n:], other.bits)
	return out
}

// Slice returns the bits in [start, end) as a new BitString.
func (bs *BitString) Slice(start, end int) *BitString {
	out := NewBitString(end - start)
	copy(out.bits, bs.bits[start:end])
	return out
}

// Equal reports whether bs and other hold the same bits.
func (bs *BitString) Equal(other *BitString) bool {
	if bs.n != other.n {
		return false
	}
	for i := range bs.bits {
		if bs.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// FlipBit flips the bit at position i.
func (bs *BitString) FlipBit(i int) {
	bs.bits[i] ^= 1
}

// ToBytes packs the bit string into bytes, MSB-first, zero-padding the
// final byte if Len() is not a multiple of 8. It returns the packed
// bytes and the number of pad bits appended (0..7).
func (bs *BitString) ToBytes() ([]byte, int) {
	nbytes := (bs.n + 7) / 8
	out := make([]byte, nbytes)
	for i := 0; i < bs.n; i++ {
		if bs.bits[i] != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	pad := nbytes*8 - bs.n
	return out, pad
}
