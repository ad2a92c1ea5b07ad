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

// Package gd ties the algebra (gf256, matrix, hamming, rs), the
// dictionary and the bit-packed wire format together into the GD
// engine's dedup/dup pair, per spec.md §4.6-4.7.
package gd

import (
	"sync"
	"sync/atomic"

	"github.com/xtaci/gd/bitstream"
	"github.com/xtaci/gd/dict"
	"github.com/xtaci/gd/gderr"
)

// DefaultWorkers bounds per-chunk ECC fan-out. Generalizes the two-way
// sync.WaitGroup pipe in std/copy.go to an N-way worker pool: each
// chunk's decode/encode is pure and referentially transparent, so
// dispatching them concurrently is safe and the dictionary/packer walk
// the results back in submission order afterward.
const DefaultWorkers = 8

// Deduped is the output of Dedup / input of Dup: a bit-packed frame
// stream plus the out-of-band last-chunk pad length from spec.md §6.
type Deduped struct {
	Data                []byte
	LastChunkPadByteLen int
}

// Engine is one direction (dedup or dup) of a GD pipeline instance. A
// sender and receiver pair must be constructed with identical ECC
// params and dictionary capacity and must start from equally empty
// dictionaries for dup(dedup(x)) = x to hold.
type Engine struct {
	codec   codec
	dict    *dict.Dict
	workers int

	dedupCalls      uint64
	dupCalls        uint64
	chunksProcessed uint64
	dictHits        uint64
	dictMisses      uint64
	bytesIn         uint64
	bytesOut        uint64
}

func newEngine(c codec, capacity int) (*Engine, error) {
	d, err := dict.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Engine{codec: c, dict: d, workers: DefaultWorkers}, nil
}

// NewRS builds a GD engine over an RS(n,k) codec with the given
// dictionary capacity.
func NewRS(n, k, capacity int) (*Engine, error) {
	c, err := newRSCodec(n, k)
	if err != nil {
		return nil, err
	}
	return newEngine(c, capacity)
}

// NewHamming builds a GD engine over a Hamming(degree) codec with the
// given dictionary capacity. degree must leave room for at least one
// whole payload byte (n = 2^degree-1 >= 8).
func NewHamming(degree, capacity int) (*Engine, error) {
	c, err := newHammingCodec(degree)
	if err != nil {
		return nil, err
	}
	return newEngine(c, capacity)
}

// SetErrorAlignment installs a precoding transform (RS only); it fails
// with InvalidParams for a Hamming-backed engine.
func (e *Engine) SetErrorAlignment(rows [][]byte) error {
	return e.codec.setErrorAlignment(rows)
}

// ChunkByteLen returns the fixed chunk size both ends must agree on.
func (e *Engine) ChunkByteLen() int { return e.codec.chunkByteLen() }

// SetWorkers overrides the fan-out width; w <= 1 disables parallelism.
func (e *Engine) SetWorkers(w int) {
	if w < 1 {
		w = 1
	}
	e.workers = w
}

type chunkDecoded struct {
	base, dev *bitstream.BitString
	err       error
}

// fanOutDecode decodes every chunk, optionally in parallel, then
// returns results in submission order so the sequential dictionary
// walk afterward is deterministic.
func (e *Engine) fanOutDecode(chunks [][]byte) []chunkDecoded {
	results := make([]chunkDecoded, len(chunks))
	decodeOne := func(i int) {
		base, dev, err := e.codec.decodeChunk(chunks[i])
		results[i] = chunkDecoded{base, dev, err}
	}

	if e.workers <= 1 || len(chunks) <= 1 {
		for i := range chunks {
			decodeOne(i)
		}
		return results
	}

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i := range chunks {
		i := i
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			decodeOne(i)
		}()
	}
	wg.Wait()
	return results
}

type pendingChunk struct {
	base, dev *bitstream.BitString
}

type chunkEncoded struct {
	word []byte
	err  error
}

func (e *Engine) fanOutEncode(items []pendingChunk) []chunkEncoded {
	results := make([]chunkEncoded, len(items))
	encodeOne := func(i int) {
		word, err := e.codec.encodeChunk(items[i].base, items[i].dev)
		results[i] = chunkEncoded{word, err}
	}

	if e.workers <= 1 || len(items) <= 1 {
		for i := range items {
			encodeOne(i)
		}
		return results
	}

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	wg.Add(len(items))
	for i := range items {
		i := i
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			encodeOne(i)
		}()
	}
	wg.Wait()
	return results
}

// splitChunks breaks buf into fixed chunkLen-byte chunks, left-padding
// the final chunk with zeros per spec.md §4.6, and returns the pad
// byte count alongside.
func splitChunks(buf []byte, chunkLen int) ([][]byte, int) {
	residue := len(buf) % chunkLen
	var chunkNum, pad int
	if residue == 0 {
		chunkNum = len(buf) / chunkLen
	} else {
		chunkNum = len(buf)/chunkLen + 1
		pad = chunkLen - residue
	}

	chunks := make([][]byte, chunkNum)
	for i := 0; i < chunkNum; i++ {
		start := chunkLen * i
		if i == chunkNum-1 && residue > 0 {
			c := make([]byte, chunkLen)
			copy(c[pad:], buf[start:])
			chunks[i] = c
			continue
		}
		chunks[i] = buf[start : start+chunkLen]
	}
	return chunks, pad
}

// Dedup decomposes buf into (base, deviation) pairs via the ECC, routes
// each base through the dictionary, and bit-packs the result per
// spec.md §4.6. The dictionary walk is strictly sequential; only the
// ECC decode step is fanned out.
func (e *Engine) Dedup(buf []byte) (*Deduped, error) {
	atomic.AddUint64(&e.dedupCalls, 1)
	atomic.AddUint64(&e.bytesIn, uint64(len(buf)))

	chunks, pad := splitChunks(buf, e.codec.chunkByteLen())
	decoded := e.fanOutDecode(chunks)

	w := bitstream.NewWriter()
	for _, r := range decoded {
		if r.err != nil {
			return nil, r.err
		}
		atomic.AddUint64(&e.chunksProcessed, 1)

		baseBytes, _ := r.base.ToBytes()
		var sep byte
		var idOrBase *bitstream.BitString
		if id, ok := e.dict.GetID(baseBytes); ok {
			atomic.AddUint64(&e.dictHits, 1)
			sep = 1
			idOrBase = bitstream.FromUint(uint64(id), e.dict.IDBitlen())
		} else {
			atomic.AddUint64(&e.dictMisses, 1)
			e.dict.PutBase(baseBytes)
			sep = 0
			idOrBase = r.base
		}

		w.WriteBit(sep)
		w.WriteBitString(idOrBase)
		w.WriteBitString(r.dev)
	}

	out := w.Bytes()
	atomic.AddUint64(&e.bytesOut, uint64(len(out)))
	return &Deduped{Data: out, LastChunkPadByteLen: pad}, nil
}

// maxFramePadBits is the largest trailing zero-pad Dedup can append to
// byte-align its output (spec.md §4.6).
const maxFramePadBits = 7

// Dup is the inverse of Dedup: it parses the separator-framed bit
// stream, advancing the dictionary in lock-step with the sender (every
// as-is separator triggers a put_base before its deviation is read),
// then fans out ECC re-encoding and reassembles the original bytes.
func (e *Engine) Dup(d *Deduped) ([]byte, error) {
	atomic.AddUint64(&e.dupCalls, 1)
	atomic.AddUint64(&e.bytesIn, uint64(len(d.Data)))

	r := bitstream.NewReader(d.Data)
	idBitlen := e.dict.IDBitlen()
	infoBitlen := e.codec.infoBitLen()
	devBitlen := e.codec.devBitLen()

	var pendings []pendingChunk
	for r.Available() > maxFramePadBits {
		sep, err := r.ReadBits(1)
		if err != nil {
			return nil, gderr.Wrap(gderr.InvalidFrame, err, "gd: reading separator bit")
		}

		var base *bitstream.BitString
		if sep == 0 {
			base, err = r.ReadBitString(infoBitlen)
			if err != nil {
				return nil, gderr.Wrap(gderr.InvalidFrame, err, "gd: reading as-is base")
			}
			baseBytes, _ := base.ToBytes()
			e.dict.PutBase(baseBytes)
			atomic.AddUint64(&e.dictMisses, 1)
		} else {
			idBits, err := r.ReadBitString(idBitlen)
			if err != nil {
				return nil, gderr.Wrap(gderr.InvalidFrame, err, "gd: reading dictionary id")
			}
			id := int(idBits.Uint())
			baseBytes, err := e.dict.GetBase(id)
			if err != nil {
				return nil, err
			}
			base = bitstream.FromBytes(baseBytes, infoBitlen)
			atomic.AddUint64(&e.dictHits, 1)
		}

		dev, err := r.ReadBitString(devBitlen)
		if err != nil {
			return nil, gderr.Wrap(gderr.InvalidFrame, err, "gd: reading deviation")
		}
		pendings = append(pendings, pendingChunk{base: base, dev: dev})
		atomic.AddUint64(&e.chunksProcessed, 1)
	}

	encoded := e.fanOutEncode(pendings)
	var out []byte
	for i, enc := range encoded {
		if enc.err != nil {
			return nil, enc.err
		}
		chunk := enc.word
		if i == len(encoded)-1 {
			chunk = chunk[d.LastChunkPadByteLen:]
		}
		out = append(out, chunk...)
	}

	atomic.AddUint64(&e.bytesOut, uint64(len(out)))
	return out, nil
}
