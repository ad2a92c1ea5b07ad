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
	"bytes"
	"testing"
)

func benchmarkInput(chunkLen, repeats int) []byte {
	chunk := make([]byte, chunkLen)
	for i := range chunk {
		chunk[i] = byte(i)
	}
	return bytes.Repeat(chunk, repeats)
}

func BenchmarkDedupRSSequential(b *testing.B) {
	eng, err := NewRS(32, 16, 255)
	if err != nil {
		b.Fatalf("NewRS: %v", err)
	}
	eng.SetWorkers(1)
	data := benchmarkInput(32, 64)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := eng.Dedup(data); err != nil {
			b.Fatalf("Dedup: %v", err)
		}
	}
}

func BenchmarkDedupRSParallel(b *testing.B) {
	eng, err := NewRS(32, 16, 255)
	if err != nil {
		b.Fatalf("NewRS: %v", err)
	}
	data := benchmarkInput(32, 64)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := eng.Dedup(data); err != nil {
			b.Fatalf("Dedup: %v", err)
		}
	}
}

func BenchmarkDupRS(b *testing.B) {
	eng, err := NewRS(32, 16, 255)
	if err != nil {
		b.Fatalf("NewRS: %v", err)
	}
	data := benchmarkInput(32, 64)
	deduped, err := eng.Dedup(data)
	if err != nil {
		b.Fatalf("Dedup: %v", err)
	}

	dup, err := NewRS(32, 16, 255)
	if err != nil {
		b.Fatalf("NewRS: %v", err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := dup.Dup(deduped); err != nil {
			b.Fatalf("Dup: %v", err)
		}
	}
}

func BenchmarkDedupHamming(b *testing.B) {
	eng, err := NewHamming(8, 255)
	if err != nil {
		b.Fatalf("NewHamming: %v", err)
	}
	data := benchmarkInput(eng.ChunkByteLen(), 64)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		if _, err := eng.Dedup(data); err != nil {
			b.Fatalf("Dedup: %v", err)
		}
	}
}
