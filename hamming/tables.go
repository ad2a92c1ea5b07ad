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

package hamming

// primitivePoly holds the standard primitive polynomial for each
// supported Hamming code degree m, used to build the cyclic syndrome
// tables. Each value is the polynomial's bit pattern including its
// degree-m leading term (e.g. m=3's x^3+x+1 is 0b1011).
var primitivePoly = map[int]int{
	3:  0x0B, // x^3+x+1
	4:  0x13, // x^4+x+1
	5:  0x25, // x^5+x^2+1
	6:  0x43, // x^6+x+1
	7:  0x89, // x^7+x^3+1
	8:  0x11D, // x^8+x^4+x^3+x^2+1
	9:  0x211, // x^9+x^4+1
	10: 0x409, // x^10+x^3+1
}

// buildSyndromeSequence returns seq where seq[p] = x^p mod primitivePoly,
// for p in [0, n), computed as a GF(2) polynomial LFSR: successive
// powers of x are produced by shifting left and reducing by poly
// whenever the result overflows the degree-m field.
func buildSyndromeSequence(m, n int) []int {
	poly := primitivePoly[m]
	seq := make([]int, n)
	val := 1
	for p := 0; p < n; p++ {
		seq[p] = val
		val <<= 1
		if val&(1<<uint(m)) != 0 {
			val ^= poly
		}
	}
	return seq
}

// indexToSyndrome and syndromeToIndex build the two precomputed tables
// from §4.3: indexToSyndrome[i] is the syndrome contributed by a
// single set bit at MSB-first codeword index i; syndromeToIndex[s] is
// the unique index whose bit must flip to explain syndrome s.
//
// Codeword index i corresponds to cyclic error position p = n-1-i
// (x^0 is the last transmitted bit), so indexToSyndrome[i] = seq[n-1-i].
func buildTables(m int) (indexToSyndrome []int, syndromeToIndex []int) {
	n := (1 << uint(m)) - 1
	seq := buildSyndromeSequence(m, n)

	indexToSyndrome = make([]int, n)
	syndromeToIndex = make([]int, 1<<uint(m))
	for i := range syndromeToIndex {
		syndromeToIndex[i] = -1
	}

	for i := 0; i < n; i++ {
		s := seq[n-1-i]
		indexToSyndrome[i] = s
		syndromeToIndex[s] = i
	}
	return indexToSyndrome, syndromeToIndex
}
