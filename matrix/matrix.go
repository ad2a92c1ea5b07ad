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

// Package matrix implements fixed-width vector arithmetic and
// row-echelon matrix inversion over GF(2^8), the linear-algebra
// substrate the Reed-Solomon codec builds its generator matrix on.
package matrix

import (
	"fmt"

	"github.com/xtaci/gd/gf256"
)

// Matrix is a dense row-major matrix over GF(2^8).
type Matrix struct {
	Rows, Cols int
	data       [][]byte
}

// New allocates a zero Matrix with the given dimensions.
func New(rows, cols int) *Matrix {
	m := &Matrix{Rows: rows, Cols: cols, data: make([][]byte, rows)}
	for i := range m.data {
		m.data[i] = make([]byte, cols)
	}
	return m
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) byte { return m.data[row][col] }

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v byte) { m.data[row][col] = v }

// Row returns the backing slice for a row; mutating it mutates m.
func (m *Matrix) Row(row int) []byte { return m.data[row] }

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = 1
	}
	return m
}

// Vandermonde builds the rows x cols matrix V with V[i][j] = alpha^(i*j)
// over GF(2^8), the generator the Reed-Solomon codec systematicizes.
func Vandermonde(rows, cols int) *Matrix {
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == 0 {
				m.data[i][j] = 1
				continue
			}
			m.data[i][j] = gf256.Pow(gf256.Generator, i*j)
		}
	}
	return m
}

// Submatrix returns the rows x cols block starting at (0,0).
func (m *Matrix) Submatrix(rows, cols int) *Matrix {
	out := New(rows, cols)
	for i := 0; i < rows; i++ {
		copy(out.data[i], m.data[i][:cols])
	}
	return out
}

// rightBlock returns the rows x cols block starting at column offset.
func (m *Matrix) rightBlock(offset, cols int) *Matrix {
	out := New(m.Rows, cols)
	for i := 0; i < m.Rows; i++ {
		copy(out.data[i], m.data[i][offset:offset+cols])
	}
	return out
}

// ColBlock returns the m.Rows x cols block starting at column offset,
// exported for callers outside this package (e.g. rs extracting the
// parity block from a systematic generator).
func (m *Matrix) ColBlock(offset, cols int) *Matrix {
	return m.rightBlock(offset, cols)
}

// MulColVector returns m*v for a column vector v (len(v) = m.Cols),
// yielding a column vector of length m.Rows. Used for applying a
// precoding matrix T (or T-inverse) to a full codeword.
func MulColVector(m *Matrix, v []byte) []byte {
	if len(v) != m.Cols {
		panic(fmt.Sprintf("matrix: vector length %d, want %d", len(v), m.Cols))
	}
	out := make([]byte, m.Rows)
	for i := 0; i < m.Rows; i++ {
		row := m.data[i]
		var acc byte
		for j, rij := range row {
			if rij == 0 || v[j] == 0 {
				continue
			}
			acc = gf256.Add(acc, gf256.Mul(rij, v[j]))
		}
		out[i] = acc
	}
	return out
}

// MulRowVector returns v*m for a 1xN row vector v (N = m.Rows),
// yielding a 1xM row vector (M = m.Cols). This is the "base · P"
// product the Reed-Solomon codec needs without wrapping every vector
// in a 1-row Matrix.
func MulRowVector(v []byte, m *Matrix) []byte {
	if len(v) != m.Rows {
		panic(fmt.Sprintf("matrix: vector length %d, want %d", len(v), m.Rows))
	}
	out := make([]byte, m.Cols)
	for k, vk := range v {
		if vk == 0 {
			continue
		}
		row := m.data[k]
		for j, mj := range row {
			if mj == 0 {
				continue
			}
			out[j] = gf256.Add(out[j], gf256.Mul(vk, mj))
		}
	}
	return out
}

// Multiply returns a*b. It panics if the inner dimensions disagree.
func (a *Matrix) Multiply(b *Matrix) *Matrix {
	if a.Cols != b.Rows {
		panic(fmt.Sprintf("matrix: dimension mismatch %dx%d * %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	out := New(a.Rows, b.Cols)
	for i := 0; i < a.Rows; i++ {
		for k := 0; k < a.Cols; k++ {
			aik := a.data[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.Cols; j++ {
				out.data[i][j] = gf256.Add(out.data[i][j], gf256.Mul(aik, b.data[k][j]))
			}
		}
	}
	return out
}

// ErrSingular is returned by InverseLeftSubmatrix when no non-zero pivot
// can be found for some column.
var ErrSingular = fmt.Errorf("matrix: singular matrix")

// InverseLeftSubmatrix returns M such that M*A = [I | *], where A's left
// r x r block (r = A.Rows) is treated as the square matrix to invert.
// When that left block is non-singular, the returned matrix is exactly
// its inverse. It fails with ErrSingular when no non-zero pivot can be
// found for some row during elimination.
//
// The algorithm augments A with the identity, does forward elimination
// (normalizing pivots and clearing below, swapping with a row below
// whenever the current pivot is zero), then backward elimination
// (clearing above). Every pivot is 1 after the forward phase, so the
// backward phase does no row swaps.
func InverseLeftSubmatrix(a *Matrix) (*Matrix, error) {
	r := a.Rows
	aug := New(r, a.Cols+r)
	for i := 0; i < r; i++ {
		copy(aug.data[i], a.data[i])
		aug.data[i][a.Cols+i] = 1
	}

	// forward elimination
	for col := 0; col < r; col++ {
		if aug.data[col][col] == 0 {
			swapped := false
			for below := col + 1; below < r; below++ {
				if aug.data[below][col] != 0 {
					aug.data[col], aug.data[below] = aug.data[below], aug.data[col]
					swapped = true
					break
				}
			}
			if !swapped {
				return nil, ErrSingular
			}
		}

		pivot := aug.data[col][col]
		if pivot != 1 {
			invPivot := gf256.Inverse(pivot)
			row := aug.data[col]
			for j := range row {
				row[j] = gf256.Mul(row[j], invPivot)
			}
		}

		for below := col + 1; below < r; below++ {
			factor := aug.data[below][col]
			if factor == 0 {
				continue
			}
			rowAbove, rowBelow := aug.data[col], aug.data[below]
			for j := range rowBelow {
				rowBelow[j] = gf256.Add(rowBelow[j], gf256.Mul(factor, rowAbove[j]))
			}
		}
	}

	// backward elimination
	for col := r - 1; col >= 0; col-- {
		for above := col - 1; above >= 0; above-- {
			factor := aug.data[above][col]
			if factor == 0 {
				continue
			}
			rowPivot, rowAbove := aug.data[col], aug.data[above]
			for j := range rowAbove {
				rowAbove[j] = gf256.Add(rowAbove[j], gf256.Mul(factor, rowPivot[j]))
			}
		}
	}

	return aug.rightBlock(a.Cols, r), nil
}
