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

// Package gf256 implements arithmetic over the Galois field GF(2^8)
// reduced by the polynomial x^8+x^4+x^3+x^2+1 (0x11D), generator α=2.
//
// Addition is XOR. Multiplication, division and exponentiation go
// through precomputed log/exp tables, the same construction used by
// Reed-Solomon implementations for QR codes and erasure coding alike.
package gf256

// Poly is the reducing polynomial for the field: x^8+x^4+x^3+x^2+1.
const Poly = 0x11D

// Generator is the multiplicative generator α used to build the tables.
const Generator = 2

// log[0] is unused (log of zero is undefined); exp has 255 entries so
// that exp[(a+b) mod 255] never needs a second modular reduction when a
// and b are themselves already in [0,255).
var (
	logTable [256]byte
	expTable [255]byte
)

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = byte(x)
		logTable[x] = byte(i)
		x = mulNoTable(x, Generator)
	}
}

// mulNoTable multiplies two field elements the long way, by carry-less
// (XOR) multiplication followed by reduction modulo Poly. It exists only
// to seed the log/exp tables during init.
func mulNoTable(x, y int) int {
	z := 0
	for y > 0 {
		if y&1 != 0 {
			z ^= x
		}
		y >>= 1
		x <<= 1
		if x&0x100 != 0 {
			x ^= Poly
		}
	}
	return z
}

// Add returns x+y in GF(2^8), which is XOR.
func Add(x, y byte) byte { return x ^ y }

// Sub is identical to Add: subtraction and addition coincide in
// characteristic 2.
func Sub(x, y byte) byte { return x ^ y }

// Mul returns x*y in GF(2^8).
func Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	sum := int(logTable[x]) + int(logTable[y])
	if sum >= 255 {
		sum -= 255
	}
	return expTable[sum]
}

// Div returns x/y in GF(2^8). It panics if y is zero, including for
// x=0 (y is checked first); Div(0, y) is 0 for any non-zero y.
func Div(x, y byte) byte {
	if y == 0 {
		panic("gf256: division by zero")
	}
	if x == 0 {
		return 0
	}
	diff := 255 + int(logTable[x]) - int(logTable[y])
	diff %= 255
	return expTable[diff]
}

// Inverse returns the multiplicative inverse of x. It panics if x is
// zero, which has no inverse.
func Inverse(x byte) byte {
	if x == 0 {
		panic("gf256: inverse of zero")
	}
	return expTable[(255-int(logTable[x]))%255]
}

// Pow returns x^e for any integer exponent e, including negative ones,
// handled via the log/exp tables. Pow(0, e) is 0 for e>0 and panics for
// e<=0 (0^0 and negative powers of zero are undefined here).
func Pow(x byte, e int) byte {
	if x == 0 {
		if e > 0 {
			return 0
		}
		panic("gf256: non-positive power of zero")
	}
	l := int(logTable[x])
	var exp int
	if e >= 0 {
		exp = (l * e) % 255
	} else {
		absE := -e % 255
		exp = ((255 - absE) * l) % 255
	}
	if exp < 0 {
		exp += 255
	}
	return expTable[exp]
}

// Log returns the discrete logarithm of x base Generator. It panics for
// x=0.
func Log(x byte) byte {
	if x == 0 {
		panic("gf256: log of zero")
	}
	return logTable[x]
}

// Exp returns Generator^e for e in [0,255).
func Exp(e int) byte {
	return expTable[e%255]
}
