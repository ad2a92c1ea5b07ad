package gf256

import "testing"

func allNonZero() []byte {
	vals := make([]byte, 0, 255)
	for i := 1; i < 256; i++ {
		vals = append(vals, byte(i))
	}
	return vals
}

func TestExpLogRoundTrip(t *testing.T) {
	for _, x := range allNonZero() {
		if got := Exp(int(Log(x))); got != x {
			t.Fatalf("Exp(Log(%d)) = %d, want %d", x, got, x)
		}
	}
}

func TestAddIsXorAndSelfInverse(t *testing.T) {
	for x := 0; x < 256; x++ {
		if Add(byte(x), byte(x)) != 0 {
			t.Fatalf("x+x != 0 for x=%d", x)
		}
	}
}

func TestMulCommutativeAndAssociative(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for b := 0; b < 256; b += 23 {
			if Mul(byte(a), byte(b)) != Mul(byte(b), byte(a)) {
				t.Fatalf("mul not commutative for %d,%d", a, b)
			}
		}
	}
	for a := 1; a < 256; a += 13 {
		for b := 1; b < 256; b += 19 {
			for c := 1; c < 256; c += 29 {
				lhs := Mul(Mul(byte(a), byte(b)), byte(c))
				rhs := Mul(byte(a), Mul(byte(b), byte(c)))
				if lhs != rhs {
					t.Fatalf("mul not associative for %d,%d,%d", a, b, c)
				}
			}
		}
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	for a := 1; a < 256; a += 11 {
		for b := 0; b < 256; b += 17 {
			for c := 0; c < 256; c += 19 {
				lhs := Mul(byte(a), Add(byte(b), byte(c)))
				rhs := Add(Mul(byte(a), byte(b)), Mul(byte(a), byte(c)))
				if lhs != rhs {
					t.Fatalf("distributivity failed for %d,%d,%d", a, b, c)
				}
			}
		}
	}
}

func TestInverse(t *testing.T) {
	for _, x := range allNonZero() {
		if Mul(x, Inverse(x)) != 1 {
			t.Fatalf("x * x^-1 != 1 for x=%d", x)
		}
	}
}

func TestDivByItselfIsOne(t *testing.T) {
	for _, x := range allNonZero() {
		if Div(x, x) != 1 {
			t.Fatalf("x/x != 1 for x=%d", x)
		}
	}
	if Div(0, 1) != 0 {
		t.Fatalf("0/1 != 0")
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic dividing by zero")
		}
	}()
	Div(5, 0)
}

func TestPowAddsExponents(t *testing.T) {
	for _, x := range allNonZero() {
		for e := -4; e <= 4; e++ {
			for f := -4; f <= 4; f++ {
				lhs := Pow(x, e+f)
				rhs := Mul(Pow(x, e), Pow(x, f))
				if lhs != rhs {
					t.Fatalf("x=%d e=%d f=%d: Pow(x,e+f)=%d, Pow(x,e)*Pow(x,f)=%d", x, e, f, lhs, rhs)
				}
			}
		}
	}
}

func TestPowZeroExponent(t *testing.T) {
	for _, x := range allNonZero() {
		if Pow(x, 0) != 1 {
			t.Fatalf("Pow(%d,0) != 1", x)
		}
	}
}

func TestPowOfZero(t *testing.T) {
	if Pow(0, 3) != 0 {
		t.Fatalf("Pow(0,3) != 0")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for Pow(0,0)")
		}
	}()
	Pow(0, 0)
}
