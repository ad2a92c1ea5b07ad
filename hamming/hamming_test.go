package hamming

import (
	"testing"

	"github.com/xtaci/gd/bitstream"
	"github.com/xtaci/gd/gderr"
)

func TestDegree3ConcreteScenario(t *testing.T) {
	c, err := New(3)
	if err != nil {
		t.Fatalf("New(3): %v", err)
	}
	if c.N() != 7 || c.K() != 4 {
		t.Fatalf("N=%d K=%d, want 7,4", c.N(), c.K())
	}

	word := bitstream.FromUint(0b1011110, 7)
	base, dev, err := c.Decode(word)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if base.Uint() != 0b1001 || dev.Uint() != 0b110 {
		t.Fatalf("Decode(1011110) = base %04b dev %03b, want 1001 110", base.Uint(), dev.Uint())
	}

	info := bitstream.FromUint(0b1000, 4)
	zero := bitstream.FromUint(0b000, 3)
	cw, err := c.Encode(info, zero)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if cw.Uint() != 0b1000101 {
		t.Fatalf("Encode(1000,000) = %07b, want 1000101", cw.Uint())
	}

	dev2 := bitstream.FromUint(0b101, 3)
	cw2, err := c.Encode(info, dev2)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if cw2.Uint() != 0b0000101 {
		t.Fatalf("Encode(1000,101) = %07b, want 0000101", cw2.Uint())
	}
}

func TestEncodeDecodeRoundTripAllDegrees(t *testing.T) {
	for m := MinDegree; m <= MaxDegree; m++ {
		c, err := New(m)
		if err != nil {
			t.Fatalf("New(%d): %v", m, err)
		}
		k := c.K()
		for _, infoVal := range []uint64{0, 1, uint64(1<<uint(k)) - 1} {
			info := bitstream.FromUint(infoVal, k)
			for _, devVal := range []uint64{0, 1, uint64(1<<uint(m)) - 1} {
				dev := bitstream.FromUint(devVal, m)
				word, err := c.Encode(info, dev)
				if err != nil {
					t.Fatalf("m=%d Encode(%d,%d): %v", m, infoVal, devVal, err)
				}
				gotBase, gotDev, err := c.Decode(word)
				if err != nil {
					t.Fatalf("m=%d Decode: %v", m, err)
				}
				if !gotBase.Equal(info) {
					t.Fatalf("m=%d base round trip mismatch for info %d", m, infoVal)
				}
				if gotDev.Uint() != devVal {
					t.Fatalf("m=%d dev round trip: got %d want %d", m, gotDev.Uint(), devVal)
				}
			}
		}
	}
}

func TestNewInvalidDegree(t *testing.T) {
	if _, err := New(2); !gderr.Is(err, gderr.InvalidParams) {
		t.Fatalf("New(2): expected InvalidParams, got %v", err)
	}
	if _, err := New(11); !gderr.Is(err, gderr.InvalidParams) {
		t.Fatalf("New(11): expected InvalidParams, got %v", err)
	}
}

func TestEncodeLengthMismatch(t *testing.T) {
	c, _ := New(3)
	badInfo := bitstream.FromUint(0, 3)
	dev := bitstream.FromUint(0, 3)
	if _, err := c.Encode(badInfo, dev); !gderr.Is(err, gderr.LengthMismatch) {
		t.Fatalf("expected LengthMismatch for bad info, got %v", err)
	}

	info := bitstream.FromUint(0, 4)
	badDev := bitstream.FromUint(0, 2)
	if _, err := c.Encode(info, badDev); !gderr.Is(err, gderr.LengthMismatch) {
		t.Fatalf("expected LengthMismatch for bad dev, got %v", err)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	c, _ := New(3)
	badWord := bitstream.FromUint(0, 6)
	if _, _, err := c.Decode(badWord); !gderr.Is(err, gderr.LengthMismatch) {
		t.Fatalf("expected LengthMismatch, got %v", err)
	}
}

func TestNewCachesByDegree(t *testing.T) {
	a, _ := New(4)
	b, _ := New(4)
	if a != b {
		t.Fatalf("New(4) returned distinct instances, expected cached sharing")
	}
}

func BenchmarkHammingEncode(b *testing.B) {
	c, _ := New(8)
	info := bitstream.FromUint(0xAB, c.K())
	dev := bitstream.FromUint(3, c.Degree())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := c.Encode(info, dev); err != nil {
			b.Fatalf("Encode: %v", err)
		}
	}
}

func BenchmarkHammingDecode(b *testing.B) {
	c, _ := New(8)
	info := bitstream.FromUint(0xAB, c.K())
	dev := bitstream.FromUint(3, c.Degree())
	word, err := c.Encode(info, dev)
	if err != nil {
		b.Fatalf("Encode: %v", err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := c.Decode(word); err != nil {
			b.Fatalf("Decode: %v", err)
		}
	}
}

func BenchmarkNewHamming(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := New(9); err != nil {
			b.Fatalf("New: %v", err)
		}
	}
}
