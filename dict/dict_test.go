package dict

import (
	"bytes"
	"testing"

	"github.com/xtaci/gd/gderr"
)

func TestLRUEvictionScenario(t *testing.T) {
	d, err := New(3)
	if err != nil {
		t.Fatalf("New(3): %v", err)
	}

	a, b, c := []byte("A"), []byte("B"), []byte("C")
	idA := d.PutBase(a)
	idB := d.PutBase(b)
	idC := d.PutBase(c)
	if idA == idB || idB == idC || idA == idC {
		t.Fatalf("expected distinct ids, got %d %d %d", idA, idB, idC)
	}

	if gotID, ok := d.GetID(a); !ok || gotID != idA {
		t.Fatalf("GetID(A) = %d,%v want %d,true", gotID, ok, idA)
	}

	dBytes := []byte("D")
	idD := d.PutBase(dBytes)
	if idD != idB {
		t.Fatalf("D should reuse B's evicted id %d, got %d", idB, idD)
	}

	if gotID, ok := d.GetID(a); !ok || gotID != idA {
		t.Fatalf("get_id(A) after eviction = %d,%v want %d,true", gotID, ok, idA)
	}
	if _, ok := d.GetID(b); ok {
		t.Fatalf("get_id(B) should be a miss after eviction")
	}
}

func TestGetIDMissDoesNotMutate(t *testing.T) {
	d, _ := New(2)
	d.PutBase([]byte("X"))
	before := d.Len()
	if _, ok := d.GetID([]byte("nope")); ok {
		t.Fatalf("expected miss")
	}
	if d.Len() != before {
		t.Fatalf("miss mutated dictionary: len %d -> %d", before, d.Len())
	}
}

func TestGetBasePromotesToMRUAndRoundTrips(t *testing.T) {
	d, _ := New(2)
	idA := d.PutBase([]byte("A"))
	d.PutBase([]byte("B"))

	got, err := d.GetBase(idA)
	if err != nil {
		t.Fatalf("GetBase: %v", err)
	}
	if !bytes.Equal(got, []byte("A")) {
		t.Fatalf("GetBase(idA) = %q, want A", got)
	}

	// A was just promoted to MRU by GetBase, so inserting C should evict B.
	idC := d.PutBase([]byte("C"))
	if _, err := d.GetBase(idC); err != nil {
		t.Fatalf("GetBase(idC): %v", err)
	}
	if _, err := d.GetBase(idA); err != nil {
		t.Fatalf("A should still be present after promotion: %v", err)
	}
}

func TestGetBaseUnknownIDFails(t *testing.T) {
	d, _ := New(2)
	if _, err := d.GetBase(0); !gderr.Is(err, gderr.InvalidDictionary) {
		t.Fatalf("expected InvalidDictionary, got %v", err)
	}
}

func TestIDBitlenMatchesBitLenFormula(t *testing.T) {
	cases := []struct {
		capacity int
		want     int
	}{
		{1, 1},
		{3, 2},
		{255, 8},
		{511, 9},
	}
	for _, c := range cases {
		d, err := New(c.capacity)
		if err != nil {
			t.Fatalf("New(%d): %v", c.capacity, err)
		}
		if d.IDBitlen() != c.want {
			t.Fatalf("capacity=%d: IDBitlen()=%d, want %d", c.capacity, d.IDBitlen(), c.want)
		}
	}
}

func TestNewZeroCapacityFails(t *testing.T) {
	if _, err := New(0); !gderr.Is(err, gderr.InvalidParams) {
		t.Fatalf("expected InvalidParams, got %v", err)
	}
}

func TestIDsStayWithinRange(t *testing.T) {
	d, _ := New(4)
	seen := map[int]bool{}
	for i := 0; i < 20; i++ {
		base := []byte{byte(i)}
		id := d.PutBase(base)
		if id < 0 || id >= 4 {
			t.Fatalf("id %d out of range [0,4)", id)
		}
		seen[id] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected all 4 ids to be used, got %d", len(seen))
	}
}
