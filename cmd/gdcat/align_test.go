package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAlignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "align.txt")
	content := "# identity-ish fixture\n0102\n0304\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rows, err := loadAlignment(path)
	if err != nil {
		t.Fatalf("loadAlignment returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != 0x01 || rows[0][1] != 0x02 {
		t.Fatalf("unexpected row 0: %x", rows[0])
	}
	if rows[1][0] != 0x03 || rows[1][1] != 0x04 {
		t.Fatalf("unexpected row 1: %x", rows[1])
	}
}

func TestLoadAlignmentBadHex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "align.txt")
	if err := os.WriteFile(path, []byte("zz\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadAlignment(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadAlignmentMissingFile(t *testing.T) {
	if _, err := loadAlignment(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected open error")
	}
}
