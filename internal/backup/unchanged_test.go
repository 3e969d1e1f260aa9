package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsUnchanged_ExactCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "same content")
	writeFile(t, dst, "same content")

	mtime := time.Now().Add(-time.Hour)
	for _, p := range []string{src, dst} {
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	if !isUnchanged(src, dst, time.Second) {
		t.Error("exact copy with preserved mtime should be unchanged")
	}
}

func TestIsUnchanged_MissingDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	writeFile(t, src, "x")

	if isUnchanged(src, filepath.Join(dir, "missing.txt"), time.Second) {
		t.Error("missing destination should count as changed")
	}
}

func TestIsUnchanged_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, dst, "x")

	if isUnchanged(filepath.Join(dir, "missing.txt"), dst, time.Second) {
		t.Error("stat failure on source should count as changed")
	}
}

func TestIsUnchanged_SizeDiffersByOneByte(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "abcd")
	writeFile(t, dst, "abc")

	mtime := time.Now().Add(-time.Hour)
	for _, p := range []string{src, dst} {
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	if isUnchanged(src, dst, time.Second) {
		t.Error("one byte of size difference should count as changed")
	}
}

func TestIsUnchanged_MtimeTolerance(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		want  bool
	}{
		{"equal", 0, true},
		{"within", 500 * time.Millisecond, true},
		{"boundary", time.Second, true},
		{"beyond", time.Second + time.Millisecond, false},
		{"negative within", -800 * time.Millisecond, true},
		{"negative beyond", -2 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.txt")
			dst := filepath.Join(dir, "dst.txt")
			writeFile(t, src, "same")
			writeFile(t, dst, "same")

			base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
			if err := os.Chtimes(src, base, base); err != nil {
				t.Fatalf("Chtimes: %v", err)
			}
			if err := os.Chtimes(dst, base.Add(tt.delta), base.Add(tt.delta)); err != nil {
				t.Fatalf("Chtimes: %v", err)
			}

			if got := isUnchanged(src, dst, time.Second); got != tt.want {
				t.Errorf("isUnchanged with delta %v = %v, want %v", tt.delta, got, tt.want)
			}
		})
	}
}
