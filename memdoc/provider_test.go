package memdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aligndiff/aligndiff/compare"
)

func TestNewPairImplementsTextProvider(t *testing.T) {
	p := NewPair("a.txt", [][]byte{[]byte("one"), []byte("two")}, "b.txt", [][]byte{[]byte("one")})
	if p.LineCount(compare.MainView) != 2 {
		t.Fatalf("main line count = %d, want 2", p.LineCount(compare.MainView))
	}
	if p.LineCount(compare.SubView) != 1 {
		t.Fatalf("sub line count = %d, want 1", p.LineCount(compare.SubView))
	}
	if string(p.LineBytes(compare.MainView, 1)) != "two" {
		t.Errorf("main line 1 = %q, want %q", p.LineBytes(compare.MainView, 1), "two")
	}
	if p.Name(compare.MainView) != "a.txt" || p.Name(compare.SubView) != "b.txt" {
		t.Errorf("Name() = %q/%q, want a.txt/b.txt", p.Name(compare.MainView), p.Name(compare.SubView))
	}
}

func TestLoadPairSplitsLinesFromDisk(t *testing.T) {
	dir := t.TempDir()
	path1 := filepath.Join(dir, "left.txt")
	path2 := filepath.Join(dir, "right.txt")
	if err := os.WriteFile(path1, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path2, []byte("alpha\ngamma\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pair, err := LoadPair(path1, path2)
	if err != nil {
		t.Fatalf("LoadPair: %v", err)
	}
	if pair.LineCount(compare.MainView) != 3 {
		t.Fatalf("main line count = %d, want 3", pair.LineCount(compare.MainView))
	}
	if pair.LineCount(compare.SubView) != 2 {
		t.Fatalf("sub line count = %d, want 2", pair.LineCount(compare.SubView))
	}
	if string(pair.LineBytes(compare.MainView, 1)) != "beta" {
		t.Errorf("main line 1 = %q, want %q", pair.LineBytes(compare.MainView, 1), "beta")
	}
}
