package mks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClearReadOnly(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "lib")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	readOnly := []string{filepath.Join(root, "a.txt"), filepath.Join(dir, "b.txt")}
	for _, p := range readOnly {
		if err := os.WriteFile(p, []byte("x"), 0o444); err != nil {
			t.Fatal(err)
		}
	}
	writable := filepath.Join(root, "c.txt")
	if err := os.WriteFile(writable, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}

	cleared, err := ClearReadOnly(root)
	if err != nil {
		t.Fatalf("ClearReadOnly: %v", err)
	}
	if cleared != 3 {
		t.Fatalf("cleared = %d, expected 3", cleared)
	}
	for _, p := range append(readOnly, dir, writable) {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o200 == 0 {
			t.Fatalf("%s mode = %v, expected owner write", p, info.Mode())
		}
	}
}

func TestClearReadOnly_MissingRoot(t *testing.T) {
	if _, err := ClearReadOnly(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestClearReadOnly_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	file := filepath.Join(target, "a.c")
	if err := os.WriteFile(file, []byte("x"), 0o444); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(t.TempDir(), "sandbox")
	if err := os.Symlink(target, root); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cleared, err := ClearReadOnly(root)
	if err != nil {
		t.Fatalf("ClearReadOnly: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("cleared = %d, expected 1", cleared)
	}
	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o200 == 0 {
		t.Fatalf("mode = %v, expected owner write", info.Mode())
	}
}

func TestClearReadOnly_SkipsNestedSymlinks(t *testing.T) {
	outside := t.TempDir()
	file := filepath.Join(outside, "b.c")
	if err := os.WriteFile(file, []byte("x"), 0o444); err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	cleared, err := ClearReadOnly(root)
	if err != nil {
		t.Fatalf("ClearReadOnly: %v", err)
	}
	if cleared != 0 {
		t.Fatalf("cleared = %d, expected 0", cleared)
	}
	info, err := os.Stat(file)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o200 != 0 {
		t.Fatalf("file behind nested symlink was changed")
	}
	_ = os.Chmod(file, 0o644)
}
