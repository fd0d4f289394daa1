package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommit(t *testing.T) {
	dir := t.TempDir()

	b := NewBundle()
	if err := b.Add("report.txt", []byte("hello\n")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Add("chart.png", []byte{0x89, 'P', 'N', 'G'}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := b.Commit(dir); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil || string(data) != "hello\n" {
		t.Errorf("Expected report.txt = hello, got %q (%v)", data, err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("Temporary file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 files, got %d", len(entries))
	}
}

func TestCommitOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBundle()
	b.Add("report.txt", []byte("new"))
	if err := b.Commit(dir); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("Expected overwritten contents, got %q", data)
	}
}

func TestCommitAllOrNothing(t *testing.T) {
	dir := t.TempDir()

	// A regular file where a directory is needed makes the second stage fail.
	if err := os.WriteFile(filepath.Join(dir, "blocked"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBundle()
	b.Add("report.txt", []byte("hello"))
	b.Add(filepath.Join("blocked", "chart.png"), []byte("png"))

	if err := b.Commit(dir); err == nil {
		t.Fatal("Expected commit to fail")
	}

	if _, err := os.Stat(filepath.Join(dir, "report.txt")); !os.IsNotExist(err) {
		t.Errorf("Expected report.txt not to be written, stat err = %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the blocking file to remain, got %d entries", len(entries))
	}
}

func TestAddDuplicate(t *testing.T) {
	b := NewBundle()
	b.Add("a.txt", nil)
	if err := b.Add("a.txt", nil); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}
	if names := b.Names(); len(names) != 1 || names[0] != "a.txt" {
		t.Errorf("Unexpected names %v", names)
	}
}
