// Package output writes a set of files so that either all of them land or
// none of them do.
package output

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrDuplicateName is returned when a name is added to a bundle twice.
var ErrDuplicateName = errors.New("output: duplicate file name")

type file struct {
	name string
	data []byte
}

// Bundle collects named payloads for a single commit.
type Bundle struct {
	files []file
	seen  map[string]bool
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{seen: make(map[string]bool)}
}

// Add stages data under name, a path relative to the commit directory.
func (b *Bundle) Add(name string, data []byte) error {
	if b.seen[name] {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	b.seen[name] = true
	b.files = append(b.files, file{name: name, data: data})
	return nil
}

// Names returns the staged names in the order they were added.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.files))
	for i, f := range b.files {
		names[i] = f.name
	}
	return names
}

// Commit writes every staged file into dir.
//
// Each payload is first written, synced and closed as a temporary file next
// to its destination. Only when all temporaries exist are they renamed into
// place; on any earlier failure the temporaries are removed and no
// destination is touched.
func (b *Bundle) Commit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output: create %s: %w", dir, err)
	}

	temps := make([]string, 0, len(b.files))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range b.files {
		tmp, err := writeTemp(filepath.Join(dir, f.name), f.data)
		if err != nil {
			cleanup()
			return fmt.Errorf("output: stage %s: %w", f.name, err)
		}
		temps = append(temps, tmp)
	}

	for i, f := range b.files {
		dst := filepath.Join(dir, f.name)
		if err := os.Rename(temps[i], dst); err != nil {
			// Files renamed so far stay; the rest are discarded.
			temps = temps[i:]
			cleanup()
			return fmt.Errorf("output: commit %s: %w", f.name, err)
		}
		slog.Debug("output: wrote file", "path", dst, "bytes", len(f.data))
	}
	return nil
}

func writeTemp(dst string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return "", err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}
