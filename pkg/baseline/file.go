package baseline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/tabs/pkg/errors"
)

// FileStore persists a baseline as name=version lines.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the file. A missing file is an empty baseline; lines that do
// not split into exactly one name and one version are ignored.
func (s *FileStore) Load(ctx context.Context) (Baseline, error) {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return Baseline{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open baseline")
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines parses name=version lines.
func ReadLines(r io.Reader) (Baseline, error) {
	b := Baseline{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Split(strings.TrimSpace(sc.Text()), "=")
		if len(parts) != 2 || parts[0] == "" {
			continue
		}
		b[parts[0]] = parts[1]
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read baseline")
	}
	return b, nil
}

// Save replaces the file with b, sorted by name. The new content is written
// to a temporary file first so an interrupted run leaves the old baseline
// intact.
func (s *FileStore) Save(ctx context.Context, b Baseline) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".baseline-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write baseline")
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, name := range slices.Sorted(maps.Keys(b)) {
		fmt.Fprintf(w, "%s=%s\n", name, b[name])
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write baseline")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write baseline")
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace baseline")
	}
	return nil
}

var _ Store = (*FileStore)(nil)
