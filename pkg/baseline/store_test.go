package baseline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabs/pkg/errors"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "versions.txt")
	s := NewFileStore(path)

	b, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, b, "missing file should load as empty baseline")

	require.NoError(t, s.Save(ctx, Baseline{"zstd": "1.5.6", "bash": "5.2.21"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bash=5.2.21\nzstd=1.5.6\n", string(raw))

	b, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Baseline{"zstd": "1.5.6", "bash": "5.2.21"}, b)

	// Full overwrite.
	require.NoError(t, s.Save(ctx, Baseline{"bash": "5.3"}))
	b, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Baseline{"bash": "5.3"}, b)

	entries, _ := os.ReadDir(filepath.Dir(path))
	assert.Len(t, entries, 1, "temporary files left behind")
}

func TestReadLines(t *testing.T) {
	in := "bash=5.2.21\n\nbroken\na=b=c\n=1.0\n  zstd=1.5.6  \n"
	b, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Baseline{"bash": "5.2.21", "zstd": "1.5.6"}, b)
}

func TestFileStore_SaveIntoMissingDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "versions.txt"))
	err := s.Save(context.Background(), Baseline{"a": "1"})
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
}

func TestReadExports(t *testing.T) {
	in := `#!/bin/sh
# generated
export bash_version="5.2.21"
export xdg_utils_version='1.2.1'
export zstd_version=1.5.6
export PATH="/usr/bin"
export _version="orphan"
not an assignment
`
	b, err := ReadExports(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Baseline{"bash": "5.2.21", "xdg_utils": "1.2.1", "zstd": "1.5.6"}, b)
}

func TestExportsStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "versions.sh")
	require.NoError(t, os.WriteFile(path, []byte(`export foo_version="3.2.1"`+"\n"), 0o644))

	s := NewExportsStore(path)
	b, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Baseline{"foo": "3.2.1"}, b)

	err = s.Save(ctx, b)
	assert.True(t, errors.Is(err, errors.ErrCodeReadOnly))

	_, err = NewExportsStore(filepath.Join(t.TempDir(), "missing.sh")).Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestEnvStore(t *testing.T) {
	s := &EnvStore{environ: func() []string {
		return []string{"HOME=/root", "bash_version=5.2.21", "zstd_VERSION=1.5.6", "_version=x"}
	}}
	b, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Baseline{"bash": "5.2.21", "zstd": "1.5.6"}, b)
	assert.True(t, errors.Is(s.Save(context.Background(), b), errors.ErrCodeReadOnly))
}

func TestLoadFor(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	names := []string{"xdg-utils", "foo-bar", "bash"}

	exports := filepath.Join(dir, "versions.sh")
	require.NoError(t, os.WriteFile(exports, []byte("export xdg_utils_version='1.2.1'\nexport bash_version=5.2\n"), 0o644))
	versions := filepath.Join(dir, "versions.txt")
	require.NoError(t, os.WriteFile(versions, []byte("foo_bar=1.0\nxdg_utils=1.2.1\n"), 0o644))

	tests := []struct {
		name  string
		store Store
		want  Baseline
	}{
		{
			name:  "exports match identifier form",
			store: NewExportsStore(exports),
			want:  Baseline{"xdg_utils": "1.2.1", "xdg-utils": "1.2.1", "bash": "5.2"},
		},
		{
			name: "environment matches identifier form",
			store: &EnvStore{environ: func() []string {
				return []string{"foo_bar_VERSION=0.9"}
			}},
			want: Baseline{"foo_bar": "0.9", "foo-bar": "0.9"},
		},
		{
			name:  "file store keys by exact name",
			store: NewFileStore(versions),
			want:  Baseline{"foo_bar": "1.0", "xdg_utils": "1.2.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFor(ctx, tt.store, names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := LoadFor(ctx, NewExportsStore(filepath.Join(dir, "missing.sh")), names)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
