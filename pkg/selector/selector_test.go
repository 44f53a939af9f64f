package selector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabs/pkg/errors"
)

func TestResolve_Defaults(t *testing.T) {
	tests := []struct {
		url  string
		rule string
	}{
		{"https://github.com/neovim/neovim/tags", "github-tags"},
		{"https://GitHub.com/neovim/neovim/releases", "github-releases"},
		{"https://gitlab.com/inkscape/inkscape/-/tags", "gitlab-tags"},
		{"https://codeberg.org/dnkl/foot/tags", "codeberg-tags"},
		{"https://sourceforge.net/projects/zsh/files/zsh/", "sourceforge"},
		{"https://pypi.org/project/requests/", "pypi"},
		{"https://download.savannah.gnu.org/releases/acl/", "savannah"},
		{"https://ftp.gnu.org/gnu/bash/?C=M;O=D", "mtime-listing"},
		{"https://archlinux.org/packages/core/x86_64/glibc/", "archlinux"},
		{"https://repology.org/project/zstd/versions", "repology"},
	}

	table := Default()
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			r, ok := table.Match(tt.url)
			require.True(t, ok, "no rule matched %s", tt.url)
			assert.Equal(t, tt.rule, r.Name)

			q, err := table.Resolve(tt.url, "")
			require.NoError(t, err)
			assert.Equal(t, r.Query, q)
		})
	}
}

func TestDefaults_MutuallyExclusive(t *testing.T) {
	urls := []string{
		"https://github.com/neovim/neovim/tags",
		"https://github.com/neovim/neovim/releases",
		"https://pypi.org/project/requests/",
		"https://gitlab.com/inkscape/inkscape/-/tags",
		"https://codeberg.org/dnkl/foot/tags",
		"https://sourceforge.net/projects/zsh/files/zsh/",
		"https://download.savannah.gnu.org/releases/acl/",
		"https://ftp.gnu.org/gnu/bash/?C=M;O=D",
		"https://download.savannah.gnu.org/releases/acl/?C=M;O=D",
		"https://archlinux.org/packages/core/x86_64/glibc/",
		"https://repology.org/project/zstd/versions",
	}
	for _, u := range urls {
		n := 0
		for _, r := range Default().Rules() {
			if r.Pattern.MatchString(u) {
				n++
			}
		}
		assert.Equal(t, 1, n, "%s matched %d rules", u, n)
	}
}

func TestResolve_OverrideWins(t *testing.T) {
	q, err := Default().Resolve("https://pypi.org/project/requests/", "h1.custom")
	require.NoError(t, err)
	assert.Equal(t, "h1.custom", q)

	// Overrides are not validated at this stage.
	q, err = Default().Resolve("https://nowhere.invalid/", ">>>")
	require.NoError(t, err)
	assert.Equal(t, ">>>", q)
}

func TestResolve_NoSelector(t *testing.T) {
	_, err := Default().Resolve("https://example.org/downloads", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeNoSelector))
}

func TestTable_FirstMatchWins(t *testing.T) {
	table := NewTable(
		MustCompile("first", `example\.org`, "a.first"),
		MustCompile("second", `example\.org/tags`, "a.second"),
	)
	q, err := table.Resolve("https://example.org/tags", "")
	require.NoError(t, err)
	assert.Equal(t, "a.first", q)
}

func TestTable_WithDoesNotMutate(t *testing.T) {
	base := NewTable(MustCompile("a", `a\.org`, "x"))
	ext := base.With(MustCompile("b", `b\.org`, "y"))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, ext.Len())
	assert.Equal(t, "b", ext.Rules()[0].Name)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile("bad", `(`, "a")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = Compile("empty", `x`, "  ")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestRead(t *testing.T) {
	doc := `
[[rule]]
name = "example"
pattern = 'example\.org/tags'
query = "li.tag > a"

[[rule]]
pattern = 'example\.net'
query = "h1"
`
	table, err := Read(strings.NewReader(doc), Default())
	require.NoError(t, err)
	assert.Equal(t, Default().Len()+2, table.Len())

	rules := table.Rules()
	assert.Equal(t, "example", rules[0].Name)
	assert.Equal(t, "rule-2", rules[1].Name)

	q, err := table.Resolve("https://EXAMPLE.org/tags", "")
	require.NoError(t, err)
	assert.Equal(t, "li.tag > a", q)

	// Defaults still apply after the file rules.
	_, ok := table.Match("https://pypi.org/project/requests/")
	assert.True(t, ok)
}

func TestRead_ReplaceDefaults(t *testing.T) {
	doc := `
replace_defaults = true

[[rule]]
name = "only"
pattern = 'example\.org'
query = "h1"
`
	table, err := Read(strings.NewReader(doc), Default())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = table.Resolve("https://pypi.org/project/requests/", "")
	assert.True(t, errors.Is(err, errors.ErrCodeNoSelector))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[rule]]\nname = \"x\"\npattern = 'x\\.org'\nquery = \"h2\"\n"), 0o644))

	table, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[rule]]\npattern = '('\nquery = \"h2\"\n"), 0o644))
	_, err = LoadFile(bad, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestLoadFile_Example(t *testing.T) {
	table, err := LoadFile(filepath.Join("..", "..", "examples", "rules.toml"), Default())
	require.NoError(t, err)

	r, ok := table.Match("https://dl.suckless.org/st/")
	require.True(t, ok)
	assert.Equal(t, "suckless", r.Name)
}
