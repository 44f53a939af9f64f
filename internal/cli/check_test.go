package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/tabs/pkg/errors"
)

// upstream serves a handful of release pages.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/foo/tags", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<ul><li class="tag"><a>Foo v3.2.1.tar.gz</a></li></ul>`)
	})
	router.Get("/bar", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<h1>bar-2.0</h1>`)
	})
	router.Get("/baz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<h1>baz 1.4</h1>`)
	})
	router.Get("/gone", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// workspace writes a package list and baseline into a temp dir and makes
// it the working directory.
func workspace(t *testing.T, srvURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	pkgs := fmt.Sprintf(`[
  {"name": "foo", "url": "%[1]s/foo/tags", "selector": "li.tag > a"},
  {"name": "bar", "url": "%[1]s/bar", "selector": "h1"},
  {"name": "baz", "url": "%[1]s/baz", "selector": "h1"},
  {"name": "gone", "url": "%[1]s/gone", "selector": "h1"},
  {"name": "empty"}
]`, srvURL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tabs.json"), []byte(pkgs), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "versions.txt"),
		[]byte("foo=3.1.0\nbaz=1.4\ngone=1.0\nremoved=0.1\n"), 0o644))
	return dir
}

func TestCheck(t *testing.T) {
	srv := upstream(t)
	dir := workspace(t, srv.URL)

	stdout, stderr, err := executeSplit(t, "check", "--attempts", "2", "--delay", "1ms", "--json", "report.json")
	require.NoError(t, err, "per-package failures must not fail the command")

	assert.Contains(t, stdout, "3.1.0 -> 3.2.1")
	assert.Contains(t, stdout, "2.0 (new)")
	assert.Contains(t, stdout, "= 1.4")
	assert.Contains(t, stderr, "gone")
	assert.Contains(t, stderr, "empty")
	assert.NotContains(t, stdout, "gone")

	data, err := os.ReadFile(filepath.Join(dir, "versions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bar=2.0\nbaz=1.4\nfoo=3.2.1\n", string(data), "only resolved packages are written back")

	var rep struct {
		RunID    string `json:"run_id"`
		Packages []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Code   string `json:"code"`
		} `json:"packages"`
	}
	raw, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.NotEmpty(t, rep.RunID)
	require.Len(t, rep.Packages, 5)
	assert.Equal(t, "changed", rep.Packages[0].Status)
	assert.Equal(t, "new", rep.Packages[1].Status)
	assert.Equal(t, "unchanged", rep.Packages[2].Status)
	assert.Equal(t, string(errors.ErrCodeGenericFailure), rep.Packages[3].Code)
	assert.Equal(t, string(errors.ErrCodeEmptyUpstream), rep.Packages[4].Code)
}

func TestCheck_DryRun(t *testing.T) {
	srv := upstream(t)
	dir := workspace(t, srv.URL)

	stdout, _, err := executeSplit(t, "check", "--dry-run", "--attempts", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dry run")

	data, err := os.ReadFile(filepath.Join(dir, "versions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "foo=3.1.0\nbaz=1.4\ngone=1.0\nremoved=0.1\n", string(data))
}

func TestCheck_Interrupted(t *testing.T) {
	srv := upstream(t)
	dir := workspace(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := executeContext(t, ctx, "check", "--attempts", "2", "--delay", "1ms", "--json", "report.json")
	require.ErrorIs(t, err, context.Canceled)

	data, err := os.ReadFile(filepath.Join(dir, "versions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "foo=3.1.0\nbaz=1.4\ngone=1.0\nremoved=0.1\n", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "report.json"))
}

func TestCheck_MissingPackageList(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := executeSplit(t, "check")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
}

func TestCheck_PackagesFromEnv(t *testing.T) {
	srv := upstream(t)
	dir := workspace(t, srv.URL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"),
		[]byte(fmt.Sprintf("- name: bar\n  url: %s/bar\n  selector: h1\n", srv.URL)), 0o644))
	t.Setenv("TABS_PACKAGES", "one.yaml")
	t.Setenv("TABS_BASELINE", "one.txt")

	stdout, _, err := executeSplit(t, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bar")
	assert.NotContains(t, stdout, "foo")

	data, err := os.ReadFile(filepath.Join(dir, "one.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bar=2.0\n", string(data))
}

func TestCompare(t *testing.T) {
	srv := upstream(t)
	dir := workspace(t, srv.URL)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "versions.sh"),
		[]byte("export foo_version=\"3.2.1\"\nexport bar_version='1.9'\n"), 0o644))

	stdout, _, err := executeSplit(t, "compare", "versions.sh", "--attempts", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "= 3.2.1")
	assert.Contains(t, stdout, "1.9 -> 2.0")
	assert.Contains(t, stdout, "tabs check")

	data, err := os.ReadFile(filepath.Join(dir, "versions.txt"))
	require.NoError(t, err)
	assert.Equal(t, "foo=3.1.0\nbaz=1.4\ngone=1.0\nremoved=0.1\n", string(data), "compare must not write")
}

func TestCompare_Environment(t *testing.T) {
	srv := upstream(t)
	workspace(t, srv.URL)
	t.Setenv("baz_VERSION", "1.3")

	stdout, _, err := executeSplit(t, "compare", "--attempts", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.3 -> 1.4")
}

func TestSelectors(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := executeSplit(t, "selectors")
	require.NoError(t, err)
	assert.Contains(t, stdout, "github-tags")
	assert.Contains(t, stdout, "repology")

	stdout, _, err = executeSplit(t, "selectors", "https://pypi.org/project/requests/")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pypi")
	assert.Contains(t, stdout, ".package-header__name")

	_, _, err = executeSplit(t, "selectors", "https://example.org/downloads")
	assert.True(t, errors.Is(err, errors.ErrCodeNoSelector))
}

func TestSelectors_RulesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules.toml"),
		[]byte("[[rule]]\nname = \"example\"\npattern = 'example\\.org/downloads'\nquery = \"h2\"\n"), 0o644))

	stdout, _, err := executeSplit(t, "selectors", "--rules", "rules.toml", "https://example.org/downloads")
	require.NoError(t, err)
	assert.Contains(t, stdout, "example")
	assert.Contains(t, stdout, "h2")
}
