package baseline

import (
	"bufio"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/tabs/pkg/errors"
)

const versionSuffix = "_version"

// ExportsStore reads a generated shell script of
//
//	export foo_version="1.2.3"
//
// declarations. It is read-only.
type ExportsStore struct {
	Path string
}

// NewExportsStore returns a store for the script at path.
func NewExportsStore(path string) *ExportsStore {
	return &ExportsStore{Path: path}
}

// Load parses the script. Lines that are not NAME_version assignments are
// ignored.
func (s *ExportsStore) Load(ctx context.Context) (Baseline, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open exports")
	}
	defer f.Close()
	return ReadExports(f)
}

// ReadExports parses export declarations from r.
func ReadExports(r io.Reader) (Baseline, error) {
	b := Baseline{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if name, ok := versionKey(key); ok {
			b[name] = unquote(val)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read exports")
	}
	return b, nil
}

// Save always fails: the script is maintained elsewhere.
func (s *ExportsStore) Save(context.Context, Baseline) error {
	return errors.New(errors.ErrCodeReadOnly, "%s is a read-only baseline", s.Path)
}

// EnvStore reads NAME_version variables from the environment. It is
// read-only.
type EnvStore struct {
	environ func() []string
}

// NewEnvStore returns a store over the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{environ: os.Environ}
}

// Load collects every NAME_version variable.
func (s *EnvStore) Load(ctx context.Context) (Baseline, error) {
	b := Baseline{}
	for _, kv := range s.environ() {
		key, val, _ := strings.Cut(kv, "=")
		if name, ok := versionKey(key); ok {
			b[name] = val
		}
	}
	return b, nil
}

// Save always fails: the environment is maintained elsewhere.
func (s *EnvStore) Save(context.Context, Baseline) error {
	return errors.New(errors.ErrCodeReadOnly, "environment baseline is read-only")
}

func versionKey(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if len(key) <= len(versionSuffix) || !strings.EqualFold(key[len(key)-len(versionSuffix):], versionSuffix) {
		return "", false
	}
	return key[:len(key)-len(versionSuffix)], true
}

func unquote(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return v[1 : len(v)-1]
	}
	if s, err := strconv.Unquote(v); err == nil {
		return s
	}
	return v
}

func (*ExportsStore) identifierKeys() {}
func (*EnvStore) identifierKeys()     {}

var (
	_ identifierKeyed = (*ExportsStore)(nil)
	_ identifierKeyed = (*EnvStore)(nil)
	_ Store           = (*ExportsStore)(nil)
	_ Store           = (*EnvStore)(nil)
)
