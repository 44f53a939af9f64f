package selector

import (
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tabs/pkg/errors"
)

type rulesFile struct {
	ReplaceDefaults bool `toml:"replace_defaults"`
	Rule            []struct {
		Name    string `toml:"name"`
		Pattern string `toml:"pattern"`
		Query   string `toml:"query"`
	} `toml:"rule"`
}

// Read decodes a TOML rules document and layers it over base.
// If the document sets replace_defaults, base is ignored.
func Read(r io.Reader, base *Table) (*Table, error) {
	var f rulesFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode rules")
	}

	rules := make([]Rule, 0, len(f.Rule))
	for i, fr := range f.Rule {
		name := fr.Name
		if name == "" {
			name = "rule-" + strconv.Itoa(i+1)
		}
		rule, err := Compile(name, fr.Pattern, fr.Query)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if f.ReplaceDefaults || base == nil {
		return NewTable(rules...), nil
	}
	return base.With(rules...), nil
}

// LoadFile reads the rules file at path and layers it over base.
func LoadFile(path string, base *Table) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open rules %s", path)
	}
	defer f.Close()
	return Read(f, base)
}
