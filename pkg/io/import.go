package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/tracker"
)

// Format identifies a package list encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

type entry struct {
	Name     string `json:"name" toml:"name" yaml:"name"`
	URL      string `json:"url" toml:"url" yaml:"url"`
	Upstream string `json:"upstream" toml:"upstream" yaml:"upstream"`
	Selector string `json:"selector" toml:"selector" yaml:"selector"`
}

type tomlDoc struct {
	Package []entry `toml:"package"`
}

// ReadPackages decodes a package list from r.
func ReadPackages(r io.Reader, format Format) ([]tracker.Package, error) {
	var entries []entry
	var err error
	switch format {
	case FormatTOML:
		var doc tomlDoc
		_, err = toml.NewDecoder(r).Decode(&doc)
		entries = doc.Package
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&entries)
		if err == io.EOF {
			err = nil
		}
	default:
		err = json.NewDecoder(r).Decode(&entries)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s package list", format)
	}

	pkgs := make([]tracker.Package, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "package #%d has no name", i+1)
		}
		url := strings.TrimSpace(e.URL)
		if url == "" {
			url = strings.TrimSpace(e.Upstream)
		}
		pkgs = append(pkgs, tracker.Package{
			Name:     name,
			Upstream: url,
			Selector: strings.TrimSpace(e.Selector),
		})
	}
	return pkgs, nil
}

// ImportPackages reads the package list at path.
func ImportPackages(path string) ([]tracker.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open package list")
	}
	defer f.Close()

	pkgs, err := ReadPackages(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pkgs, nil
}
