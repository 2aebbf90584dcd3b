// Package config loads jmespath.Options from a YAML file, the same
// strict-decode convention the teacher's pkg/testspec.Load uses for test
// fixtures, applied here to runtime configuration instead.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/perbu/jmespath"
)

// File is the on-disk shape of a runtime options file. Logger and
// FnDispatcher have no YAML representation and are left for the caller
// to set on the returned jmespath.Options after Load returns.
type File struct {
	MaxDepth  int `yaml:"max_depth"`
	CacheSize int `yaml:"cache_size"`
}

// Load reads and strictly decodes a single-document YAML options file
// (unlike testspec.Load, runtime config is never a multi-document
// stream, so Load reports an error on more than one document).
func Load(filename string) (jmespath.Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return jmespath.Options{}, fmt.Errorf("reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		return jmespath.Options{}, fmt.Errorf("parsing config file: %w", err)
	}
	var extra File
	if err := decoder.Decode(&extra); err == nil {
		return jmespath.Options{}, fmt.Errorf("config file %s: multiple documents not supported", filename)
	}

	return jmespath.Options{
		MaxDepth:  f.MaxDepth,
		CacheSize: f.CacheSize,
	}, nil
}
