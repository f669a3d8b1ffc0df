package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/chihaya/bencode"
)

// ConfigFile represents a namespaced YAML configuration file.
type ConfigFile struct {
	Bencode bencode.Limits `yaml:"bencode"`
}

// ParseConfigFile returns a new ConfigFile given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables.
func ParseConfigFile(path string) (*ConfigFile, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	cfgFile := ConfigFile{Bencode: bencode.DefaultLimits()}
	if err := yaml.Unmarshal(contents, &cfgFile); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	return &cfgFile, nil
}
