// Package config loads deadmock's environment file: a YAML document with
// one block per named environment, selected at startup by the DMENV
// environment variable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artpar/deadmock/util"
)

// EnvVar is the environment variable naming which block of the config
// file to load.
const EnvVar = "DMENV"

// DefaultEnv is used when EnvVar is unset.
const DefaultEnv = "local"

// Environment is one named block of env.yaml.
type Environment struct {
	IP    string `yaml:"ip"`
	Port  int    `yaml:"port"`
	Level string `yaml:"level"`
}

// Addr resolves the listen address for this environment, substituting
// deadmock's packaged defaults for whichever field is unset.
func (e Environment) Addr() string {
	return util.ResolveAddr(e.IP, e.Port)
}

// file is the on-disk shape of env.yaml: an open map of environment name
// to block, so operators can add environments without a code change.
type file map[string]Environment

// Load reads path and returns the block selected by the DMENV environment
// variable (or DefaultEnv if unset). A missing file or a missing block is
// not an error: the zero Environment resolves to deadmock's built-in
// defaults via Addr.
func Load(path string) (Environment, error) {
	name := os.Getenv(EnvVar)
	if name == "" {
		name = DefaultEnv
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Environment{}, nil
		}
		return Environment{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Environment{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	env, ok := f[name]
	if !ok {
		return Environment{}, nil
	}
	return env, nil
}
