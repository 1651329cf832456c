// Package rcfile handles afd.toml interpreter configuration.
package rcfile

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Name is the config file name that Find looks for.
const Name = "afd.toml"

// Config adjusts an interpreter session without recompiling: banner and
// prompt text plus storage limits.
type Config struct {
	Banner          bool   `toml:"banner"`
	PromptOK        string `toml:"prompt-ok"`
	PromptCompiling string `toml:"prompt-compiling"`
	Limits          Limits `toml:"limits"`

	// Path is where the config was loaded from (set at load time).
	Path string `toml:"-"`
}

// Limits sizes the interpreter's fixed storage.
type Limits struct {
	Stack      int `toml:"stack"`
	Dictionary int `toml:"dictionary"`
	Arena      int `toml:"arena"`
	Line       int `toml:"line"`
	Word       int `toml:"word"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Banner:          true,
		PromptOK:        "ok> ",
		PromptCompiling: ": ",
		Limits: Limits{
			Stack:      64,
			Dictionary: 32,
			Arena:      1024,
			Line:       1024,
			Word:       64,
		},
	}
}

// Load parses one config file.  Fields not present keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	if err := cfg.Limits.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}

	cfg.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve path %s", path)
	}
	return cfg, nil
}

// Find walks up from startDir looking for an afd.toml, loading the first
// one found.  Returns nil without error when there is none.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve path %s", startDir)
	}

	for {
		path := filepath.Join(dir, Name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// reached root
			return nil, nil
		}
		dir = parent
	}
}

// validate rejects limits the interpreter cannot run with.  The line limit
// needs one byte of content headroom beyond the reserved terminator slot.
func (l Limits) validate() error {
	for _, lim := range []struct {
		name string
		n    int
		min  int
	}{
		{"stack", l.Stack, 1},
		{"dictionary", l.Dictionary, 1},
		{"arena", l.Arena, 1},
		{"line", l.Line, 2},
		{"word", l.Word, 1},
	} {
		if lim.n < lim.min {
			return errors.Errorf("limits.%s must be at least %d", lim.name, lim.min)
		}
	}
	return nil
}
