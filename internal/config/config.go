package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/gerrit-cli/internal/alias"
)

// DefaultPath is where the configuration file lives unless told otherwise.
const DefaultPath = "~/.gerrit-cli/gerrit-cli.json"

const (
	DefaultHost = "review.openstack.org"
	DefaultPort = 29418
)

// Config is the effective configuration for one run.
type Config struct {
	Host   string `json:"host" yaml:"host" toml:"host"`
	Port   int    `json:"port" yaml:"port" toml:"port"`
	User   string `json:"user,omitempty" yaml:"user" toml:"user"`
	DryRun bool   `json:"dry-run" yaml:"dry-run" toml:"dry-run"`

	Queries alias.Table `json:"queries,omitempty" yaml:"queries" toml:"queries"`
	Results alias.Table `json:"results,omitempty" yaml:"results" toml:"results"`
}

// Overrides holds values set on the command line. Zero values are ignored.
type Overrides struct {
	Host   string
	Port   int
	DryRun bool
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// A missing file is only an error when the path was given explicitly.
func Load(path string, explicit bool, overrides Overrides) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			fileCfg = Config{}
		} else {
			return Config{}, err
		}
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

// LoadFile reads and decodes a configuration file.
func LoadFile(path string) (Config, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Decode(resolved, StripComments(data))
	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", resolved, err)
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}

var commentLine = regexp.MustCompile(`^\s*#`)

// StripComments drops every line whose first non-blank character is '#'.
func StripComments(data []byte) []byte {
	lines := bytes.SplitAfter(data, []byte("\n"))
	out := make([]byte, 0, len(data))
	for _, line := range lines {
		if commentLine.Match(line) {
			continue
		}
		out = append(out, line...)
	}
	return out
}

// Decode parses data according to the file extension of name: .toml files
// use TOML, .json files JSON, everything else YAML.
func Decode(name string, data []byte) (Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
	case ".json":
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port > 0 {
		dst.Port = src.Port
	}
	if src.User != "" {
		dst.User = src.User
	}
	dst.DryRun = dst.DryRun || src.DryRun
	if src.Queries != nil {
		dst.Queries = src.Queries
	}
	if src.Results != nil {
		dst.Results = src.Results
	}
}

func mergeEnv(cfg *Config) error {
	if v := os.Getenv("GERRIT_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("GERRIT_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GERRIT_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GERRIT_PORT must be an integer: %w", err)
		}
		cfg.Port = n
	}
	return nil
}

func mergeOverrides(cfg *Config, o Overrides) {
	if o.Host != "" {
		cfg.Host = o.Host
	}
	if o.Port > 0 {
		cfg.Port = o.Port
	}
	if o.DryRun {
		cfg.DryRun = true
	}
}
