package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the machine description loaded from a project file. Every field
// can also be supplied (and is overridden) by command-line flags.
type Config struct {
	Start string `mapstructure:"start"`

	// Named and Add are authoritative rule strings; RuleFiles are paths to
	// bulk rule files whose blocks are extracted at compile time.
	Named     []string `mapstructure:"named"`
	Add       []string `mapstructure:"add"`
	RuleFiles []string `mapstructure:"rule_files"`

	// TraceDepth bounds the recent-transition recorder; negative keeps
	// everything, zero disables it.
	TraceDepth *int `mapstructure:"trace_depth"`

	Verbose           bool `mapstructure:"verbose"`
	IgnoreUnmatched   bool `mapstructure:"ignore_unmatched"`
	UnrecognizedFatal bool `mapstructure:"unrecognized_fatal"`
}

// LoadConfig reads a YAML or JSON machine description. A missing path on the
// default name is not an error; an explicitly named missing file is. Rule
// file paths are resolved relative to the config file's directory.
func LoadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, rf := range cfg.RuleFiles {
		if !filepath.IsAbs(rf) {
			cfg.RuleFiles[i] = filepath.Join(dir, rf)
		}
	}
	return &cfg, nil
}

// Merge overlays flag-level options onto the config. Scalars from opts win
// when set; rule lists are appended, with flag rules staying authoritative.
func (c *Config) Merge(opts RunOptions) RunOptions {
	merged := opts
	if merged.Start == "" {
		merged.Start = c.Start
	}
	merged.Named = append(append([]string{}, c.Named...), opts.Named...)
	merged.Add = append(append([]string{}, c.Add...), opts.Add...)
	merged.RuleFiles = append(append([]string{}, c.RuleFiles...), opts.RuleFiles...)
	if merged.TraceDepth == nil {
		merged.TraceDepth = c.TraceDepth
	}
	merged.Verbose = merged.Verbose || c.Verbose
	merged.IgnoreUnmatched = merged.IgnoreUnmatched || c.IgnoreUnmatched
	merged.UnrecognizedFatal = merged.UnrecognizedFatal || c.UnrecognizedFatal
	return merged
}
