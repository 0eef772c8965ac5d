// Package config loads the run-time configuration cmd/es3vm and embedders
// use to construct a Runtime: execution timeout, an optional file of
// global bindings, and trace flags. Grounded on the teacher's own
// internal/ext.Config — a yaml.v3-tagged struct loaded from a project file
// — generalized from its Go-dependency-binding shape to run configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the current es3vm version, set at build time via -ldflags
// the same way the teacher stamps its own Version var.
var Version = "0.1.0"

// SourceFileExt is the conventional extension for ES3/5 source files. The
// CLI's run command takes a single file path and does not consult it.
const SourceFileExt = ".js"

// Config is the top-level run configuration, loadable from a YAML file
// (--config on the CLI) and overridable by individual CLI flags.
type Config struct {
	// Timeout bounds a single Evaluate call; zero means no deadline.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Globals points at a YAML or JSON file of name->value bindings merged
	// onto the host's global object before the script runs.
	Globals string `yaml:"globals,omitempty"`

	// Trace enables a stderr line with elapsed time and call-stack depth
	// after each CLI evaluation.
	Trace bool `yaml:"trace,omitempty"`

	// DisableHostlib turns off every internal/hostlib global (JSON, YAML,
	// uuid, grpc*), leaving only internal/runtime's bare ES3/5 builtins.
	DisableHostlib bool `yaml:"disableHostlib,omitempty"`
}

// Default returns the zero-value Config with its one non-zero default: a
// conservative timeout so a malformed script can't hang the CLI forever.
func Default() Config {
	return Config{Timeout: 10 * time.Second}
}

// Load reads and parses a YAML config file. A missing file is not an
// error — Load returns Default() unchanged — since --config is optional
// on every CLI subcommand.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadGlobals reads a YAML (or JSON, a valid YAML subset) file of
// name->value bindings destined for the host's global object.
func LoadGlobals(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading globals %s: %w", path, err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing globals %s: %w", path, err)
	}
	return out, nil
}
