package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/thunklang/es3vm/internal/config"
)

var (
	cfgFile       string
	timeoutFlag   string
	globalsFlag   string
	traceFlag     bool
	noHostlibFlag bool
)

var rootCmd = &cobra.Command{
	Use:     "es3vm",
	Short:   "A tree-walking ES3/5 evaluator",
	Version: config.Version,
	Long: `es3vm runs a subset of ES3/5 JavaScript: an AST-in,
host-global-object-in interpreter with a compile-to-thunk evaluator at
its core, plus a reference object model and a small set of host
built-ins (JSON, YAML, uuid, a dynamic gRPC client).`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML run config")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "", "execution timeout, e.g. 5s (overrides --config)")
	rootCmd.PersistentFlags().StringVar(&globalsFlag, "globals", "", "YAML file of name->value bindings merged onto the global object")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "print elapsed time and call-stack depth to stderr after evaluation")
	rootCmd.PersistentFlags().BoolVar(&noHostlibFlag, "no-hostlib", false, "disable JSON/YAML/uuid/grpc globals, leaving only the bare ES3/5 builtins")
}

// loadRunConfig merges --config's file with the individual flags, the
// flags taking precedence — the same "file sets defaults, flags override"
// rule most cobra+viper CLIs follow, done by hand here since this module
// doesn't carry viper.
func loadRunConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cfg, err
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return cfg, err
		}
		cfg.Timeout = d
	}
	if globalsFlag != "" {
		cfg.Globals = globalsFlag
	}
	if traceFlag {
		cfg.Trace = true
	}
	if noHostlibFlag {
		cfg.DisableHostlib = true
	}
	return cfg, nil
}
