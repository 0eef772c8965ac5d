package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thunklang/es3vm/internal/evaluator"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Parse and evaluate a script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Parse and evaluate an inline script",
	RunE:  runInline,
}

var inlineSource string

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&inlineSource, "eval", "e", "", "inline source to evaluate")
	evalCmd.MarkFlagRequired("eval")
}

func runFile(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	return execute(string(content))
}

func runInline(_ *cobra.Command, _ []string) error {
	return execute(inlineSource)
}

func execute(source string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := rt.Evaluate(source)

	if cfg.Trace {
		fmt.Fprintf(os.Stderr, "[trace] evaluated in %s (%s), call stack depth at exit: %d\n",
			time.Since(start), humanize.Time(start), len(rt.CallStack()))
	}

	if err != nil {
		if th, ok := err.(*evaluator.Thrown); ok {
			return fmt.Errorf("uncaught exception: %v", th.Value)
		}
		return err
	}
	fmt.Println(formatResult(result))
	return nil
}
