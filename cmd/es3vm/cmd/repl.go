package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thunklang/es3vm/internal/evaluator"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read-eval-print loop, one line at a time against a persistent global scope",
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl evaluates stdin one line at a time against a single Runtime, so
// variables and functions declared on one line are visible on the next —
// Runtime.Evaluate already accumulates onto the same global scope call
// over call, so the REPL itself only has to keep reusing one Runtime.
// Whether stdin is an interactive terminal or a piped script decides if a
// prompt and banner are worth printing at all.
func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}
	rt, err := buildRuntime(cfg)
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Printf("es3vm %s — one statement per line, globals persist across lines\n", versionString())
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := rt.Evaluate(line)
		if err != nil {
			if th, ok := err.(*evaluator.Thrown); ok {
				fmt.Fprintf(os.Stderr, "uncaught exception: %v\n", th.Value)
				continue
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if interactive {
			fmt.Println(formatResult(result))
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func versionString() string {
	return rootCmd.Version
}
