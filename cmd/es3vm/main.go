package main

import (
	"fmt"
	"os"

	"github.com/thunklang/es3vm/cmd/es3vm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
