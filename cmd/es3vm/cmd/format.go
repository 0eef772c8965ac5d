package cmd

import "fmt"

// formatResult renders a script completion value for CLI output. The
// reference runtime's primitives (float64, string, bool) print natively
// through %v, and every *runtime.Object (plain objects, arrays, functions,
// errors) and the undefined/null singletons satisfy fmt.Stringer, so this
// is a thin wrapper rather than its own ToString implementation.
func formatResult(result any) string {
	if result == nil {
		return "undefined"
	}
	return fmt.Sprintf("%v", result)
}
