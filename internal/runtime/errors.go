package runtime

import "fmt"

func errNotCallable(v any) error {
	return fmt.Errorf("%s is not a function", toStringValue(v))
}

func errUnsupportedOperator(op string) error {
	return fmt.Errorf("unsupported operator %q", op)
}
