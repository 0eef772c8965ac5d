package evaluator_test

import (
	"testing"

	"github.com/thunklang/es3vm/internal/evaluator"
	"github.com/thunklang/es3vm/internal/runtime"
)

func mustEval(t *testing.T, source string) evaluator.Value {
	t.Helper()
	host := runtime.NewDefaultHost()
	rt := evaluator.New(host.Global(), host, evaluator.Options{})
	result, err := rt.Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate(%q): unexpected error: %v", source, err)
	}
	return result
}

func TestArithmeticAndComparison(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"1 + 2 * 3;", 7},
		{"(1 + 2) * 3;", 9},
		{"10 % 3;", 1},
		{"2 + 2 === 4 ? 1 : 0;", 1},
		{"10 / 4;", 2.5},
	}
	for _, tc := range tests {
		got := mustEval(t, tc.source)
		if got != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestStringConcatenation(t *testing.T) {
	got := mustEval(t, `"foo" + "bar" + 1;`)
	if got != "foobar1" {
		t.Fatalf("got %v, want %q", got, "foobar1")
	}
}

func TestVariablesAndAssignment(t *testing.T) {
	got := mustEval(t, `
		var x = 1;
		x = x + 41;
		x;
	`)
	if got != float64(42) {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestIfElseBranching(t *testing.T) {
	source := `
		var x = 5;
		var result;
		if (x > 10) {
			result = "big";
		} else if (x > 2) {
			result = "medium";
		} else {
			result = "small";
		}
		result;
	`
	got := mustEval(t, source)
	if got != "medium" {
		t.Fatalf("got %v, want %q", got, "medium")
	}
}

func TestWhileLoopAccumulates(t *testing.T) {
	source := `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		sum;
	`
	got := mustEval(t, source)
	if got != float64(10) {
		t.Fatalf("got %v, want 10", got)
	}
}

func TestForLoopWithBreakAndContinue(t *testing.T) {
	source := `
		var sum = 0;
		for (var i = 0; i < 10; i = i + 1) {
			if (i === 5) {
				break;
			}
			if (i % 2 === 0) {
				continue;
			}
			sum = sum + i;
		}
		sum;
	`
	got := mustEval(t, source)
	if got != float64(4) { // 1 + 3
		t.Fatalf("got %v, want 4", got)
	}
}

func TestForLoopCommaSeparatedInitRunsEveryClause(t *testing.T) {
	source := `
		var a, b, sum = 0;
		for (a = 1, b = 10; a < 4; a = a + 1) {
			sum = sum + a + b;
		}
		sum;
	`
	got := mustEval(t, source)
	// a runs 1,2,3 with b pinned at 10 by the init clause's second assignment.
	if got != float64((1+2+3)+3*10) {
		t.Fatalf("got %v, want %v (comma-separated for-init clauses must all run)", got, float64((1+2+3)+3*10))
	}
}

func TestFunctionDeclarationAndRecursion(t *testing.T) {
	source := `
		function fib(n) {
			if (n < 2) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		}
		fib(10);
	`
	got := mustEval(t, source)
	if got != float64(55) {
		t.Fatalf("got %v, want 55", got)
	}
}

func TestClosures(t *testing.T) {
	source := `
		function makeCounter() {
			var count = 0;
			return function() {
				count = count + 1;
				return count;
			};
		}
		var counter = makeCounter();
		counter();
		counter();
		counter();
	`
	got := mustEval(t, source)
	if got != float64(3) {
		t.Fatalf("got %v, want 3", got)
	}
}

func TestObjectAndArrayLiterals(t *testing.T) {
	source := `
		var obj = { a: 1, b: 2 };
		var arr = [1, 2, 3];
		obj.a + obj.b + arr[0] + arr[1] + arr[2];
	`
	got := mustEval(t, source)
	if got != float64(9) {
		t.Fatalf("got %v, want 9", got)
	}
}

func TestTryCatchCatchesThrow(t *testing.T) {
	source := `
		var caught = false;
		try {
			throw "boom";
		} catch (e) {
			caught = (e === "boom");
		}
		caught;
	`
	got := mustEval(t, source)
	if got != true {
		t.Fatalf("got %v, want true", got)
	}
}

func TestTryFinallyAlwaysRuns(t *testing.T) {
	source := `
		var ran = false;
		function f() {
			try {
				return 1;
			} finally {
				ran = true;
			}
		}
		f();
		ran;
	`
	got := mustEval(t, source)
	if got != true {
		t.Fatalf("finally block did not run")
	}
}

func TestUncaughtThrowReturnsThrown(t *testing.T) {
	host := runtime.NewDefaultHost()
	rt := evaluator.New(host.Global(), host, evaluator.Options{})
	_, err := rt.Evaluate(`throw "nope";`)
	if err == nil {
		t.Fatal("expected an error for an uncaught throw")
	}
	if _, ok := err.(*evaluator.Thrown); !ok {
		t.Fatalf("expected *evaluator.Thrown, got %T", err)
	}
}

func TestSwitchStatementFallthrough(t *testing.T) {
	source := `
		function label(n) {
			var result = "";
			switch (n) {
				case 1:
					result = result + "one";
				case 2:
					result = result + "two";
					break;
				default:
					result = result + "other";
			}
			return result;
		}
		label(1);
	`
	got := mustEval(t, source)
	if got != "onetwo" {
		t.Fatalf("got %v, want %q", got, "onetwo")
	}
}

func TestAssignToUndeclaredNameInFunctionLandsOnGlobalScope(t *testing.T) {
	source := `
		function f() {
			y = 5;
		}
		f();
		y;
	`
	got := mustEval(t, source)
	if got != float64(5) {
		t.Fatalf("got %v, want 5 (assigning an undeclared name must land on the global scope, not the function's private scope)", got)
	}
}

func TestPlainCallBindsThisToRootContext(t *testing.T) {
	host := runtime.NewDefaultHost()
	rt := evaluator.New(host.Global(), host, evaluator.Options{})
	got, err := rt.Evaluate(`
		function f() { return this; }
		f();
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != host.Global() {
		t.Fatalf("plain call's this = %v, want the root/global object", got)
	}
}

func TestMethodCallBindsThisToReceiver(t *testing.T) {
	source := `
		var obj = {
			value: 41,
			get: function() { return this.value + 1; }
		};
		obj.get();
	`
	got := mustEval(t, source)
	if got != float64(42) {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestSwitchSwallowsContinueAtBoundary(t *testing.T) {
	source := `
		var visited = "";
		for (var i = 0; i < 3; i = i + 1) {
			switch (i) {
				case 1:
					continue;
			}
			visited = visited + i;
		}
		visited;
	`
	got := mustEval(t, source)
	// continue is swallowed at the switch boundary (turned into a normal
	// completion), not propagated to the enclosing for loop, so every
	// iteration's trailing statement still runs.
	if got != "012" {
		t.Fatalf("got %v, want %q", got, "012")
	}
}

func TestGlobalsPersistAcrossEvaluateCalls(t *testing.T) {
	host := runtime.NewDefaultHost()
	rt := evaluator.New(host.Global(), host, evaluator.Options{})
	if _, err := rt.Evaluate(`var counter = 1;`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := rt.Evaluate(`counter = counter + 1; counter;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != float64(2) {
		t.Fatalf("got %v, want 2 (globals should persist across Evaluate calls)", got)
	}
}
