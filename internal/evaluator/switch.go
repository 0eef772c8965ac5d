package evaluator

import "github.com/thunklang/es3vm/internal/ast"

type switchCase struct {
	test exprThunk // nil marks the default clause
	body stmtThunk
}

// compileSwitchStatement compiles each SwitchCase into a (test, body)
// pair — default's test is left nil, the evaluator's stand-in for
// spec.md's DefaultCase sentinel, since a nil test thunk can never match
// the discriminant during the match-scan. Matching proceeds in source
// order: the first non-default case whose test strictly-equals the
// discriminant starts execution, falling through every following case
// (default included) until a Break, Continue, Return, Throw, or labeled
// signal interrupts it; with no match, the default clause (if any) starts
// execution the same way. Break and Continue are both swallowed at the
// switch boundary — the switch completes normally and the statement
// after it still runs — while Return/Throw/labeled signals propagate
// further out, past the switch, to whatever enclosing construct handles
// them.
func compileSwitchStatement(n *ast.SwitchStatement, source string) (stmtThunk, error) {
	discT, err := compileExpr(n.Discriminant, source)
	if err != nil {
		return nil, err
	}
	cases := make([]switchCase, len(n.Cases))
	for i, c := range n.Cases {
		var testT exprThunk
		if c.Test != nil {
			t, err := compileExpr(c.Test, source)
			if err != nil {
				return nil, err
			}
			testT = t
		}
		bodyT, err := compileStatements(c.Consequent, source)
		if err != nil {
			return nil, err
		}
		cases[i] = switchCase{test: testT, body: bodyT}
	}

	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		dv, err := discT(rt, sc)
		if err != nil {
			return ctrl{}, err
		}

		startIdx := -1
		for i, c := range cases {
			if c.test == nil {
				continue
			}
			tv, err := c.test(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			if rt.host.StrictEquals(dv, tv) {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			for i, c := range cases {
				if c.test == nil {
					startIdx = i
					break
				}
			}
		}
		if startIdx == -1 {
			return ctrlEmptyResult, nil
		}

		acc := ctrlEmptyResult
		for i := startIdx; i < len(cases); i++ {
			r, err := cases[i].body(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			switch r.tag {
			case ctrlEmpty:
				continue
			case ctrlOK:
				acc = r
			case ctrlBreak, ctrlContinue:
				return acc, nil
			default: // continueLabel, breakLabel, return
				return r, nil
			}
		}
		return acc, nil
	}, nil
}
