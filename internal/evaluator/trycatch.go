package evaluator

import "github.com/thunklang/es3vm/internal/ast"

// compileTryStatement implements spec.md §4's five-step try/catch/finally
// ordering: run the try block; if it threw and a catch clause exists, run
// the catch with the thrown value transactionally bound to the catch
// parameter (the binding is restored to whatever it shadowed, or removed,
// once the catch body completes); whatever tentative result that produced
// (original try result, or the catch's) is then superseded by the
// finally block's own Return/Break/Continue/Throw, if it has one —
// finally always runs, and wins, when it completes abruptly.
func compileTryStatement(n *ast.TryStatement, source string) (stmtThunk, error) {
	blockT, err := compileStatements(n.Block.Body, source)
	if err != nil {
		return nil, err
	}

	var handlerParam string
	var handlerT stmtThunk
	if n.Handler != nil {
		handlerParam = n.Handler.Param.Name
		handlerT, err = compileStatements(n.Handler.Body.Body, source)
		if err != nil {
			return nil, err
		}
	}

	var finallyT stmtThunk
	if n.Finalizer != nil {
		finallyT, err = compileStatements(n.Finalizer.Body, source)
		if err != nil {
			return nil, err
		}
	}

	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		result, blockErr := blockT(rt, sc)

		var tentative ctrl
		var tentativeErr error
		if blockErr != nil {
			th, isThrown := blockErr.(*Thrown)
			if isThrown && handlerT != nil {
				prevVal, hadPrev := sc.data[handlerParam]
				sc.declare(handlerParam, th.Value)

				tentative, tentativeErr = handlerT(rt, sc)

				if hadPrev {
					sc.data[handlerParam] = prevVal
				} else {
					delete(sc.data, handlerParam)
				}
			} else {
				tentative, tentativeErr = ctrl{}, blockErr
			}
		} else {
			tentative, tentativeErr = result, nil
		}

		if finallyT != nil {
			fres, ferr := finallyT(rt, sc)
			if ferr != nil {
				return ctrl{}, ferr
			}
			switch fres.tag {
			case ctrlEmpty, ctrlOK:
				// finally completed normally; tentative result stands.
			default:
				return fres, nil
			}
		}
		return tentative, tentativeErr
	}, nil
}
