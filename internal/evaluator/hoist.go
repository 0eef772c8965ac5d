package evaluator

import "github.com/thunklang/es3vm/internal/ast"

// hoistStatements implements spec.md §4's hoisting rules: every `var`
// name anywhere in stmts (however deeply nested in blocks/if/for/while/
// switch/try/labeled/with) gets an `undefined` slot in scope if it isn't
// already bound, and every FunctionDeclaration in stmts (nested in those
// same statement kinds included) installs its function value immediately
// — overwriting only a still-undefined slot, so that `var f; function f(){}`
// keeps the function and `function f(){} var f;` does not clobber it with
// undefined.
//
// Hoisting never descends into a nested function's own body: that body
// hoists into its own activation scope each time the function is called.
func hoistStatements(stmts []ast.Statement, scope *Scope, rt *Runtime, source string) error {
	for _, st := range stmts {
		if err := hoistStatement(st, scope, rt, source); err != nil {
			return err
		}
	}
	return nil
}

func hoistStatement(st ast.Statement, scope *Scope, rt *Runtime, source string) error {
	switch n := st.(type) {
	case *ast.VariableDeclaration:
		for _, decl := range n.Declarations {
			varDeclaration(decl.Id.Name, scope, rt.host)
		}
	case *ast.FunctionDeclaration:
		fn, err := makeFunctionValue(n, n.Id, n.Params, n.Body, source, rt, scope)
		if err != nil {
			return err
		}
		funcDeclaration(n.Id.Name, fn, scope, rt.host)
	case *ast.BlockStatement:
		return hoistStatements(n.Body, scope, rt, source)
	case *ast.IfStatement:
		if err := hoistStatement(n.Consequent, scope, rt, source); err != nil {
			return err
		}
		if n.Alternate != nil {
			return hoistStatement(n.Alternate, scope, rt, source)
		}
	case *ast.LabeledStatement:
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.WithStatement:
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.WhileStatement:
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.DoWhileStatement:
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.ForStatement:
		if vd, ok := n.Init.(*ast.VariableDeclaration); ok {
			if err := hoistStatement(vd, scope, rt, source); err != nil {
				return err
			}
		}
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.ForInStatement:
		if vd, ok := n.Left.(*ast.VariableDeclaration); ok {
			if err := hoistStatement(vd, scope, rt, source); err != nil {
				return err
			}
		}
		return hoistStatement(n.Body, scope, rt, source)
	case *ast.TryStatement:
		if err := hoistStatements(n.Block.Body, scope, rt, source); err != nil {
			return err
		}
		if n.Handler != nil {
			if err := hoistStatements(n.Handler.Body.Body, scope, rt, source); err != nil {
				return err
			}
		}
		if n.Finalizer != nil {
			return hoistStatements(n.Finalizer.Body, scope, rt, source)
		}
	case *ast.SwitchStatement:
		for _, c := range n.Cases {
			if err := hoistStatements(c.Consequent, scope, rt, source); err != nil {
				return err
			}
		}
	}
	return nil
}

// varDeclaration installs name as undefined in scope at hoist time,
// leaving any existing binding (e.g. a parameter, or an already-hoisted
// function) untouched.
func varDeclaration(name string, scope *Scope, h Host) {
	if _, ok := scope.data[name]; !ok {
		scope.declare(name, h.Undefined())
	}
}

// funcDeclaration installs fn in scope, but only when the slot is absent
// or still undefined — first function declaration of a given name wins,
// and a later `var` of the same name (handled by varDeclaration) can
// never clobber it.
func funcDeclaration(name string, fn Value, scope *Scope, h Host) {
	if cur, ok := scope.data[name]; ok && !isUndefined(cur, h) {
		return
	}
	scope.declare(name, fn)
}

func isUndefined(v Value, h Host) bool {
	return h.StrictEquals(v, h.Undefined())
}
