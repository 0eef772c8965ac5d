package evaluator

import "github.com/thunklang/es3vm/internal/ast"

// exprThunk is a compiled expression: evaluating it never yields a control
// signal, only a Value or a thrown/host error.
type exprThunk func(rt *Runtime, sc *Scope) (Value, error)

// stmtThunk is a compiled statement: it may complete normally, break,
// continue, return, or (via the error channel) throw.
type stmtThunk func(rt *Runtime, sc *Scope) (ctrl, error)

// compileProgram hoists the program's var/function declarations into
// scope (the Runtime's global scope) and compiles its body into one
// block thunk, per spec.md §4's top-level driver.
func compileProgram(prog *ast.Program, source string, rt *Runtime, scope *Scope) (stmtThunk, error) {
	if err := hoistStatements(prog.Body, scope, rt, source); err != nil {
		return nil, err
	}
	return compileStatements(prog.Body, source)
}

// compileStatements compiles a flat statement list, shared by Program and
// BlockStatement; hoisting is done separately by hoistStatements.
func compileStatements(body []ast.Statement, source string) (stmtThunk, error) {
	thunks := make([]stmtThunk, len(body))
	for i, st := range body {
		t, err := compileStmt(st, source)
		if err != nil {
			return nil, err
		}
		thunks[i] = t
	}
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		result := ctrlEmptyResult
		for _, t := range thunks {
			r, err := t(rt, sc)
			if err != nil {
				return ctrl{}, err
			}
			switch r.tag {
			case ctrlEmpty:
				continue
			case ctrlOK:
				result = r
			default:
				return r, nil
			}
		}
		return result, nil
	}, nil
}

// compileStmt dispatches on node kind, compiling exactly one thunk per
// AST node the way the teacher's create(node) dispatch does for its own
// expression-oriented grammar — generalized here to a statement/expression
// split.
func compileStmt(node ast.Statement, source string) (stmtThunk, error) {
	switch n := node.(type) {
	case *ast.BlockStatement:
		return compileBlockStatement(n, source)
	case *ast.EmptyStatement:
		return compileEmptyStatement()
	case *ast.ExpressionStatement:
		return compileExpressionStatement(n, source)
	case *ast.VariableDeclaration:
		return compileVariableDeclaration(n, source)
	case *ast.FunctionDeclaration:
		return compileFunctionDeclarationStatement()
	case *ast.ReturnStatement:
		return compileReturnStatement(n, source)
	case *ast.IfStatement:
		return compileIfStatement(n, source)
	case *ast.LabeledStatement:
		return compileLabeledStatement(n, source)
	case *ast.BreakStatement:
		return compileBreakStatement(n)
	case *ast.ContinueStatement:
		return compileContinueStatement(n)
	case *ast.WithStatement:
		return compileWithStatement(n, source)
	case *ast.SwitchStatement:
		return compileSwitchStatement(n, source)
	case *ast.ThrowStatement:
		return compileThrowStatement(n, source)
	case *ast.TryStatement:
		return compileTryStatement(n, source)
	case *ast.WhileStatement:
		return compileWhileStatement(n, source, nil)
	case *ast.DoWhileStatement:
		return compileDoWhileStatement(n, source, nil)
	case *ast.ForStatement:
		return compileForStatement(n, source, nil)
	case *ast.ForInStatement:
		return compileForInStatement(n, source, nil)
	case *ast.DebuggerStatement:
		return compileEmptyStatement()
	default:
		return nil, compileErrf("unsupported statement node %T", node)
	}
}

func compileExpr(node ast.Expression, source string) (exprThunk, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return compileIdentifier(n)
	case *ast.Literal:
		return compileLiteral(n)
	case *ast.ThisExpression:
		return compileThisExpression()
	case *ast.ArrayExpression:
		return compileArrayExpression(n, source)
	case *ast.ObjectExpression:
		return compileObjectExpression(n, source)
	case *ast.FunctionExpression:
		return compileFunctionExpression(n, source)
	case *ast.UnaryExpression:
		return compileUnaryExpression(n, source)
	case *ast.UpdateExpression:
		return compileUpdateExpression(n, source)
	case *ast.BinaryExpression:
		return compileBinaryExpression(n, source)
	case *ast.LogicalExpression:
		return compileLogicalExpression(n, source)
	case *ast.AssignmentExpression:
		return compileAssignmentExpression(n, source)
	case *ast.MemberExpression:
		return compileMemberExpression(n, source)
	case *ast.ConditionalExpression:
		return compileConditionalExpression(n, source)
	case *ast.CallExpression:
		return compileCallExpression(n, source)
	case *ast.NewExpression:
		return compileNewExpression(n, source)
	case *ast.SequenceExpression:
		return compileSequenceExpression(n, source)
	default:
		return nil, compileErrf("unsupported expression node %T", node)
	}
}

func compileBlockStatement(n *ast.BlockStatement, source string) (stmtThunk, error) {
	return compileStatements(n.Body, source)
}

func compileEmptyStatement() (stmtThunk, error) {
	return func(rt *Runtime, sc *Scope) (ctrl, error) {
		return ctrlEmptyResult, nil
	}, nil
}
