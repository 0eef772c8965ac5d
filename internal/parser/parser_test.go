package parser

import (
	"testing"

	"github.com/thunklang/es3vm/internal/ast"
)

func TestParseProgramStatementKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
	}{
		{"var decl", "var x = 5;", "VariableDeclaration"},
		{"if stmt", "if (x) { y(); }", "IfStatement"},
		{"while stmt", "while (x) { y(); }", "WhileStatement"},
		{"for stmt", "for (var i = 0; i < 10; i++) {}", "ForStatement"},
		{"for-in stmt", "for (var k in obj) {}", "ForInStatement"},
		{"function decl", "function f(a, b) { return a + b; }", "FunctionDeclaration"},
		{"return stmt", "return 1;", "ReturnStatement"},
		{"try stmt", "try { x(); } catch (e) { y(); }", "TryStatement"},
		{"switch stmt", "switch (x) { case 1: break; default: break; }", "SwitchStatement"},
		{"throw stmt", "throw x;", "ThrowStatement"},
		{"empty stmt", ";", "EmptyStatement"},
		{"block stmt", "{ x(); }", "BlockStatement"},
		{"expr stmt", "x + 1;", "ExpressionStatement"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tc.input, err)
			}
			if len(prog.Body) != 1 {
				t.Fatalf("Parse(%q): got %d statements, want 1", tc.input, len(prog.Body))
			}
			if got := prog.Body[0].Kind(); got != tc.kind {
				t.Fatalf("Parse(%q): statement kind = %s, want %s", tc.input, got, tc.kind)
			}
		})
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, err := Parse("1 + 2 * 3;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", prog.Body[0])
	}
	bin, ok := stmt.Expression.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected top-level BinaryExpression, got %T", stmt.Expression)
	}
	if bin.Operator != "+" {
		t.Fatalf("top-level operator = %q, want %q (multiplication should bind tighter)", bin.Operator, "+")
	}
	if _, ok := bin.Right.(*ast.BinaryExpression); !ok {
		t.Fatalf("right operand should be the nested 2 * 3, got %T", bin.Right)
	}
}

func TestParseMemberAndCallExpression(t *testing.T) {
	prog, err := Parse("a.b[c](1, 2);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected CallExpression, got %T", stmt.Expression)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("got %d arguments, want 2", len(call.Arguments))
	}
	member, ok := call.Callee.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("expected callee to be MemberExpression, got %T", call.Callee)
	}
	if !member.Computed {
		t.Fatalf("a.b[c] outer member access should be computed")
	}
}

func TestParseFunctionExpressionAndNewExpression(t *testing.T) {
	prog, err := Parse("var f = function(x) { return x; }; new Foo(1);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Body))
	}
	decl := prog.Body[0].(*ast.VariableDeclaration)
	_, ok := decl.Declarations[0].Init.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected FunctionExpression init, got %T", decl.Declarations[0].Init)
	}
	exprStmt := prog.Body[1].(*ast.ExpressionStatement)
	if _, ok := exprStmt.Expression.(*ast.NewExpression); !ok {
		t.Fatalf("expected NewExpression, got %T", exprStmt.Expression)
	}
}

func TestParseForStatementCommaInitIsSequenceExpression(t *testing.T) {
	prog, err := Parse("for (a = 1, b = 2; a < 10; a++) {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	forStmt, ok := prog.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected ForStatement, got %T", prog.Body[0])
	}
	seq, ok := forStmt.Init.(*ast.SequenceExpression)
	if !ok {
		t.Fatalf("expected Init to be a SequenceExpression, got %T", forStmt.Init)
	}
	if len(seq.Expressions) != 2 {
		t.Fatalf("got %d expressions in the init sequence, want 2", len(seq.Expressions))
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("var = ;")
	if err == nil {
		t.Fatal("expected a syntax error for a malformed declaration")
	}
}
