package ast

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Pos
	Expression Expression
}

func (*ExpressionStatement) Kind() string { return "ExpressionStatement" }
func (*ExpressionStatement) stmtNode()    {}

// BlockStatement is `{ ... }`.
type BlockStatement struct {
	Pos
	Body []Statement
}

func (*BlockStatement) Kind() string { return "BlockStatement" }
func (*BlockStatement) stmtNode()    {}

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	Pos
}

func (*EmptyStatement) Kind() string { return "EmptyStatement" }
func (*EmptyStatement) stmtNode()    {}

// VariableDeclarator is one `name` or `name = init` entry of a VariableDeclaration.
type VariableDeclarator struct {
	Pos
	Id   *Identifier
	Init Expression // nil if no initializer
}

// VariableDeclaration is `var a, b = 1, ...;`.
type VariableDeclaration struct {
	Pos
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) Kind() string { return "VariableDeclaration" }
func (*VariableDeclaration) stmtNode()    {}

// FunctionDeclaration is `function name(params){body}` as a statement.
type FunctionDeclaration struct {
	Pos
	Id     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

func (*FunctionDeclaration) Kind() string { return "FunctionDeclaration" }
func (*FunctionDeclaration) stmtNode()    {}

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	Pos
	Argument Expression // nil if bare `return;`
}

func (*ReturnStatement) Kind() string { return "ReturnStatement" }
func (*ReturnStatement) stmtNode()    {}

// IfStatement is `if (test) consequent else? alternate`.
type IfStatement struct {
	Pos
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil if no else clause
}

func (*IfStatement) Kind() string { return "IfStatement" }
func (*IfStatement) stmtNode()    {}

// LabeledStatement is `label: body`.
type LabeledStatement struct {
	Pos
	Label *Identifier
	Body  Statement
}

func (*LabeledStatement) Kind() string { return "LabeledStatement" }
func (*LabeledStatement) stmtNode()    {}

// BreakStatement is `break;` or `break label;`.
type BreakStatement struct {
	Pos
	Label *Identifier // nil if unlabeled
}

func (*BreakStatement) Kind() string { return "BreakStatement" }
func (*BreakStatement) stmtNode()    {}

// ContinueStatement is `continue;` or `continue label;`.
type ContinueStatement struct {
	Pos
	Label *Identifier // nil if unlabeled
}

func (*ContinueStatement) Kind() string { return "ContinueStatement" }
func (*ContinueStatement) stmtNode()    {}

// WithStatement is `with (object) body`.
type WithStatement struct {
	Pos
	Object Expression
	Body   Statement
}

func (*WithStatement) Kind() string { return "WithStatement" }
func (*WithStatement) stmtNode()    {}

// SwitchCase is one `case test:` or `default:` arm.
type SwitchCase struct {
	Pos
	Test       Expression // nil for `default:`
	Consequent []Statement
}

// SwitchStatement is `switch (discriminant) { cases... }`.
type SwitchStatement struct {
	Pos
	Discriminant Expression
	Cases        []*SwitchCase
}

func (*SwitchStatement) Kind() string { return "SwitchStatement" }
func (*SwitchStatement) stmtNode()    {}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Pos
	Argument Expression
}

func (*ThrowStatement) Kind() string { return "ThrowStatement" }
func (*ThrowStatement) stmtNode()    {}

// CatchClause is the `catch (param) { body }` part of a TryStatement.
type CatchClause struct {
	Pos
	Param *Identifier
	Body  *BlockStatement
}

// TryStatement is `try { } catch(e) { } finally { }`, catch and/or finally optional
// (at least one of the two must be present, enforced by the parser).
type TryStatement struct {
	Pos
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (*TryStatement) Kind() string { return "TryStatement" }
func (*TryStatement) stmtNode()    {}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Pos
	Test Expression
	Body Statement
}

func (*WhileStatement) Kind() string { return "WhileStatement" }
func (*WhileStatement) stmtNode()    {}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Pos
	Body Statement
	Test Expression
}

func (*DoWhileStatement) Kind() string { return "DoWhileStatement" }
func (*DoWhileStatement) stmtNode()    {}

// ForStatement is the classic three-clause for loop; any clause may be nil.
type ForStatement struct {
	Pos
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (*ForStatement) Kind() string { return "ForStatement" }
func (*ForStatement) stmtNode()    {}

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	Pos
	Left  Node // *VariableDeclaration (single declarator) or Expression lvalue
	Right Expression
	Body  Statement
}

func (*ForInStatement) Kind() string { return "ForInStatement" }
func (*ForInStatement) stmtNode()    {}

// DebuggerStatement is `debugger;`, a documented no-op.
type DebuggerStatement struct {
	Pos
}

func (*DebuggerStatement) Kind() string { return "DebuggerStatement" }
func (*DebuggerStatement) stmtNode()    {}
