package syntax

import "github.com/occ-lang/occ/internal/types"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements. All
// nodes implement the Node interface. Expression nodes additionally
// carry a type, filled in as the parser constructs them.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Off() int // byte offset of the node's representative token
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	Type() types.Type
	setType(types.Type)
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	off int
}

func (n *node) Off() int { return n.off }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct {
	node
	typ types.Type
}

func (e *expr) Type() types.Type     { return e.typ }
func (e *expr) setType(t types.Type) { e.typ = t }
func (*expr) aExpr()                 {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Operators

// Op identifies a binary operator. The relational set is closed under
// the parser's canonicalization: a > b is built as b < a, so only <
// and <= appear in the AST.
type Op uint8

const (
	Add Op = iota // +
	Sub           // -
	Mul           // *
	Div           // /
	Eq            // ==
	Ne            // !=
	Lt            // <
	Le            // <=
)

var opNames = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
	Eq:  "==",
	Ne:  "!=",
	Lt:  "<",
	Le:  "<=",
}

// String returns the operator's source spelling.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "op?"
}

// ----------------------------------------------------------------------------
// Expressions

// NumLit is an integer literal.
type NumLit struct {
	expr
	Val int64
}

// VarRef references a declared local variable.
type VarRef struct {
	expr
	Obj *Obj
}

// BinaryExpr is a binary arithmetic or comparison operation.
type BinaryExpr struct {
	expr
	Op   Op
	X, Y Expr
}

// NegExpr is unary minus.
type NegExpr struct {
	expr
	X Expr
}

// AddrExpr takes the address of an lvalue.
type AddrExpr struct {
	expr
	X Expr
}

// DerefExpr loads the value a pointer refers to.
type DerefExpr struct {
	expr
	X Expr
}

// AssignExpr stores RHS into the location designated by LHS.
// Assignment is right-associative and yields the assigned value.
type AssignExpr struct {
	expr
	LHS, RHS Expr
}

// CallExpr is a zero-argument call of a named function.
type CallExpr struct {
	expr
	Name string
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	stmt
	X Expr
}

// ReturnStmt returns an expression's value from the function.
type ReturnStmt struct {
	stmt
	X Expr
}

// BlockStmt is a brace-delimited statement list. The parser also uses
// an empty block for the empty statement ";".
type BlockStmt struct {
	stmt
	Stmts []Stmt
}

// IfStmt is an if statement with an optional else branch.
type IfStmt struct {
	stmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// ForStmt is a for or while loop. A while loop has nil Init and Post.
// Cond is nil for "for (;;)".
type ForStmt struct {
	stmt
	Init Stmt // nil for while
	Cond Expr
	Post Expr // nil for while
	Body Stmt
}

// ----------------------------------------------------------------------------
// Objects and functions

// Obj is a local variable. Locals live for the whole compilation of
// their function; Offset is assigned by the code generator and is the
// positive displacement of the variable's slot below the frame pointer.
type Obj struct {
	Name   string
	Type   types.Type
	Offset int
}

// Function is the parser's output: a single function body plus its
// locals in declaration order. StackSize is filled in by the code
// generator when it lays out the frame.
type Function struct {
	Name      string
	Body      *BlockStmt
	Locals    []*Obj
	StackSize int
}
