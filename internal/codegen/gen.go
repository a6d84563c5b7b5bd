// Package codegen lowers a parsed function to x86-64 assembly in AT&T
// syntax, following the System-V register conventions.
//
// Every expression computes its value into %rax. Binary operators
// evaluate the right operand first, push it, evaluate the left
// operand, then pop the right operand into %rdi and combine. The
// push/pop depth must return to zero after every statement; a residual
// depth is an internal error.
package codegen

import (
	"fmt"
	"io"

	"github.com/occ-lang/occ/internal/syntax"
	"github.com/occ-lang/occ/internal/types"
)

// generator carries the emission state for a single function.
type generator struct {
	w      io.Writer
	err    error // first write or invariant error
	depth  int   // evaluation-stack depth (pushes minus pops)
	labels int   // monotonic counter for unique local labels
}

// Generate lays out fn's stack frame and writes its assembly to w.
func Generate(w io.Writer, fn *syntax.Function) error {
	assignLVarOffsets(fn)

	g := &generator{w: w}
	g.emit("  .globl %s", fn.Name)
	g.emit("%s:", fn.Name)

	// Prologue
	g.emit("  push %%rbp")
	g.emit("  mov %%rsp, %%rbp")
	g.emit("  sub $%d, %%rsp", fn.StackSize)

	g.stmt(fn.Body)

	// Epilogue
	g.emit(".L.return:")
	g.emit("  mov %%rbp, %%rsp")
	g.emit("  pop %%rbp")
	g.emit("  ret")

	if g.err == nil && g.depth != 0 {
		g.failf("internal error: evaluation stack depth %d at function end", g.depth)
	}
	return g.err
}

// assignLVarOffsets gives each local an 8-byte slot below the frame
// pointer and rounds the frame up to a 16-byte multiple. The list is
// walked from the most recent declaration, so the first declared
// variable sits deepest in the frame and adjacent declarations occupy
// adjacent slots.
func assignLVarOffsets(fn *syntax.Function) {
	offset := 0
	for i := len(fn.Locals) - 1; i >= 0; i-- {
		offset += types.WordSize
		fn.Locals[i].Offset = offset
	}
	fn.StackSize = alignTo(offset, 16)
}

// alignTo rounds n up to the nearest multiple of align.
func alignTo(n, align int) int {
	return (n + align - 1) / align * align
}

// ----------------------------------------------------------------------------
// Emission helpers

// emit writes one line of assembly. After the first write error all
// emission becomes a no-op.
func (g *generator) emit(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format+"\n", args...)
}

// failf records an internal error if none is pending.
func (g *generator) failf(format string, args ...interface{}) {
	if g.err == nil {
		g.err = fmt.Errorf(format, args...)
	}
}

func (g *generator) push() {
	g.emit("  push %%rax")
	g.depth++
}

func (g *generator) pop(reg string) {
	g.emit("  pop %s", reg)
	g.depth--
}

// count returns the next value of the label counter. Each if and loop
// construct takes one value and derives its .L.else.N / .L.begin.N /
// .L.end.N labels from it.
func (g *generator) count() int {
	g.labels++
	return g.labels
}

// ----------------------------------------------------------------------------
// Lowering

// addr emits the address of the lvalue x into %rax.
func (g *generator) addr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.VarRef:
		g.emit("  lea %d(%%rbp), %%rax", -x.Obj.Offset)
	case *syntax.DerefExpr:
		g.expr(x.X)
	default:
		// The parser enforces the lvalue discipline; reaching this is
		// a generator bug.
		g.failf("internal error: not an lvalue: %T", x)
	}
}

// expr emits code that evaluates x into %rax.
func (g *generator) expr(x syntax.Expr) {
	switch x := x.(type) {
	case *syntax.NumLit:
		g.emit("  mov $%d, %%rax", x.Val)

	case *syntax.NegExpr:
		g.expr(x.X)
		g.emit("  neg %%rax")

	case *syntax.VarRef:
		g.addr(x)
		g.emit("  mov (%%rax), %%rax")

	case *syntax.DerefExpr:
		g.expr(x.X)
		g.emit("  mov (%%rax), %%rax")

	case *syntax.AddrExpr:
		g.addr(x.X)

	case *syntax.AssignExpr:
		g.addr(x.LHS)
		g.push()
		g.expr(x.RHS)
		g.pop("%rdi")
		g.emit("  mov %%rax, (%%rdi)")

	case *syntax.CallExpr:
		g.emit("  mov $0, %%rax")
		g.emit("  call %s", x.Name)

	case *syntax.BinaryExpr:
		g.expr(x.Y)
		g.push()
		g.expr(x.X)
		g.pop("%rdi")
		g.binary(x.Op)

	default:
		g.failf("internal error: invalid expression: %T", x)
	}
}

// binary combines %rax (left) and %rdi (right) per op, leaving the
// result in %rax.
func (g *generator) binary(op syntax.Op) {
	switch op {
	case syntax.Add:
		g.emit("  add %%rdi, %%rax")
	case syntax.Sub:
		g.emit("  sub %%rdi, %%rax")
	case syntax.Mul:
		g.emit("  imul %%rdi, %%rax")
	case syntax.Div:
		g.emit("  cqo")
		g.emit("  idiv %%rdi")
	case syntax.Eq, syntax.Ne, syntax.Lt, syntax.Le:
		g.emit("  cmp %%rdi, %%rax")
		switch op {
		case syntax.Eq:
			g.emit("  sete %%al")
		case syntax.Ne:
			g.emit("  setne %%al")
		case syntax.Lt:
			g.emit("  setl %%al")
		case syntax.Le:
			g.emit("  setle %%al")
		}
		g.emit("  movzb %%al, %%rax")
	default:
		g.failf("internal error: invalid operator: %s", op)
	}
}

// stmt emits code for one statement.
func (g *generator) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ReturnStmt:
		g.expr(s.X)
		g.emit("  jmp .L.return")

	case *syntax.ExprStmt:
		g.expr(s.X)

	case *syntax.BlockStmt:
		for _, st := range s.Stmts {
			g.stmt(st)
			if g.depth != 0 {
				g.failf("internal error: evaluation stack depth %d after statement", g.depth)
			}
		}

	case *syntax.IfStmt:
		c := g.count()
		g.expr(s.Cond)
		g.emit("  cmp $0, %%rax")
		g.emit("  je .L.else.%d", c)
		g.stmt(s.Then)
		g.emit("  jmp .L.end.%d", c)
		g.emit(".L.else.%d:", c)
		if s.Else != nil {
			g.stmt(s.Else)
		}
		g.emit(".L.end.%d:", c)

	case *syntax.ForStmt:
		c := g.count()
		if s.Init != nil {
			g.stmt(s.Init)
		}
		g.emit(".L.begin.%d:", c)
		if s.Cond != nil {
			g.expr(s.Cond)
			g.emit("  cmp $0, %%rax")
			g.emit("  je .L.end.%d", c)
		}
		g.stmt(s.Body)
		if s.Post != nil {
			g.expr(s.Post)
		}
		g.emit("  jmp .L.begin.%d", c)
		g.emit(".L.end.%d:", c)

	default:
		g.failf("internal error: invalid statement: %T", s)
	}
}
