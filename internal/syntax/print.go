package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented textual dump of fn's typed AST to w.
func Fprint(w io.Writer, fn *Function) {
	p := &printer{w: w}
	p.printf("Function %q\n", fn.Name)
	p.indent++
	if len(fn.Locals) > 0 {
		p.printf("Locals:\n")
		p.indent++
		for _, v := range fn.Locals {
			p.printf("%s %s\n", v.Name, v.Type)
		}
		p.indent--
	}
	p.printf("Body:\n")
	p.indent++
	p.print(fn.Body)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// sub prints a labelled child subtree one level deeper.
func (p *printer) sub(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(n Node) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *BlockStmt:
		p.printf("BlockStmt\n")
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt\n")
		p.indent++
		p.print(n.X)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt\n")
		p.indent++
		p.print(n.X)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt\n")
		p.indent++
		p.sub("Cond", n.Cond)
		p.sub("Then", n.Then)
		if n.Else != nil {
			p.sub("Else", n.Else)
		}
		p.indent--

	case *ForStmt:
		p.printf("ForStmt\n")
		p.indent++
		if n.Init != nil {
			p.sub("Init", n.Init)
		}
		if n.Cond != nil {
			p.sub("Cond", n.Cond)
		}
		if n.Post != nil {
			p.sub("Post", n.Post)
		}
		p.sub("Body", n.Body)
		p.indent--

	case *NumLit:
		p.printf("NumLit %d %s\n", n.Val, typeSuffix(n))

	case *VarRef:
		p.printf("VarRef %q %s\n", n.Obj.Name, typeSuffix(n))

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s\n", n.Op, typeSuffix(n))
		p.indent++
		p.sub("X", n.X)
		p.sub("Y", n.Y)
		p.indent--

	case *NegExpr:
		p.printf("NegExpr %s\n", typeSuffix(n))
		p.indent++
		p.print(n.X)
		p.indent--

	case *AddrExpr:
		p.printf("AddrExpr %s\n", typeSuffix(n))
		p.indent++
		p.print(n.X)
		p.indent--

	case *DerefExpr:
		p.printf("DerefExpr %s\n", typeSuffix(n))
		p.indent++
		p.print(n.X)
		p.indent--

	case *AssignExpr:
		p.printf("AssignExpr %s\n", typeSuffix(n))
		p.indent++
		p.sub("LHS", n.LHS)
		p.sub("RHS", n.RHS)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %q %s\n", n.Name, typeSuffix(n))

	default:
		p.printf("<%T>\n", n)
	}
}

// typeSuffix formats an expression's type for the dump.
func typeSuffix(e Expr) string {
	if e.Type() == nil {
		return "(untyped)"
	}
	return "(" + e.Type().String() + ")"
}
