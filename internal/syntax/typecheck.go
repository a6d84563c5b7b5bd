package syntax

import "github.com/occ-lang/occ/internal/types"

// addType decorates n's subtree with types, bottom up. It is
// idempotent: an expression that already carries a type is left
// alone, so nodes pre-typed by the parser (pointer arithmetic,
// dereferences, address-of) keep the types assigned at construction.
//
// After a statement has been through addType, every expression
// reachable from it has a non-nil type.
func addType(n Node) {
	if n == nil {
		return
	}
	if e, ok := n.(Expr); ok && e.Type() != nil {
		return
	}

	switch n := n.(type) {
	case *NumLit:
		n.setType(types.Int)

	case *VarRef:
		n.setType(n.Obj.Type)

	case *BinaryExpr:
		addType(n.X)
		addType(n.Y)
		switch n.Op {
		case Add, Sub, Mul, Div:
			n.setType(n.X.Type())
		default: // comparisons yield int
			n.setType(types.Int)
		}

	case *NegExpr:
		addType(n.X)
		n.setType(n.X.Type())

	case *AssignExpr:
		addType(n.LHS)
		addType(n.RHS)
		n.setType(n.LHS.Type())

	case *AddrExpr:
		addType(n.X)
		n.setType(types.PointerTo(n.X.Type()))

	case *DerefExpr:
		// The parser rejects dereference of a non-pointer, so Elem is
		// always non-nil here.
		addType(n.X)
		n.setType(types.Elem(n.X.Type()))

	case *CallExpr:
		n.setType(types.Int)

	case *ExprStmt:
		addType(n.X)

	case *ReturnStmt:
		addType(n.X)

	case *BlockStmt:
		for _, s := range n.Stmts {
			addType(s)
		}

	case *IfStmt:
		addType(n.Cond)
		addType(n.Then)
		addType(n.Else)

	case *ForStmt:
		addType(n.Init)
		addType(n.Cond)
		addType(n.Post)
		addType(n.Body)
	}
}
