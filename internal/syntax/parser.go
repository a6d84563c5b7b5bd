package syntax

import (
	"fmt"

	"github.com/occ-lang/occ/internal/types"
)

// parser holds the token cursor and the current function's locals.
// All parser state is explicit; nothing lives at package level.
type parser struct {
	src    string
	toks   []Token
	i      int // index of the current token
	locals []*Obj
}

// Parse parses the token sequence produced by Tokenize(src) into a
// single function. There is no error recovery: the first grammar or
// type violation aborts the parse and is returned as an *Error.
//
// Internally the parser bails out with panic(*Error); the recover here
// is the only way out of deep recursion without threading an error
// return through every production.
func Parse(src string, toks []Token) (fn *Function, err error) {
	defer func() {
		if e := recover(); e != nil {
			d, ok := e.(*Error)
			if !ok {
				panic(e)
			}
			fn, err = nil, d
		}
	}()

	p := &parser{src: src, toks: toks}
	open := p.tok()
	p.skip("{")
	body := p.compoundStmt(open.Off)
	if p.tok().Kind != EOF {
		p.errorf(p.tok().Off, "extra token")
	}
	return &Function{Name: "main", Body: body, Locals: p.locals}, nil
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the current token.
func (p *parser) tok() Token { return p.toks[p.i] }

// next consumes and returns the current token. The trailing EOF token
// is never consumed.
func (p *parser) next() Token {
	t := p.toks[p.i]
	if t.Kind != EOF {
		p.i++
	}
	return t
}

// skip consumes the punctuator or keyword lit, aborting the parse if
// the current token is anything else.
func (p *parser) skip(lit string) {
	if !p.tok().Is(lit) {
		p.errorf(p.tok().Off, "expected '%s'", lit)
	}
	p.next()
}

// consume consumes lit if it is the current token and reports whether
// it did.
func (p *parser) consume(lit string) bool {
	if p.tok().Is(lit) {
		p.next()
		return true
	}
	return false
}

// errorf aborts the parse with a diagnostic at the given offset.
func (p *parser) errorf(off int, format string, args ...interface{}) {
	panic(&Error{Src: p.src, Off: off, Msg: fmt.Sprintf(format, args...)})
}

// ----------------------------------------------------------------------------
// Locals

// findVar resolves name against the current function's locals.
func (p *parser) findVar(name string) *Obj {
	for _, v := range p.locals {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// newLVar declares a new local variable.
func (p *parser) newLVar(name string, ty types.Type) *Obj {
	v := &Obj{Name: name, Type: ty}
	p.locals = append(p.locals, v)
	return v
}

// ----------------------------------------------------------------------------
// Node construction helpers

func (p *parser) newNum(val int64, off int) *NumLit {
	n := &NumLit{Val: val}
	n.off = off
	return n
}

func (p *parser) newBinary(op Op, x, y Expr, off int) *BinaryExpr {
	n := &BinaryExpr{Op: op, X: x, Y: y}
	n.off = off
	return n
}

// newAssign builds an assignment after verifying the target is an
// lvalue.
func (p *parser) newAssign(lhs, rhs Expr, off int) *AssignExpr {
	p.checkLValue(lhs)
	n := &AssignExpr{LHS: lhs, RHS: rhs}
	n.off = off
	return n
}

// checkLValue aborts the parse unless x designates a storage
// location. Only variables and dereferences are lvalues.
func (p *parser) checkLValue(x Expr) {
	switch x.(type) {
	case *VarRef, *DerefExpr:
	default:
		p.errorf(x.Off(), "not an lvalue")
	}
}

// newAdd builds lhs + rhs. C's + is overloaded: adding an integer to
// a pointer advances by elements, so the integer operand is scaled by
// the word size. Adding two pointers is invalid.
func (p *parser) newAdd(lhs, rhs Expr, off int) Expr {
	addType(lhs)
	addType(rhs)

	// num + num
	if types.IsInteger(lhs.Type()) && types.IsInteger(rhs.Type()) {
		return p.newBinary(Add, lhs, rhs, off)
	}
	if types.IsPointer(lhs.Type()) && types.IsPointer(rhs.Type()) {
		p.errorf(off, "invalid operands")
	}

	// Canonicalize num + ptr to ptr + num.
	if types.IsPointer(rhs.Type()) {
		lhs, rhs = rhs, lhs
	}

	// ptr + num
	scaled := p.newBinary(Mul, rhs, p.newScale(lhs.Type(), off), off)
	scaled.setType(types.Int)
	n := p.newBinary(Add, lhs, scaled, off)
	n.setType(lhs.Type())
	return n
}

// newScale builds the int literal a pointer-arithmetic operand is
// scaled by: the size of ty's pointee.
func (p *parser) newScale(ty types.Type, off int) *NumLit {
	n := p.newNum(int64(types.Sizeof(types.Elem(ty))), off)
	n.setType(types.Int)
	return n
}

// newSub builds lhs - rhs. Like +, - is overloaded for pointers:
// ptr - num scales the integer operand, and ptr - ptr yields the
// number of elements between the two pointers.
func (p *parser) newSub(lhs, rhs Expr, off int) Expr {
	addType(lhs)
	addType(rhs)

	switch {
	// num - num
	case types.IsInteger(lhs.Type()) && types.IsInteger(rhs.Type()):
		return p.newBinary(Sub, lhs, rhs, off)

	// ptr - num
	case types.IsPointer(lhs.Type()) && types.IsInteger(rhs.Type()):
		scaled := p.newBinary(Mul, rhs, p.newScale(lhs.Type(), off), off)
		scaled.setType(types.Int)
		n := p.newBinary(Sub, lhs, scaled, off)
		n.setType(lhs.Type())
		return n

	// ptr - ptr
	case types.IsPointer(lhs.Type()) && types.IsPointer(rhs.Type()):
		diff := p.newBinary(Sub, lhs, rhs, off)
		diff.setType(types.Int)
		n := p.newBinary(Div, diff, p.newScale(lhs.Type(), off), off)
		n.setType(types.Int)
		return n
	}

	p.errorf(off, "invalid operands")
	return nil
}

// ----------------------------------------------------------------------------
// Declarations

// declarator = "*"* IDENT
func (p *parser) declarator(base types.Type) (types.Type, Token) {
	ty := base
	for p.consume("*") {
		ty = types.PointerTo(ty)
	}
	name := p.tok()
	if name.Kind != Ident {
		p.errorf(name.Off, "expected a variable name")
	}
	p.next()
	return ty, name
}

// declaration = "int" (declarator ("=" assign)? ("," declarator ("=" assign)?)*)? ";"
//
// Each initialized declarator becomes an assignment expression
// statement inside an anonymous block.
func (p *parser) declaration() Stmt {
	start := p.tok()
	p.skip("int")

	b := &BlockStmt{}
	b.off = start.Off

	for i := 0; !p.tok().Is(";"); i++ {
		if i > 0 {
			p.skip(",")
		}
		ty, name := p.declarator(types.Int)
		v := p.newLVar(name.Text, ty)

		if !p.tok().Is("=") {
			continue
		}
		eq := p.next()
		lhs := &VarRef{Obj: v}
		lhs.off = name.Off
		assign := p.newAssign(lhs, p.assign(), eq.Off)

		s := &ExprStmt{X: assign}
		s.off = eq.Off
		b.Stmts = append(b.Stmts, s)
	}
	p.next() // ;
	return b
}

// ----------------------------------------------------------------------------
// Statements

// stmt = "return" expr ";"
//      | "if" "(" expr ")" stmt ("else" stmt)?
//      | "for" "(" expr-stmt expr? ";" expr? ")" stmt
//      | "while" "(" expr ")" stmt
//      | "{" compound-stmt
//      | expr-stmt
func (p *parser) stmt() Stmt {
	tok := p.tok()
	switch {
	case tok.Is("return"):
		p.next()
		s := &ReturnStmt{X: p.expr()}
		s.off = tok.Off
		p.skip(";")
		return s

	case tok.Is("if"):
		s := &IfStmt{}
		s.off = tok.Off
		p.next()
		p.skip("(")
		s.Cond = p.expr()
		p.skip(")")
		s.Then = p.stmt()
		if p.consume("else") {
			s.Else = p.stmt()
		}
		return s

	case tok.Is("for"):
		s := &ForStmt{}
		s.off = tok.Off
		p.next()
		p.skip("(")
		s.Init = p.exprStmt()
		if !p.tok().Is(";") {
			s.Cond = p.expr()
		}
		p.skip(";")
		if !p.tok().Is(")") {
			s.Post = p.expr()
		}
		p.skip(")")
		s.Body = p.stmt()
		return s

	case tok.Is("while"):
		s := &ForStmt{}
		s.off = tok.Off
		p.next()
		p.skip("(")
		s.Cond = p.expr()
		p.skip(")")
		s.Body = p.stmt()
		return s

	case tok.Is("{"):
		p.next()
		return p.compoundStmt(tok.Off)
	}
	return p.exprStmt()
}

// compound-stmt = (declaration | stmt)* "}"
//
// The opening brace has already been consumed; off is its offset.
// Each statement is fully typed as soon as it is parsed.
func (p *parser) compoundStmt(off int) *BlockStmt {
	b := &BlockStmt{}
	b.off = off
	for !p.consume("}") {
		var s Stmt
		if p.tok().Is("int") {
			s = p.declaration()
		} else {
			s = p.stmt()
		}
		addType(s)
		b.Stmts = append(b.Stmts, s)
	}
	return b
}

// expr-stmt = expr? ";"
//
// The empty statement parses as an empty block.
func (p *parser) exprStmt() Stmt {
	tok := p.tok()
	if p.consume(";") {
		b := &BlockStmt{}
		b.off = tok.Off
		return b
	}
	s := &ExprStmt{X: p.expr()}
	s.off = tok.Off
	p.skip(";")
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expr = assign
func (p *parser) expr() Expr { return p.assign() }

// assign = equality ("=" assign)?
//
// Assignment is right-associative: a=b=1 assigns 1 to b, then to a.
func (p *parser) assign() Expr {
	x := p.equality()
	if tok := p.tok(); tok.Is("=") {
		p.next()
		return p.newAssign(x, p.assign(), tok.Off)
	}
	return x
}

// equality = relational (("==" | "!=") relational)*
func (p *parser) equality() Expr {
	x := p.relational()
	for {
		tok := p.tok()
		switch {
		case tok.Is("=="):
			p.next()
			x = p.newBinary(Eq, x, p.relational(), tok.Off)
		case tok.Is("!="):
			p.next()
			x = p.newBinary(Ne, x, p.relational(), tok.Off)
		default:
			return x
		}
	}
}

// relational = add (("<" | "<=" | ">" | ">=") add)*
//
// a > b and a >= b are canonicalized by swapping the operands, so the
// code generator only ever sees < and <=.
func (p *parser) relational() Expr {
	x := p.add()
	for {
		tok := p.tok()
		switch {
		case tok.Is("<"):
			p.next()
			x = p.newBinary(Lt, x, p.add(), tok.Off)
		case tok.Is("<="):
			p.next()
			x = p.newBinary(Le, x, p.add(), tok.Off)
		case tok.Is(">"):
			p.next()
			x = p.newBinary(Lt, p.add(), x, tok.Off)
		case tok.Is(">="):
			p.next()
			x = p.newBinary(Le, p.add(), x, tok.Off)
		default:
			return x
		}
	}
}

// add = mul (("+" | "-") mul)*
func (p *parser) add() Expr {
	x := p.mul()
	for {
		tok := p.tok()
		switch {
		case tok.Is("+"):
			p.next()
			x = p.newAdd(x, p.mul(), tok.Off)
		case tok.Is("-"):
			p.next()
			x = p.newSub(x, p.mul(), tok.Off)
		default:
			return x
		}
	}
}

// mul = unary (("*" | "/") unary)*
func (p *parser) mul() Expr {
	x := p.unary()
	for {
		tok := p.tok()
		switch {
		case tok.Is("*"):
			p.next()
			x = p.newBinary(Mul, x, p.unary(), tok.Off)
		case tok.Is("/"):
			p.next()
			x = p.newBinary(Div, x, p.unary(), tok.Off)
		default:
			return x
		}
	}
}

// unary = ("+" | "-" | "*" | "&") unary | primary
func (p *parser) unary() Expr {
	tok := p.tok()
	switch {
	case tok.Is("+"):
		p.next()
		return p.unary()

	case tok.Is("-"):
		p.next()
		n := &NegExpr{X: p.unary()}
		n.off = tok.Off
		return n

	case tok.Is("*"):
		p.next()
		x := p.unary()
		addType(x)
		if !types.IsPointer(x.Type()) {
			p.errorf(tok.Off, "invalid pointer dereference")
		}
		n := &DerefExpr{X: x}
		n.off = tok.Off
		n.setType(types.Elem(x.Type()))
		return n

	case tok.Is("&"):
		p.next()
		x := p.unary()
		p.checkLValue(x)
		addType(x)
		n := &AddrExpr{X: x}
		n.off = tok.Off
		n.setType(types.PointerTo(x.Type()))
		return n
	}
	return p.primary()
}

// primary = "(" expr ")" | IDENT args? | NUM
// args = "(" ")"
func (p *parser) primary() Expr {
	tok := p.tok()
	switch {
	case tok.Is("("):
		p.next()
		x := p.expr()
		p.skip(")")
		return x

	case tok.Kind == Num:
		p.next()
		return p.newNum(tok.Val, tok.Off)

	case tok.Kind == Ident:
		p.next()

		// Function call
		if p.consume("(") {
			p.skip(")")
			n := &CallExpr{Name: tok.Text}
			n.off = tok.Off
			n.setType(types.Int)
			return n
		}

		// Variable
		v := p.findVar(tok.Text)
		if v == nil {
			p.errorf(tok.Off, "undefined variable")
		}
		n := &VarRef{Obj: v}
		n.off = tok.Off
		return n
	}

	p.errorf(tok.Off, "expected an expression")
	return nil
}
