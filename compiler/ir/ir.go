package ir

import (
	"tlog.app/go/tlog/tlwire"

	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	// Operation is one ILOC instruction.
	// The set of implementations is closed: Nullary, Unary, Binary and Ternary.
	Operation interface {
		Accept(v Inspector)
		Opcode() token.Token

		operation()
	}

	// Inspector receives the opcode and operands of an Operation
	// in source order. Implementations must handle every arity.
	Inspector interface {
		Nullary(op token.Token)
		Unary(op, first token.Token)
		Binary(op, first, second token.Token)
		Ternary(op, first, second, third token.Token)
	}

	// Visitor is an Inspector producing a value. See Visit.
	Visitor[R any] interface {
		Nullary(op token.Token) R
		Unary(op, first token.Token) R
		Binary(op, first, second token.Token) R
		Ternary(op, first, second, third token.Token) R
	}

	// Nullary is nop.
	Nullary struct {
		Op token.Token
	}

	// Unary is output.
	Unary struct {
		Op    token.Token
		First token.Token
	}

	// Binary is load, store and loadi.
	Binary struct {
		Op     token.Token
		First  token.Token
		Second token.Token
	}

	// Ternary is add, sub, mult, lshift and rshift.
	// By convention First and Second are sources and Third is the destination,
	// but nothing here relies on that.
	Ternary struct {
		Op     token.Token
		First  token.Token
		Second token.Token
		Third  token.Token
	}

	visit[R any] struct {
		v Visitor[R]
		r R
	}

	operands []token.Token
)

func Visit[R any](x Operation, v Visitor[R]) R {
	w := visit[R]{v: v}

	x.Accept(&w)

	return w.r
}

// Operands returns operand tokens of x left to right, opcode excluded.
func Operands(x Operation) []token.Token {
	var l operands

	x.Accept(&l)

	return l
}

func (x Nullary) Accept(v Inspector) { v.Nullary(x.Op) }
func (x Unary) Accept(v Inspector)   { v.Unary(x.Op, x.First) }
func (x Binary) Accept(v Inspector)  { v.Binary(x.Op, x.First, x.Second) }
func (x Ternary) Accept(v Inspector) { v.Ternary(x.Op, x.First, x.Second, x.Third) }

func (x Nullary) Opcode() token.Token { return x.Op }
func (x Unary) Opcode() token.Token   { return x.Op }
func (x Binary) Opcode() token.Token  { return x.Op }
func (x Ternary) Opcode() token.Token { return x.Op }

func (Nullary) operation() {}
func (Unary) operation()   {}
func (Binary) operation()  {}
func (Ternary) operation() {}

func (w *visit[R]) Nullary(op token.Token) {
	w.r = w.v.Nullary(op)
}

func (w *visit[R]) Unary(op, a token.Token) {
	w.r = w.v.Unary(op, a)
}

func (w *visit[R]) Binary(op, a, b token.Token) {
	w.r = w.v.Binary(op, a, b)
}

func (w *visit[R]) Ternary(op, a, b, c token.Token) {
	w.r = w.v.Ternary(op, a, b, c)
}

func (l *operands) Nullary(op token.Token) {
	*l = operands{}
}

func (l *operands) Unary(op, a token.Token) {
	*l = operands{a}
}

func (l *operands) Binary(op, a, b token.Token) {
	*l = operands{a, b}
}

func (l *operands) Ternary(op, a, b, c token.Token) {
	*l = operands{a, b, c}
}

func (x Nullary) TlogAppend(b []byte) []byte { return appendOp(b, x) }
func (x Unary) TlogAppend(b []byte) []byte   { return appendOp(b, x) }
func (x Binary) TlogAppend(b []byte) []byte  { return appendOp(b, x) }
func (x Ternary) TlogAppend(b []byte) []byte { return appendOp(b, x) }

func appendOp(b []byte, x Operation) []byte {
	var e tlwire.Encoder

	args := Operands(x)

	b = e.AppendMap(b, 3)

	b = e.AppendKeyString(b, "op", x.Opcode().Lexeme)
	b = e.AppendKeyInt(b, "line", x.Opcode().Line)

	b = e.AppendString(b, "args")
	b = e.AppendTag(b, tlwire.Array, len(args))

	for _, a := range args {
		b = e.AppendString(b, a.Lexeme)
	}

	return b
}
