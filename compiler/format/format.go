package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler/ir"
	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	// listing renders operations in ILOC syntax.
	listing struct {
		b []byte
		d int
	}

	// dump renders the structure of an operation.
	dump struct {
		b []byte
	}
)

// Listing appends ops to b one per line in ILOC syntax.
func Listing(ctx context.Context, b []byte, ops []ir.Operation) []byte {
	return listOps(ctx, b, ops, 0)
}

// Indented is Listing with each line prefixed by d tabs.
func Indented(ctx context.Context, b []byte, ops []ir.Operation, d int) []byte {
	return listOps(ctx, b, ops, d)
}

func listOps(ctx context.Context, b []byte, ops []ir.Operation, d int) []byte {
	tr := tlog.SpanFromContext(ctx)

	p := listing{b: b, d: d}

	for i, x := range ops {
		x.Accept(&p)

		if tr.If("format") {
			tr.Printw("format op", "i", i, "op", x)
		}
	}

	return p.b
}

// Dump appends the structure of x, like Binary(LOADI, 5, r1).
func Dump(b []byte, x ir.Operation) []byte {
	p := dump{b: b}

	x.Accept(&p)

	return p.b
}

// Tokens appends toks one per line.
func Tokens(b []byte, toks []token.Token) []byte {
	for _, tk := range toks {
		b = hfmt.Appendf(b, "%v\n", tk)
	}

	return b
}

func (p *listing) Nullary(op token.Token) {
	p.b = app(p.b, p.d, "%s\n", op.Lexeme)
}

func (p *listing) Unary(op, a token.Token) {
	p.b = app(p.b, p.d, "%s %s\n", op.Lexeme, a.Lexeme)
}

func (p *listing) Binary(op, a, b token.Token) {
	p.b = app(p.b, p.d, "%s %s => %s\n", op.Lexeme, a.Lexeme, b.Lexeme)
}

func (p *listing) Ternary(op, a, b, c token.Token) {
	p.b = app(p.b, p.d, "%s %s, %s => %s\n", op.Lexeme, a.Lexeme, b.Lexeme, c.Lexeme)
}

func (p *dump) Nullary(op token.Token) {
	p.b = hfmt.Appendf(p.b, "None(%v)", op.Cat)
}

func (p *dump) Unary(op, a token.Token) {
	p.b = hfmt.Appendf(p.b, "Unary(%v, %s)", op.Cat, a.Lexeme)
}

func (p *dump) Binary(op, a, b token.Token) {
	p.b = hfmt.Appendf(p.b, "Binary(%v, %s, %s)", op.Cat, a.Lexeme, b.Lexeme)
}

func (p *dump) Ternary(op, a, b, c token.Token) {
	p.b = hfmt.Appendf(p.b, "Ternary(%v, %s, %s, %s)", op.Cat, a.Lexeme, b.Lexeme, c.Lexeme)
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
