package parse

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler/diag"
	"github.com/ilocfe/ilocfe/compiler/ir"
	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	Parser struct {
		toks []token.Token
		pos  int

		log *diag.Log
	}

	// Shape is the sequence of token categories following an opcode.
	Shape []token.Category
)

// Grammar maps each instruction-introducing category to its shape.
// Registers and numbers become operands, commas and arrows are separators.
var Grammar = map[token.Category]Shape{
	token.ADD:    {token.REGISTER, token.COMMA, token.REGISTER, token.ARROW, token.REGISTER},
	token.SUB:    {token.REGISTER, token.COMMA, token.REGISTER, token.ARROW, token.REGISTER},
	token.MULT:   {token.REGISTER, token.COMMA, token.REGISTER, token.ARROW, token.REGISTER},
	token.LSHIFT: {token.REGISTER, token.COMMA, token.REGISTER, token.ARROW, token.REGISTER},
	token.RSHIFT: {token.REGISTER, token.COMMA, token.REGISTER, token.ARROW, token.REGISTER},

	token.LOAD:  {token.REGISTER, token.ARROW, token.REGISTER},
	token.STORE: {token.REGISTER, token.ARROW, token.REGISTER},
	token.LOADI: {token.NUMBER, token.ARROW, token.REGISTER},

	token.OUTPUT: {token.NUMBER},
	token.NOP:    {},
}

// Parse builds operations from toks.
// Only fully matched instructions are returned.
// hadError is set if l has any diagnostics after the pass,
// so scanner errors reported to the same l count too.
func Parse(ctx context.Context, toks []token.Token, l *diag.Log) (ops []ir.Operation, hadError bool) {
	p := New(toks, l)

	ops = p.Parse(ctx)

	return ops, p.log.HadError()
}

func New(toks []token.Token, l *diag.Log) *Parser {
	if l == nil {
		l = diag.New(nil)
	}

	if len(toks) == 0 || toks[len(toks)-1].Cat != token.EOF {
		line := 1
		if len(toks) != 0 {
			line = toks[len(toks)-1].Line
		}

		toks = append(toks[:len(toks):len(toks)], token.Token{Cat: token.EOF, Line: line})
	}

	return &Parser{
		toks: toks,
		log:  l,
	}
}

func (p *Parser) Parse(ctx context.Context) (ops []ir.Operation) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "tokens", len(p.toks))
	defer func() {
		tr.Finish("ops", len(ops), "errors", p.log.Len())
	}()

	for !p.atEnd() {
		x := p.next(ctx)
		if x == nil {
			continue
		}

		ops = append(ops, x)
	}

	if tr.If("dump_ops") {
		for i, x := range ops {
			tr.Printw("op", "i", i, "typ", tlog.NextAsType, x, "op", x)
		}
	}

	return ops
}

// next parses one instruction starting at the current token.
// It always consumes at least one token unless at EOF.
func (p *Parser) next(ctx context.Context) ir.Operation {
	tk := p.peek()

	shape, ok := Grammar[tk.Cat]
	if !ok {
		p.log.ReportAt(ctx, tk, "Unexpected token")
		p.advance()

		return nil
	}

	return p.instruction(ctx, shape)
}

func (p *Parser) instruction(ctx context.Context, shape Shape) ir.Operation {
	op := p.advance()

	args := make([]token.Token, 0, len(shape))
	failed := false

	for k, c := range shape {
		tk, ok := p.expect(ctx, shape[k:], !failed)
		if !ok {
			failed = true
		}

		if c == token.COMMA || c == token.ARROW {
			continue
		}

		args = append(args, tk)
	}

	if failed {
		return nil
	}

	switch len(args) {
	case 0:
		return ir.Nullary{Op: op}
	case 1:
		return ir.Unary{Op: op, First: args[0]}
	case 2:
		return ir.Binary{Op: op, First: args[0], Second: args[1]}
	case 3:
		return ir.Ternary{Op: op, First: args[0], Second: args[1], Third: args[2]}
	default:
		panic(len(args))
	}
}

// expect consumes the current token if it is of category want[0].
// Otherwise it reports if asked to and returns an ERROR placeholder
// carrying the found lexeme. The mismatched token is taken as missing
// and left in place if it fits want[1], or if it is an opcode or EOF.
// Else it is taken as a wrong token and skipped.
func (p *Parser) expect(ctx context.Context, want Shape, report bool) (token.Token, bool) {
	tk := p.peek()

	if tk.Cat == want[0] {
		return p.advance(), true
	}

	if report {
		p.log.ReportAt(ctx, tk, "Expected "+describe(want[0])+" but found "+found(tk))
	}

	missing := tk.Cat == token.EOF || tk.Cat.IsOpcode() || len(want) > 1 && tk.Cat == want[1]
	if !missing {
		p.advance()
	}

	return token.Token{
		Cat:    token.ERROR,
		Lexeme: tk.Lexeme,
		Line:   tk.Line,
	}, false
}

func (p *Parser) advance() token.Token {
	tk := p.peek()

	if !p.atEnd() {
		p.pos++
	}

	return tk
}

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) atEnd() bool { return p.peek().Cat == token.EOF }

func describe(c token.Category) string {
	switch c {
	case token.REGISTER:
		return "register"
	case token.NUMBER:
		return "number"
	case token.COMMA:
		return "','"
	case token.ARROW:
		return "'=>'"
	default:
		return c.String()
	}
}

func found(tk token.Token) string {
	if tk.Cat == token.EOF {
		return "end of input"
	}

	return "'" + tk.Lexeme + "'"
}
