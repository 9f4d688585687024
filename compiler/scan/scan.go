package scan

import (
	"context"
	"strconv"
	"unicode/utf8"

	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler/diag"
	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	// Spaces is a set of bytes below 64 to be skipped.
	Spaces uint64

	Scanner struct {
		b    []byte
		line int

		toks []token.Token
		log  *diag.Log
	}
)

// Space is the set of blank bytes except newline,
// which is handled separately to count lines.
var Space = NewSpaces(' ', '\t', '\r')

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) && s.Has(b[i]) {
		i++
	}

	return
}

func (s Spaces) Has(c byte) bool {
	return c < 64 && s&(1<<c) != 0
}

// Scan splits src into tokens.
// Lexical errors go to l and never stop the scan.
// Result always ends with exactly one EOF token.
func Scan(ctx context.Context, src []byte, l *diag.Log) []token.Token {
	s := New(src, l)

	return s.Scan(ctx)
}

func New(src []byte, l *diag.Log) *Scanner {
	if l == nil {
		l = diag.New(nil)
	}

	return &Scanner{
		b:    src,
		line: 1,
		log:  l,
	}
}

func (s *Scanner) Scan(ctx context.Context) []token.Token {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "scan", "size", len(s.b))
	defer func() {
		tr.Finish("tokens", len(s.toks), "errors", s.log.Len())
	}()

	errs := s.log.Len()

	for i := 0; i < len(s.b); {
		i = s.next(ctx, i)
	}

	s.emit(token.EOF, "")

	if tr.If("dump_tokens") {
		for _, tk := range s.toks {
			tr.Printw("token", "tk", tk)
		}
	}

	if n := s.log.Len() - errs; n != 0 {
		tr.Printw("lexical errors", "n", n)
	}

	return s.toks
}

func (s *Scanner) next(ctx context.Context, st int) (i int) {
	b := s.b
	i = Space.Skip(b, st)

	if i == len(b) {
		return i
	}

	c := b[i]

	switch {
	case c == '\n':
		s.line++
		return i + 1
	case c == '/' && i+1 < len(b) && b[i+1] == '/':
		return skipLine(b, i)
	case c == '=' && i+1 < len(b) && b[i+1] == '>':
		s.emit(token.ARROW, "=>")
		return i + 2
	case c == ',':
		s.emit(token.COMMA, ",")
		return i + 1
	case isDigit(c):
		e := skipNum(b, i)
		s.emit(token.NUMBER, string(b[i:e]))
		return e
	case isIdentStart(c):
		e := skipIdent(b, i)
		s.word(ctx, string(b[i:e]))
		return e
	}

	r, size := utf8.DecodeRune(b[i:])

	s.log.Report(ctx, s.line, "", "Unexpected character "+strconv.QuoteRune(r))

	return i + size
}

func (s *Scanner) word(ctx context.Context, w string) {
	if c, ok := token.Lookup(w); ok {
		s.emit(c, w)
		return
	}

	if isRegister(w) {
		s.emit(token.REGISTER, w)
		return
	}

	s.log.Report(ctx, s.line, " at '"+w+"'", "Unknown word")
}

func (s *Scanner) emit(c token.Category, lexeme string) {
	s.toks = append(s.toks, token.Token{
		Cat:    c,
		Lexeme: lexeme,
		Line:   s.line,
	})
}

func isRegister(w string) bool {
	return len(w) > 1 && w[0] == 'r' && skipNum([]byte(w), 1) == len(w)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func skipNum(b []byte, i int) int {
	for i < len(b) && isDigit(b[i]) {
		i++
	}

	return i
}

func skipIdent(b []byte, i int) int {
	for i < len(b) && (isIdentStart(b[i]) || isDigit(b[i])) {
		i++
	}

	return i
}

func skipLine(b []byte, i int) int {
	for i < len(b) && b[i] != '\n' {
		i++
	}

	return i
}
