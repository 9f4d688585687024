package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilocfe/ilocfe/compiler/diag"
	"github.com/ilocfe/ilocfe/compiler/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Log) {
	t.Helper()

	l := diag.New(nil)
	toks := Scan(context.Background(), []byte(src), l)

	require.NotEmpty(t, toks)
	require.Equal(t, token.EOF, toks[len(toks)-1].Cat, "last token")

	for _, x := range toks[:len(toks)-1] {
		require.NotEqual(t, token.EOF, x.Cat, "EOF in the middle: %v", toks)
		require.NotEqual(t, token.ERROR, x.Cat, "scanner must not emit ERROR")
	}

	return toks, l
}

func TestInstructions(t *testing.T) {
	toks, l := scan(t, "add r1, r2 => r3\nloadi 17 => r10\n")
	require.False(t, l.HadError(), "%v", l.List)

	assert.Equal(t, []token.Token{
		{Cat: token.ADD, Lexeme: "add", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r1", Line: 1},
		{Cat: token.COMMA, Lexeme: ",", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r2", Line: 1},
		{Cat: token.ARROW, Lexeme: "=>", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r3", Line: 1},
		{Cat: token.LOADI, Lexeme: "loadi", Line: 2},
		{Cat: token.NUMBER, Lexeme: "17", Line: 2},
		{Cat: token.ARROW, Lexeme: "=>", Line: 2},
		{Cat: token.REGISTER, Lexeme: "r10", Line: 2},
		{Cat: token.EOF, Lexeme: "", Line: 3},
	}, toks)
}

func TestKeywords(t *testing.T) {
	for w, c := range token.Keywords {
		toks, l := scan(t, w)
		require.False(t, l.HadError(), w)
		assert.Equal(t, []token.Token{{Cat: c, Lexeme: w, Line: 1}, {Cat: token.EOF, Line: 1}}, toks, w)
	}
}

func TestMaximalMunch(t *testing.T) {
	toks, l := scan(t, "loadi loadi1 r007 12345=>r1,r2")

	assert.Equal(t, []token.Token{
		{Cat: token.LOADI, Lexeme: "loadi", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r007", Line: 1},
		{Cat: token.NUMBER, Lexeme: "12345", Line: 1},
		{Cat: token.ARROW, Lexeme: "=>", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r1", Line: 1},
		{Cat: token.COMMA, Lexeme: ",", Line: 1},
		{Cat: token.REGISTER, Lexeme: "r2", Line: 1},
		{Cat: token.EOF, Line: 1},
	}, toks)

	require.Equal(t, 1, l.Len())
	assert.Equal(t, diag.Error{Line: 1, Where: " at 'loadi1'", Msg: "Unknown word"}, l.List[0])
}

func TestBlankInput(t *testing.T) {
	for _, src := range []string{
		"",
		" \t\r",
		"\n\n\n",
		"// comment only",
		"  // a\n\t// b => r1, nop\n",
	} {
		toks, l := scan(t, src)

		assert.False(t, l.HadError(), "%q", src)
		assert.Len(t, toks, 1, "%q", src)
	}

	toks, _ := scan(t, "")
	assert.Equal(t, 1, toks[0].Line)

	toks, _ = scan(t, "\n\n\n")
	assert.Equal(t, 4, toks[0].Line)
}

func TestCommentStopsAtNewline(t *testing.T) {
	toks, l := scan(t, "nop // output 5\nnop")
	require.False(t, l.HadError())

	assert.Equal(t, []token.Token{
		{Cat: token.NOP, Lexeme: "nop", Line: 1},
		{Cat: token.NOP, Lexeme: "nop", Line: 2},
		{Cat: token.EOF, Line: 2},
	}, toks)
}

func TestLexicalErrors(t *testing.T) {
	toks, l := scan(t, "add r1 # r2\n= / => R1 r é\noutput 1")

	assert.Equal(t, []token.Category{
		token.ADD, token.REGISTER, token.REGISTER,
		token.ARROW,
		token.OUTPUT, token.NUMBER,
		token.EOF,
	}, cats(toks))

	assert.Equal(t, diag.List{
		{Line: 1, Msg: "Unexpected character '#'"},
		{Line: 2, Msg: "Unexpected character '='"},
		{Line: 2, Msg: "Unexpected character '/'"},
		{Line: 2, Where: " at 'R1'", Msg: "Unknown word"},
		{Line: 2, Where: " at 'r'", Msg: "Unknown word"},
		{Line: 2, Msg: "Unexpected character 'é'"},
	}, l.List)

	assert.Equal(t, 3, toks[len(toks)-1].Line)
}

func TestTrailingPunct(t *testing.T) {
	_, l := scan(t, "loadi 1 =")
	assert.Equal(t, 1, l.Len())

	_, l = scan(t, "nop /")
	assert.Equal(t, 1, l.Len())
}

func TestConcatenation(t *testing.T) {
	a := "loadi 5 => r1\n// note\nadd r1, r1 => r2\n"
	b := "output 5\n\nstore r2 => r1\nnop\n"

	ta, _ := scan(t, a)
	tb, _ := scan(t, b)
	tab, _ := scan(t, a+b)

	lines := ta[len(ta)-1].Line - 1

	var exp []token.Token
	exp = append(exp, ta[:len(ta)-1]...)

	for _, x := range tb {
		x.Line += lines
		exp = append(exp, x)
	}

	assert.Equal(t, exp, tab)
}

func TestSpaces(t *testing.T) {
	ss := NewSpaces(' ', '\t')

	assert.True(t, ss.Has(' '))
	assert.False(t, ss.Has('\n'))
	assert.False(t, ss.Has('a'))
	assert.Equal(t, 3, ss.Skip([]byte(" \t x"), 0))

	assert.Panics(t, func() { NewSpaces('a') })
}

func TestNilLog(t *testing.T) {
	toks := Scan(context.Background(), []byte("foo nop"), nil)

	assert.Equal(t, []token.Token{
		{Cat: token.NOP, Lexeme: "nop", Line: 1},
		{Cat: token.EOF, Line: 1},
	}, toks)
}

func cats(toks []token.Token) (r []token.Category) {
	for _, x := range toks {
		r = append(r, x.Cat)
	}

	return r
}
