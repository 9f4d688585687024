package token

import (
	"fmt"

	"tlog.app/go/tlog/tlwire"
)

type (
	Category int

	// Token is a lexeme as the scanner matched it.
	// Line is 1-based and points to the line the lexeme starts on.
	Token struct {
		Cat    Category
		Lexeme string
		Line   int
	}
)

const (
	ADD Category = iota
	SUB
	MULT
	LSHIFT
	RSHIFT

	LOAD
	STORE
	LOADI

	OUTPUT
	NOP

	REGISTER
	NUMBER

	COMMA
	ARROW

	EOF

	// ERROR is a parser placeholder for a token that was expected but missing.
	// Scanner never emits it.
	ERROR

	numCategories
)

var names = [numCategories]string{
	ADD:      "ADD",
	SUB:      "SUB",
	MULT:     "MULT",
	LSHIFT:   "LSHIFT",
	RSHIFT:   "RSHIFT",
	LOAD:     "LOAD",
	STORE:    "STORE",
	LOADI:    "LOADI",
	OUTPUT:   "OUTPUT",
	NOP:      "NOP",
	REGISTER: "REGISTER",
	NUMBER:   "NUMBER",
	COMMA:    "COMMA",
	ARROW:    "ARROW",
	EOF:      "EOF",
	ERROR:    "ERROR",
}

// Keywords are opcode spellings. Matching is case-sensitive.
var Keywords = map[string]Category{
	"add":    ADD,
	"sub":    SUB,
	"mult":   MULT,
	"lshift": LSHIFT,
	"rshift": RSHIFT,
	"load":   LOAD,
	"store":  STORE,
	"loadi":  LOADI,
	"output": OUTPUT,
	"nop":    NOP,
}

func Lookup(word string) (c Category, ok bool) {
	c, ok = Keywords[word]
	return
}

func (c Category) IsOpcode() bool {
	return c >= ADD && c <= NOP
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}

	return names[c]
}

func (t Token) String() string {
	return fmt.Sprintf("%d: < %s, %q >", t.Line, t.Cat, t.Lexeme)
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)

	b = e.AppendKeyString(b, "cat", t.Cat.String())
	b = e.AppendKeyString(b, "lexeme", t.Lexeme)
	b = e.AppendKeyInt(b, "line", t.Line)

	return b
}
