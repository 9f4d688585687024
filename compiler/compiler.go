package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler/diag"
	"github.com/ilocfe/ilocfe/compiler/ir"
	"github.com/ilocfe/ilocfe/compiler/parse"
	"github.com/ilocfe/ilocfe/compiler/scan"
	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	// Result of one file pass.
	// Ops holds only the instructions that matched fully,
	// so it is incomplete if Errors is not empty.
	Result struct {
		Name string

		Tokens []token.Token
		Ops    []ir.Operation

		Errors diag.List
	}
)

func CompileFile(ctx context.Context, name string, sink diag.Sink) (res *Result, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text, sink), nil
}

// Compile scans and parses text.
// Diagnostics are sent to sink as they are found and collected into Result.
// Each call has its own diagnostic state.
func Compile(ctx context.Context, name string, text []byte, sink diag.Sink) *Result {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name)

	l := diag.New(sink)

	toks := scan.Scan(ctx, text, l)
	ops, _ := parse.Parse(ctx, toks, l)

	tr.Finish("tokens", len(toks), "ops", len(ops), "errors", l.Len())

	return &Result{
		Name:   name,
		Tokens: toks,
		Ops:    ops,
		Errors: l.List,
	}
}

func (r *Result) HadError() bool { return len(r.Errors) != 0 }
