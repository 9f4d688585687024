package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nikandfor/hacked/hfmt"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler"
	"github.com/ilocfe/ilocfe/compiler/diag"
	"github.com/ilocfe/ilocfe/compiler/format"
)

type (
	mode int

	exitError struct {
		code int
		err  error
	}
)

const (
	modeParse mode = iota
	modeScan
	modeRepr
)

// Exit codes.
const (
	exitNoArgs = 64
	exitFailed = 69
)

const help = `
ILOC front end
Usage: ilocfe [flags] filename...
Optional Flags:
-h = Shows a list of valid command-line arguments
-s = Reads the file and prints the tokens from the scanner
-p = Reads the file, scans and parses it and reports success or all errors it encountered (default)
-r = Reads the file, scans and parses it and prints the intermediate representation in readable form
-d = Logs compiler passes to stderr
`

func main() {
	app := &cli.Command{
		Name:        "ilocfe",
		Description: "ilocfe scans and parses ILOC source files",
		Action:      run,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("help,h", false, "show usage"),
			cli.NewFlag("scan,s", false, "print tokens"),
			cli.NewFlag("parse,p", false, "report parse success or failure"),
			cli.NewFlag("repr,r", false, "print intermediate representation"),
			cli.NewFlag("debug,d", false, "log compiler passes to stderr"),
		},
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stdout, help)
		os.Exit(exitNoArgs)
	}

	err := cli.Run(app, os.Args, os.Environ())

	os.Exit(exitCode(os.Stderr, err))
}

func run(c *cli.Command) (err error) {
	if c.Bool("help") || len(c.Args) == 0 {
		fmt.Fprint(os.Stdout, help)
		return exitError{code: exitFailed}
	}

	m := pickMode(c.Bool("scan"), c.Bool("parse"), c.Bool("repr"))

	ctx := context.Background()
	if c.Bool("debug") {
		ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	}

	sink := diag.WriterSink{W: os.Stderr}
	failed := false

	for _, a := range c.Args {
		res, err := compiler.CompileFile(ctx, a, sink)
		if err != nil {
			return exitError{code: exitFailed, err: errors.Wrap(err, "compile %v", a)}
		}

		var b []byte

		if len(c.Args) > 1 {
			b = append(b, a...)
			b = append(b, ":\n"...)
		}

		b = output(ctx, b, m, res)

		_, err = os.Stdout.Write(b)
		if err != nil {
			return errors.Wrap(err, "write")
		}

		failed = failed || res.HadError()
	}

	if failed {
		return exitError{code: exitFailed}
	}

	return nil
}

// pickMode chooses the mode by priority: repr, then parse, then scan.
func pickMode(scan, parse, repr bool) mode {
	switch {
	case repr:
		return modeRepr
	case parse:
		return modeParse
	case scan:
		return modeScan
	default:
		return modeParse
	}
}

func output(ctx context.Context, b []byte, m mode, res *compiler.Result) []byte {
	switch m {
	case modeScan:
		return format.Tokens(b, res.Tokens)
	case modeRepr:
		if res.HadError() {
			return append(b, "File Parsing Failed\n"...)
		}

		b = hfmt.Appendf(b, "Parsing Successful %d ILOC operations\n", len(res.Ops))

		return format.Listing(ctx, b, res.Ops)
	default:
		if res.HadError() {
			return append(b, "File Parsing Failed\n"...)
		}

		return hfmt.Appendf(b, "Parsed Successfully %d ILOC operations\n", len(res.Ops))
	}
}

func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var ee exitError
	if !errors.As(err, &ee) {
		fmt.Fprintf(w, "error: %v\n", err)
		return exitFailed
	}

	if ee.err != nil {
		fmt.Fprintf(w, "error: %v\n", ee.err)
	}

	return ee.code
}

func (e exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}

	return e.err.Error()
}

func (e exitError) Unwrap() error { return e.err }
