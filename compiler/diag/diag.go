package diag

import (
	"context"
	"io"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/ilocfe/ilocfe/compiler/token"
)

type (
	// Error is a single source diagnostic.
	Error struct {
		Line  int
		Where string
		Msg   string
	}

	List []Error

	Sink interface {
		Report(ctx context.Context, e Error)
	}

	SinkFunc func(ctx context.Context, e Error)

	WriterSink struct {
		W io.Writer
	}

	// Log collects diagnostics of one scan and parse pass
	// and forwards each one to Sink if set.
	Log struct {
		Sink Sink

		List List
	}
)

func New(sink Sink) *Log {
	return &Log{Sink: sink}
}

func (l *Log) Report(ctx context.Context, line int, where, msg string) {
	e := Error{
		Line:  line,
		Where: where,
		Msg:   msg,
	}

	if tr := tlog.SpanFromContext(ctx); tr.If("diag") {
		tr.Printw("diagnostic", "line", line, "where", where, "msg", msg, "from", loc.Caller(1))
	}

	l.List = append(l.List, e)

	if l.Sink != nil {
		l.Sink.Report(ctx, e)
	}
}

// ReportAt reports msg located at tk.
func (l *Log) ReportAt(ctx context.Context, tk token.Token, msg string) {
	where := " at end"
	if tk.Cat != token.EOF {
		where = " at '" + tk.Lexeme + "'"
	}

	l.Report(ctx, tk.Line, where, msg)
}

func (l *Log) HadError() bool { return l.Len() != 0 }

func (l *Log) Len() int {
	if l == nil {
		return 0
	}

	return len(l.List)
}

func (e Error) Error() string {
	return string(e.Append(nil))
}

func (e Error) Append(b []byte) []byte {
	return hfmt.Appendf(b, "[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}

	return l
}

func (l List) Error() string {
	var b strings.Builder

	for i, e := range l {
		if i != 0 {
			b.WriteByte('\n')
		}

		b.WriteString(e.Error())
	}

	return b.String()
}

func (f SinkFunc) Report(ctx context.Context, e Error) { f(ctx, e) }

func (s WriterSink) Report(ctx context.Context, e Error) {
	b := e.Append(nil)
	b = append(b, '\n')

	_, _ = s.W.Write(b)
}
