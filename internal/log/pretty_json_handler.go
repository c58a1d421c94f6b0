package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

// NewPrettyJSONHandler returns a [slog.JSONHandler] that optionally indents every record. Handlers
// derived via WithAttrs or WithGroup keep indenting.
func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	if opts.PrettyPrint {
		w = &indentWriter{writer: w}
	}

	return slog.NewJSONHandler(w, &opts.HandlerOptions)
}

// indentWriter relies on slog.JSONHandler writing each record with a single call to Write.
type indentWriter struct {
	mu     sync.Mutex
	writer io.Writer
	buf    bytes.Buffer
}

func (w *indentWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Reset()
	if err := json.Indent(&w.buf, p, "", "  "); err != nil {
		// write the record as is rather than losing it
		return w.writer.Write(p)
	}

	if _, err := w.writer.Write(w.buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
