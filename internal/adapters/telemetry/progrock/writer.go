package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/drub/internal/ui/output"
	"go.trai.ch/drub/internal/ui/style"
)

// LinearWriter renders status updates as chronological lines with target name
// prefixes. No cursor movement, so the output stays readable in CI logs and
// when piped. Partial log lines are buffered until a newline arrives.
type LinearWriter struct {
	stdout io.Writer
	stderr io.Writer
	out    *termenv.Output

	mu      sync.Mutex
	names   map[string]string
	started map[string]time.Time
	done    map[string]bool
	buffers map[string]*bytes.Buffer
}

// NewLinearWriter creates a LinearWriter. Captured target output goes to
// stdout, progress lines to stderr.
func NewLinearWriter(stdout, stderr io.Writer) *LinearWriter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &LinearWriter{
		stdout:  stdout,
		stderr:  stderr,
		out:     output.New(stderr),
		names:   make(map[string]string),
		started: make(map[string]time.Time),
		done:    make(map[string]bool),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// WriteStatus implements progrock.Writer.
func (w *LinearWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, v := range update.Vertexes {
		id := v.GetId()
		if _, ok := w.names[id]; ok {
			continue
		}
		w.names[id] = v.GetName()
		w.started[id] = time.Now()
		w.buffers[id] = new(bytes.Buffer)

		prefix := w.out.String("[" + v.GetName() + "]").Faint().String()
		_, _ = fmt.Fprintf(w.stderr, "%s starting\n", prefix)
	}

	for _, l := range update.Logs {
		id := l.GetVertex()
		buf, ok := w.buffers[id]
		if !ok {
			buf = new(bytes.Buffer)
			w.buffers[id] = buf
		}
		buf.Write(l.GetData())
		w.drainLinesLocked(id)
	}

	for _, v := range update.Vertexes {
		id := v.GetId()
		if w.done[id] {
			continue
		}

		switch {
		case v.GetCached():
			w.done[id] = true
			w.flushLocked(id)
			sym := w.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
			_, _ = fmt.Fprintf(w.stderr, "[%s] %s cached\n", w.names[id], sym)
		case v.GetCompleted() != nil:
			w.done[id] = true
			w.flushLocked(id)
			dur := time.Since(w.started[id]).Round(time.Millisecond)
			if v.Error != nil {
				sym := w.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
				_, _ = fmt.Fprintf(w.stderr, "[%s] %s failed after %v: %s\n", w.names[id], sym, dur, v.GetError())
			} else {
				sym := w.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
				_, _ = fmt.Fprintf(w.stderr, "[%s] %s done in %v\n", w.names[id], sym, dur)
			}
		}
	}

	return nil
}

// Close flushes any buffered partial lines.
func (w *LinearWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for id := range w.buffers {
		w.flushLocked(id)
	}
	return nil
}

// drainLinesLocked prints every complete line buffered for the vertex.
func (w *LinearWriter) drainLinesLocked(id string) {
	buf := w.buffers[id]
	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, keep it buffered.
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				w.buffers[id] = rest
			}
			return
		}
		w.printLineLocked(id, line)
	}
}

// flushLocked prints whatever remains buffered for the vertex, including a
// trailing partial line.
func (w *LinearWriter) flushLocked(id string) {
	w.drainLinesLocked(id)
	buf := w.buffers[id]
	if buf.Len() > 0 {
		w.printLineLocked(id, buf.Bytes())
		buf.Reset()
	}
}

func (w *LinearWriter) printLineLocked(id string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	name := w.names[id]
	if name == "" {
		name = id
	}
	_, _ = fmt.Fprintf(w.stdout, "[%s] %s\n", name, string(line))
}
