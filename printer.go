package insightful

import (
	"io"
	"log/slog"
	"sync"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

// Printer receives every line an Insight produces, prefix included, in the order the
// observed operations happen.
type Printer interface {
	Print(line string)
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(line string)

func (f PrinterFunc) Print(line string) {
	f(line)
}

type writerPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

// WriterPrinter writes each line to w, unbuffered, terminated by a newline.
func WriterPrinter(w io.Writer) Printer {
	return &writerPrinter{w: w}
}

func (p *writerPrinter) Print(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, line+"\n")
}

// SlogPrinter logs each line as an info record.
func SlogPrinter(l *slog.Logger) Printer {
	return PrinterFunc(func(line string) {
		l.Info(line)
	})
}

// ZapPrinter logs each line as an info entry.
func ZapPrinter(l *zap.Logger) Printer {
	return PrinterFunc(func(line string) {
		l.Info(line)
	})
}

const prefixColor = "#818cf8"

// colorize styles the prefix for terminals. With the Ascii profile it is unchanged.
func colorize(prefix string, p termenv.Profile) string {
	if prefix == "" {
		return prefix
	}
	return p.String(prefix).Foreground(p.Color(prefixColor)).String()
}
