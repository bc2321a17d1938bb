package insightful

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriterPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := WriterPrinter(&buf)
	p.Print("Insight: a")
	p.Print("Insight: b")

	assert.Equal(t, "Insight: a\nInsight: b\n", buf.String())
}

func TestSlogPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := SlogPrinter(slog.New(slog.NewTextHandler(&buf, nil)))
	p.Print("Insight: Test().N = 1")

	assert.Contains(t, buf.String(), `level=INFO`)
	assert.Contains(t, buf.String(), `msg="Insight: Test().N = 1"`)
}

func TestZapPrinter(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	p := ZapPrinter(zap.New(core))
	p.Print("Insight: Test().N = 1")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Insight: Test().N = 1", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
}

func TestColorize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPrefix, colorize(DefaultPrefix, termenv.Ascii))
	assert.Equal(t, "", colorize("", termenv.TrueColor))

	colored := colorize(DefaultPrefix, termenv.TrueColor)
	assert.NotEqual(t, DefaultPrefix, colored)
	assert.True(t, strings.HasPrefix(colored, "\x1b["), "colored prefix %q", colored)
	assert.Contains(t, colored, DefaultPrefix)
}

func TestWithColorProfile(t *testing.T) {
	var buf bytes.Buffer
	i := New(&fixture{N: 1}, WithOutput(&buf), WithColorProfile(termenv.ANSI256))
	assert.True(t, i.Config().Color)

	p := MustObserve(&fixture{N: 1})
	require.NoError(t, i.Run(func() error {
		_, err := p.Get("N")
		return err
	}))

	assert.True(t, strings.HasPrefix(buf.String(), "\x1b["), "line %q", buf.String())
	assert.Contains(t, buf.String(), "Insight: fixture{N:1 S:}.N -> 1")
}
