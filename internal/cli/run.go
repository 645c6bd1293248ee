package cli

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"
)

// Exit codes returned by Run.
const (
	ExitOK          = 0
	ExitRenderError = 1
	ExitUsageError  = 2
)

// Run renders the configured inputs to stdout.
// Returns exit code: 0 = success, 1 = formatting error, 2 = usage or I/O error.
func Run(cfg Config, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  log.WarnLevel,
		Prefix: "liner",
	})
	if cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	r, err := cfg.Renderer()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		return ExitUsageError
	}

	in := &inputs{stdin: stdin}
	seqs := in.sequences(cfg.Paths)
	logger.Debug("rendering", "formatter", cfg.Formatter, "prefix", r.Prefix(), "template", r.Template(), "inputs", len(seqs))

	bw := bufio.NewWriter(stdout)
	cw := &countingWriter{w: bw}
	renderErr := r.Write(cw, seqs[0], seqs[1:]...)
	if cw.err != nil {
		logger.Error("writing output", "err", cw.err)
		return ExitUsageError
	}
	if in.err != nil {
		logger.Error("reading input", "path", in.failed, "err", in.err)
		_ = bw.Flush()
		return ExitUsageError
	}
	if renderErr != nil {
		_ = bw.Flush()
		logger.Error("render failed", "err", renderErr)
		return ExitRenderError
	}
	if cw.n > 0 {
		if _, err := io.WriteString(bw, "\n"); err != nil {
			logger.Error("writing output", "err", err)
			return ExitUsageError
		}
	}
	if err := bw.Flush(); err != nil {
		logger.Error("writing output", "err", err)
		return ExitUsageError
	}
	logger.Debug("done", "bytes", cw.n)
	return ExitOK
}

// countingWriter counts bytes and keeps the first write error so output
// failures are not mistaken for formatting failures.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}
