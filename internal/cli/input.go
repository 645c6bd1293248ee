package cli

import (
	"bufio"
	"io"
	"iter"
	"os"
)

const maxLineSize = 1024 * 1024

// inputs turns paths into lazily read line sequences. Files are opened when
// rendering reaches them and closed as soon as they are drained. The first
// failure stops every later sequence.
type inputs struct {
	stdin  io.Reader
	err    error
	failed string
}

func (in *inputs) sequences(paths []string) []iter.Seq[any] {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	seqs := make([]iter.Seq[any], len(paths))
	for i, path := range paths {
		seqs[i] = in.lines(path)
	}
	return seqs
}

func (in *inputs) lines(path string) iter.Seq[any] {
	return func(yield func(any) bool) {
		if in.err != nil {
			return
		}
		r := in.stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				in.fail(path, err)
				return
			}
			defer f.Close()
			r = f
		}
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for sc.Scan() {
			if !yield(sc.Text()) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			in.fail(path, err)
		}
	}
}

func (in *inputs) fail(path string, err error) {
	in.err, in.failed = err, path
}
