package liner

import (
	"io"
	"iter"
	"strings"
)

var std = New()

// Lines formats the elements of seq followed by those of each sequence in
// more, using the default settings. See [Renderer.Lines].
func Lines(seq iter.Seq[any], more ...iter.Seq[any]) iter.Seq2[string, error] {
	return std.Lines(seq, more...)
}

// Render joins the default-formatted lines of seq and more with newlines.
// See [Renderer.Render].
func Render(seq iter.Seq[any], more ...iter.Seq[any]) (string, error) {
	return std.Render(seq, more...)
}

// Write streams the default-formatted lines of seq and more to w.
// See [Renderer.Write].
func Write(w io.Writer, seq iter.Seq[any], more ...iter.Seq[any]) error {
	return std.Write(w, seq, more...)
}

// Lines returns a lazy sequence of formatted lines. The elements of seq come
// first, then those of each sequence in more, in argument order. Each element
// is pulled from its sequence only when the consumer asks for the next line,
// so infinite inputs work as long as the consumer stops.
//
// The returned sequence is exactly as restartable as its inputs: ranging over
// it twice re-ranges the inputs. When the formatter fails, the sequence yields
// ("", err) and stops.
func (r *Renderer) Lines(seq iter.Seq[any], more ...iter.Seq[any]) iter.Seq2[string, error] {
	elements := concat(seq, more)
	return func(yield func(string, error) bool) {
		for element := range elements {
			line, err := r.formatter(element, r.prefix, r.template)
			if err != nil {
				yield("", err)
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Render drains [Renderer.Lines] and joins the lines with the separator.
// An empty input renders as "". The first formatter error is returned
// unchanged together with "".
func (r *Renderer) Render(seq iter.Seq[any], more ...iter.Seq[any]) (string, error) {
	var sb strings.Builder
	if err := r.Write(&sb, seq, more...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the same text [Renderer.Render] returns, one line at a time,
// as the lines are produced. Lines written before an error stay written.
func (r *Renderer) Write(w io.Writer, seq iter.Seq[any], more ...iter.Seq[any]) error {
	first := true
	for line, err := range r.Lines(seq, more...) {
		if err != nil {
			return err
		}
		if !first {
			if _, err := io.WriteString(w, r.separator); err != nil {
				return err
			}
		}
		first = false
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func concat(seq iter.Seq[any], more []iter.Seq[any]) iter.Seq[any] {
	seqs := make([]iter.Seq[any], 0, len(more)+1)
	seqs = append(seqs, seq)
	seqs = append(seqs, more...)
	return Concat(seqs...)
}
