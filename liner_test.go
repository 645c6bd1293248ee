package liner_test

import (
	"bytes"
	"errors"
	"iter"
	"slices"
	"sync"
	"testing"

	"github.com/bjaus/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

var (
	errBoom        = errors.New("boom")
	errWriteFailed = errors.New("write failed")
)

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

// failAfterN fails on the (n+1)th call to Write.
type failAfterN struct {
	n     int
	calls int
}

func (f *failAfterN) Write(p []byte) (int, error) {
	if f.calls >= f.n {
		return 0, errWriteFailed
	}
	f.calls++
	return len(p), nil
}

func collect(t *testing.T, lines iter.Seq2[string, error]) []string {
	t.Helper()
	var out []string
	for line, err := range lines {
		require.NoError(t, err)
		out = append(out, line)
	}
	return out
}

// ============================================================
// Tests
// ============================================================

func TestRender(t *testing.T) {
	t.Parallel()
	bla := func(any, string, string) (string, error) { return "bla", nil }
	tests := map[string]struct {
		opts []liner.Option
		seq  iter.Seq[any]
		want string
	}{
		"defaults":  {seq: liner.Values(1, 2, 3), want: "- 1\n- 2\n- 3"},
		"empty":     {seq: liner.Values(), want: ""},
		"prefix":    {opts: []liner.Option{liner.WithPrefix("*")}, seq: liner.Values(1, 2, 3), want: "* 1\n* 2\n* 3"},
		"template":  {opts: []liner.Option{liner.WithTemplate("{element} {prefix}")}, seq: liner.Values(1, 2, 3), want: "1 -\n2 -\n3 -"},
		"formatter": {opts: []liner.Option{liner.WithFormatter(bla)}, seq: liner.Values(1, 2, 3), want: "bla\nbla\nbla"},
		"separator": {opts: []liner.Option{liner.WithSeparator(", ")}, seq: liner.Values(1, 2, 3), want: "- 1, - 2, - 3"},
		"single":    {seq: liner.Values("only"), want: "- only"},
		"strings":   {seq: liner.Slice([]string{"a", "b"}), want: "- a\n- b"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := liner.New(tt.opts...).Render(tt.seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderPackageDefaults(t *testing.T) {
	t.Parallel()
	got, err := liner.Render(liner.Values(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n- 3", got)
}

func TestRenderMatchesFormatItem(t *testing.T) {
	t.Parallel()
	elems := []any{0, "x", 2.5, true, nil, []int{1, 2}}
	var want []string
	for _, e := range elems {
		line, err := liner.FormatItem(e, liner.DefaultPrefix, liner.DefaultTemplate)
		require.NoError(t, err)
		want = append(want, line)
	}
	got, err := liner.Render(liner.Values(elems...))
	require.NoError(t, err)
	assert.Equal(t, want, splitLines(got))
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestFormatItem(t *testing.T) {
	t.Parallel()
	got, err := liner.FormatItem(1, "*", "[{prefix}] {element}")
	require.NoError(t, err)
	assert.Equal(t, "[*] 1", got)
}

func TestLines(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		opts []liner.Option
		want []string
	}{
		"defaults": {want: []string{"- 1", "- 2", "- 3"}},
		"prefix":   {opts: []liner.Option{liner.WithPrefix("*")}, want: []string{"* 1", "* 2", "* 3"}},
		"template": {opts: []liner.Option{liner.WithTemplate("{element} {prefix}")}, want: []string{"1 -", "2 -", "3 -"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := collect(t, liner.New(tt.opts...).Lines(liner.Values(1, 2, 3)))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinesConcatenatesInOrder(t *testing.T) {
	t.Parallel()
	got := collect(t, liner.Lines(liner.Values(1, 2), liner.Values(3)))
	assert.Equal(t, []string{"- 1", "- 2", "- 3"}, got)
}

func TestLinesMixedSources(t *testing.T) {
	t.Parallel()
	ch := make(chan string, 1)
	ch <- "c"
	close(ch)
	got := collect(t, liner.Lines(
		liner.Values("a"),
		liner.Slice([]int{1}),
		liner.From(slices.Values([]float64{2.5})),
		liner.Chan(ch),
		liner.Values(),
	))
	assert.Equal(t, []string{"- a", "- 1", "- 2.5", "- c"}, got)
}

func TestLinesIsLazy(t *testing.T) {
	t.Parallel()
	pulled := 0
	naturals := func(yield func(any) bool) {
		for i := 0; ; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}
	var got []string
	for line, err := range liner.Lines(naturals) {
		require.NoError(t, err)
		got = append(got, line)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"- 0", "- 1", "- 2"}, got)
	assert.Equal(t, 3, pulled)
}

func TestLinesDoesNotPullBeforeDemand(t *testing.T) {
	t.Parallel()
	pulled := 0
	seq := func(yield func(any) bool) {
		pulled++
		yield(1)
	}
	lines := liner.Lines(seq)
	assert.Zero(t, pulled)
	collect(t, lines)
	assert.Equal(t, 1, pulled)
}

func TestLinesSinglePassInput(t *testing.T) {
	t.Parallel()
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	seq := liner.Chan(ch)

	first, err := liner.Render(seq)
	require.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n- 3", first)

	second, err := liner.Render(seq)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestLinesReiterableInput(t *testing.T) {
	t.Parallel()
	seq := liner.Values(1, 2)
	lines := liner.Lines(seq)
	assert.Equal(t, collect(t, lines), collect(t, lines))
}

func TestLinesStopsAtFirstError(t *testing.T) {
	t.Parallel()
	calls := 0
	failOnTwo := func(e any, p, tmpl string) (string, error) {
		calls++
		if e == 2 {
			return "", errBoom
		}
		return liner.FormatItem(e, p, tmpl)
	}
	var lines []string
	var errs []error
	for line, err := range liner.New(liner.WithFormatter(failOnTwo)).Lines(liner.Values(1, 2, 3)) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"- 1"}, lines)
	require.Len(t, errs, 1)
	assert.Equal(t, errBoom, errs[0])
	assert.Equal(t, 2, calls)
}

func TestRenderFormatterErrorPassesThrough(t *testing.T) {
	t.Parallel()
	fail := func(any, string, string) (string, error) { return "", errBoom }
	got, err := liner.New(liner.WithFormatter(fail)).Render(liner.Values(1))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, errBoom, err)
	assert.Empty(t, got)
}

func TestRenderTemplateError(t *testing.T) {
	t.Parallel()
	_, err := liner.New(liner.WithTemplate("{nope}")).Render(liner.Values(1))
	require.ErrorIs(t, err, liner.ErrInvalidTemplate)
	require.ErrorIs(t, err, liner.ErrUnknownPlaceholder)
}

func TestRenderBadTemplateWithoutElements(t *testing.T) {
	t.Parallel()
	got, err := liner.New(liner.WithTemplate("{nope}")).Render(liner.Values())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderConcurrent(t *testing.T) {
	t.Parallel()
	r := liner.New(liner.WithPrefix("*"))
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = r.Render(liner.Values(i, i))
		}()
	}
	wg.Wait()
	for i, got := range results {
		want, err := liner.FormatItem(i, "*", liner.DefaultTemplate)
		require.NoError(t, err)
		assert.Equal(t, want+"\n"+want, got)
	}
}

// --- Write ---

func TestWrite(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := liner.Write(&buf, liner.Values(1, 2), liner.Values(3))
	require.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n- 3", buf.String())
}

func TestWriteEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, liner.Write(&buf, liner.Values()))
	assert.Empty(t, buf.String())
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		n int
	}{
		"first line":  {n: 0},
		"separator":   {n: 1},
		"second line": {n: 2},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := liner.Write(&failAfterN{n: tt.n}, liner.Values(1, 2))
			require.ErrorIs(t, err, errWriteFailed)
		})
	}
}

func TestWriteErrWriter(t *testing.T) {
	t.Parallel()
	err := liner.New().Write(&errWriter{}, liner.Values("x"))
	require.ErrorIs(t, err, errWriteFailed)
}

func TestWriteKeepsLinesBeforeError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := liner.New(liner.WithTemplate("{element[0]}")).Write(&buf, liner.Values([]int{7}, []int{}))
	require.ErrorIs(t, err, liner.ErrConversion)
	assert.Equal(t, "7", buf.String())
}

// --- Options and adapters ---

func TestNewDefaults(t *testing.T) {
	t.Parallel()
	r := liner.New()
	assert.Equal(t, liner.DefaultPrefix, r.Prefix())
	assert.Equal(t, liner.DefaultTemplate, r.Template())
	assert.Equal(t, liner.DefaultSeparator, r.Separator())
}

func TestWithFormatterNilKeepsDefault(t *testing.T) {
	t.Parallel()
	got, err := liner.New(liner.WithFormatter(nil)).Render(liner.Values(1))
	require.NoError(t, err)
	assert.Equal(t, "- 1", got)
}

func TestConcatSkipsNil(t *testing.T) {
	t.Parallel()
	got := slices.Collect(liner.Concat(nil, liner.Values(1), nil, liner.Values(2)))
	assert.Equal(t, []any{1, 2}, got)
}

func TestConcatStopsEarly(t *testing.T) {
	t.Parallel()
	var got []any
	for v := range liner.Concat(liner.Values(1, 2), liner.Values(3)) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []any{1, 2}, got)
}

func TestNilSequenceIsEmpty(t *testing.T) {
	t.Parallel()
	got, err := liner.Render(nil, liner.Values(1))
	require.NoError(t, err)
	assert.Equal(t, "- 1", got)
}
