package liner

import "errors"

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidTemplate      = errors.New("invalid template")
	ErrUnknownPlaceholder   = errors.New("unknown placeholder")
	ErrConversion           = errors.New("cannot convert element to text")
	ErrUnsupportedFormatter = errors.New("unsupported formatter")
)

// Defaults used by [New] and the package-level functions.
const (
	DefaultPrefix     = "-"
	DefaultTemplate   = "{prefix} {element}"
	DefaultSeparator  = "\n"
	DefaultGoTemplate = "{{.Prefix}} {{.Element}}"
)

// Formatter turns one element into its line of text. The prefix and template
// are passed through unchanged from the [Renderer] settings; how they are
// interpreted is up to the formatter. Errors are returned to the caller of
// [Renderer.Lines] and [Renderer.Render] as-is.
type Formatter func(element any, prefix, template string) (string, error)

// FormatItem substitutes element and prefix into the {element} and {prefix}
// slots of template. It is the default [Formatter].
//
//	FormatItem(1, "*", "[{prefix}] {element}") // "[*] 1", nil
//
// The template syntax is described in [ParseTemplate].
func FormatItem(element any, prefix, template string) (string, error) {
	t, err := ParseTemplate(template)
	if err != nil {
		return "", err
	}
	return t.Execute(element, prefix)
}

// Renderer formats elements into lines and joins them. A Renderer is
// immutable once built and may be shared between goroutines.
type Renderer struct {
	prefix    string
	template  string
	formatter Formatter
	separator string
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithPrefix sets the prefix passed to the formatter.
// Default: [DefaultPrefix].
func WithPrefix(prefix string) Option {
	return func(r *Renderer) { r.prefix = prefix }
}

// WithTemplate sets the template passed to the formatter.
// Default: [DefaultTemplate].
func WithTemplate(template string) Option {
	return func(r *Renderer) { r.template = template }
}

// WithFormatter replaces the per-element formatter. A nil formatter keeps
// [FormatItem].
func WithFormatter(f Formatter) Option {
	return func(r *Renderer) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithSeparator sets the string placed between lines by [Renderer.Render]
// and [Renderer.Write]. Default: newline.
func WithSeparator(sep string) Option {
	return func(r *Renderer) { r.separator = sep }
}

// New returns a Renderer with the defaults overridden by opts.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		prefix:    DefaultPrefix,
		template:  DefaultTemplate,
		formatter: FormatItem,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prefix returns the configured prefix.
func (r *Renderer) Prefix() string { return r.prefix }

// Template returns the configured template.
func (r *Renderer) Template() string { return r.template }

// Separator returns the configured line separator.
func (r *Renderer) Separator() string { return r.separator }

