// Package liner renders sequences of values as lists of formatted lines.
//
// Each element is formatted by a [Formatter] with a prefix and a template,
// and the resulting lines are joined with a separator. The defaults produce a
// dash list:
//
//	s, _ := liner.Render(liner.Values(1, 2, 3))
//	// - 1
//	// - 2
//	// - 3
//
// # Templates
//
// The default formatter, [FormatItem], fills the {prefix} and {element}
// slots of a template. Fields accept attribute and index access, a
// conversion and a format spec:
//
//	liner.FormatItem(user, "*", "{prefix} {element.Name:<10} {element.Age:>3}")
//
// See [ParseTemplate] for the full syntax. Templates are parsed each time an
// element is formatted, so a broken template only fails once there is an
// element to format.
//
// # Renderers
//
// [New] builds a [Renderer] with functional options:
//
//	r := liner.New(liner.WithPrefix("*"), liner.WithTemplate("{element} {prefix}"))
//	s, err := r.Render(liner.Slice(names))
//
// [WithFormatter] swaps the per-element formatter. Besides [FormatItem] the
// package ships [GoTemplateFormatter], [JSONFormatter] and [YAMLFormatter];
// [ParseFormatter] looks them up by name for CLI flags.
//
// # Sequences
//
// Input is any number of iter.Seq[any] values, consumed in argument order.
// [Values], [Slice], [From] and [Chan] adapt common sources. [Renderer.Lines]
// is lazy: an element is pulled only when the next line is requested, so an
// infinite sequence can be rendered as long as the consumer stops.
// [Renderer.Write] streams lines to an io.Writer as they are produced.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidTemplate] — malformed template or unknown placeholder
//   - [ErrUnknownPlaceholder] — a slot other than {prefix} or {element}
//   - [ErrConversion] — an element cannot be turned into text
//   - [ErrUnsupportedFormatter] — unknown formatter name
//
// Errors returned by a custom formatter are passed through unchanged.
package liner
