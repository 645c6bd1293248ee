package liner

import (
	"fmt"
	"strings"
)

const (
	prefixSlot  = "prefix"
	elementSlot = "element"
)

// Template is a parsed line template. It is safe for concurrent use.
type Template struct {
	src   string
	parts []part
}

type part struct {
	literal string
	field   *field
}

type field struct {
	name string
	path []accessor
	conv byte
	spec fieldSpec
}

type accessor struct {
	attr bool
	key  string
}

// ParseTemplate parses a line template. Text is copied verbatim except for
// replacement fields in braces:
//
//	{name[.attr|[key]]...[!conv][:spec]}
//
// The name must be "prefix" or "element". Attributes select exported struct
// fields, niladic methods or string map keys; [key] indexes slices, arrays
// and maps. The conversion is one of !s (text, the default), !r (quoted
// representation) or !a (ASCII-only representation). The format spec follows
//
//	[[fill]align][0][width][.precision][type]
//
// with align one of < > ^ = and type one of s d b o x X e f g %. Width and
// precision are limited to 1<<20. Without a type, a float precision counts
// significant digits and fixed notation keeps one decimal, so 1.0 with .3
// renders as "1.0". Use {{ and }} for literal braces.
//
// Syntax errors wrap [ErrInvalidTemplate]; unknown names wrap both
// [ErrInvalidTemplate] and [ErrUnknownPlaceholder].
func ParseTemplate(s string) (*Template, error) {
	t := &Template{src: s}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.parts = append(t.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return nil, syntaxError(s, i, "unclosed '{'")
			}
			body := s[i+1 : i+1+end]
			if strings.IndexByte(body, '{') >= 0 {
				return nil, syntaxError(s, i, "nested replacement fields are not supported")
			}
			f, err := parseField(body)
			if err != nil {
				return nil, fmt.Errorf("%w at offset %d in %q", err, i, s)
			}
			flush()
			t.parts = append(t.parts, part{field: f})
			i += end + 2
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, syntaxError(s, i, "single '}'")
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return t, nil
}

// MustParseTemplate is like [ParseTemplate] but panics on error.
func MustParseTemplate(s string) *Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the source text of the template.
func (t *Template) String() string { return t.src }

// Execute substitutes element and prefix into the template.
// Conversion failures wrap [ErrConversion].
func (t *Template) Execute(element any, prefix string) (string, error) {
	var sb strings.Builder
	for _, p := range t.parts {
		if p.field == nil {
			sb.WriteString(p.literal)
			continue
		}
		var v any = prefix
		if p.field.name == elementSlot {
			v = element
		}
		s, err := p.field.render(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (f *field) render(v any) (string, error) {
	v, err := lookup(v, f.name, f.path)
	if err != nil {
		return "", err
	}
	switch f.conv {
	case 's':
		if v, err = toText(v); err != nil {
			return "", err
		}
	case 'r':
		v = repr(v)
	case 'a':
		v = asciiRepr(v)
	}
	return f.spec.apply(v)
}

func syntaxError(tmpl string, offset int, msg string) error {
	return fmt.Errorf("%w: %s at offset %d in %q", ErrInvalidTemplate, msg, offset, tmpl)
}

// parseField parses the inside of a replacement field. Errors carry no
// position; the caller adds it.
func parseField(body string) (*field, error) {
	// The field name runs to the first '!' or ':' outside brackets.
	end := len(body)
	depth := 0
scan:
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '!', ':':
			if depth == 0 {
				end = i
				break scan
			}
		}
	}
	f := &field{}
	if err := f.parseName(body[:end]); err != nil {
		return nil, err
	}
	rest := body[end:]
	if strings.HasPrefix(rest, "!") {
		if len(rest) < 2 {
			return nil, fmt.Errorf("%w: missing conversion after '!'", ErrInvalidTemplate)
		}
		switch rest[1] {
		case 's', 'r', 'a':
			f.conv = rest[1]
		default:
			return nil, fmt.Errorf("%w: unknown conversion %q", ErrInvalidTemplate, rest[1:2])
		}
		rest = rest[2:]
		if rest != "" && rest[0] != ':' {
			return nil, fmt.Errorf("%w: expected ':' after conversion", ErrInvalidTemplate)
		}
	}
	spec, err := parseSpec(strings.TrimPrefix(rest, ":"))
	if err != nil {
		return nil, err
	}
	f.spec = spec
	return f, nil
}

func (f *field) parseName(s string) error {
	i := strings.IndexAny(s, ".[")
	if i < 0 {
		i = len(s)
	}
	f.name = s[:i]
	if f.name != prefixSlot && f.name != elementSlot {
		return fmt.Errorf("%w: %w %q (want %q or %q)", ErrInvalidTemplate, ErrUnknownPlaceholder, f.name, prefixSlot, elementSlot)
	}
	rest := s[i:]
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			n := strings.IndexAny(rest, ".[")
			if n < 0 {
				n = len(rest)
			}
			if n == 0 {
				return fmt.Errorf("%w: empty attribute in %q", ErrInvalidTemplate, s)
			}
			f.path = append(f.path, accessor{attr: true, key: rest[:n]})
			rest = rest[n:]
		case '[':
			n := strings.IndexByte(rest, ']')
			if n < 0 {
				return fmt.Errorf("%w: missing ']' in %q", ErrInvalidTemplate, s)
			}
			if n == 1 {
				return fmt.Errorf("%w: empty index in %q", ErrInvalidTemplate, s)
			}
			f.path = append(f.path, accessor{key: rest[1:n]})
			rest = rest[n+1:]
		default:
			return fmt.Errorf("%w: only '.' or '[' may follow ']' in %q", ErrInvalidTemplate, s)
		}
	}
	return nil
}
