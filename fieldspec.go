package liner

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

type fieldSpec struct {
	fill      rune
	align     byte
	zero      bool
	width     int
	precision int
	verb      byte
}

// maxSpecSize bounds width and precision so a template cannot request
// arbitrarily large padding.
const maxSpecSize = 1 << 20

const (
	alignLeft    = '<'
	alignRight   = '>'
	alignCenter  = '^'
	alignPadSign = '='
)

func isAlign(c byte) bool {
	return c == alignLeft || c == alignRight || c == alignCenter || c == alignPadSign
}

func parseSpec(s string) (fieldSpec, error) {
	spec := fieldSpec{fill: ' ', precision: -1}
	if s == "" {
		return spec, nil
	}
	src := s
	explicitFill := false
	if r, size := utf8.DecodeRuneInString(s); size < len(s) && isAlign(s[size]) {
		spec.fill, spec.align = r, s[size]
		explicitFill = true
		s = s[size+1:]
	} else if isAlign(s[0]) {
		spec.align = s[0]
		s = s[1:]
	}
	if strings.HasPrefix(s, "0") {
		spec.zero = true
		if !explicitFill {
			spec.fill = '0'
		}
		s = s[1:]
	}
	var err error
	if n := countDigits(s); n > 0 {
		if spec.width, err = strconv.Atoi(s[:n]); err != nil || spec.width > maxSpecSize {
			return spec, fmt.Errorf("%w: width too large in %q", ErrInvalidTemplate, src)
		}
		s = s[n:]
	}
	if strings.HasPrefix(s, ".") {
		n := countDigits(s[1:])
		if n == 0 {
			return spec, fmt.Errorf("%w: missing precision in %q", ErrInvalidTemplate, src)
		}
		if spec.precision, err = strconv.Atoi(s[1 : 1+n]); err != nil || spec.precision > maxSpecSize {
			return spec, fmt.Errorf("%w: precision too large in %q", ErrInvalidTemplate, src)
		}
		s = s[1+n:]
	}
	if s != "" {
		if len(s) != 1 || !strings.ContainsRune("sdboxXefg%", rune(s[0])) {
			return spec, fmt.Errorf("%w: invalid format spec %q", ErrInvalidTemplate, src)
		}
		spec.verb = s[0]
	}
	return spec, nil
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func (s fieldSpec) apply(v any) (string, error) {
	text, numeric, err := s.format(v)
	if err != nil {
		return "", err
	}
	align := s.align
	if align == 0 {
		switch {
		case numeric && s.zero:
			align = alignPadSign
		case numeric:
			align = alignRight
		default:
			align = alignLeft
		}
	}
	if align == alignPadSign && !numeric {
		return "", fmt.Errorf("%w: '=' alignment not allowed for %T", ErrConversion, v)
	}
	return pad(text, s.width, s.fill, align), nil
}

// format renders v according to the precision and type of the spec. The
// boolean reports whether v was treated as a number.
func (s fieldSpec) format(v any) (string, bool, error) {
	switch v.(type) {
	case string, error, fmt.Stringer, encoding.TextMarshaler:
		return s.formatText(v)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return s.formatInt(v, float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return s.formatInt(v, float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return s.formatFloat(v, rv.Float())
	}
	return s.formatText(v)
}

func (s fieldSpec) formatText(v any) (string, bool, error) {
	if s.verb != 0 && s.verb != 's' {
		return "", false, unknownVerb(s.verb, v)
	}
	text, err := toText(v)
	if err != nil {
		return "", false, err
	}
	if s.precision >= 0 {
		text = runewidth.Truncate(text, s.precision, "")
	}
	return text, false, nil
}

func (s fieldSpec) formatInt(v any, f float64) (string, bool, error) {
	switch s.verb {
	case 0, 'd', 'b', 'o', 'x', 'X':
		if s.precision >= 0 {
			return "", true, fmt.Errorf("%w: precision not allowed for integer %T", ErrConversion, v)
		}
		verb := "%d"
		if s.verb != 0 {
			verb = "%" + string(s.verb)
		}
		return fmt.Sprintf(verb, v), true, nil
	case 'e', 'f', 'g', '%':
		return s.formatFloat(v, f)
	}
	return "", true, unknownVerb(s.verb, v)
}

func (s fieldSpec) formatFloat(v any, f float64) (string, bool, error) {
	p := s.precision
	switch s.verb {
	case 0:
		if p < 0 {
			return fmt.Sprint(v), true, nil
		}
		return generalFloat(f, p), true, nil
	case 'e', 'f', 'g':
		if p < 0 {
			p = 6
		}
		return strconv.FormatFloat(f, s.verb, p, 64), true, nil
	case '%':
		if p < 0 {
			p = 6
		}
		return strconv.FormatFloat(f*100, 'f', p, 64) + "%", true, nil
	}
	return "", true, unknownVerb(s.verb, v)
}

// generalFloat formats f with p significant digits. Fixed notation keeps at
// least one digit after the point and is used while the exponent is in
// [-4, p-1).
func generalFloat(f float64, p int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if p == 0 {
		p = 1
	}
	sci := strconv.FormatFloat(f, 'e', p-1, 64)
	i := strings.LastIndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[i+1:])
	if exp < -4 || exp >= p-1 {
		mantissa := sci[:i]
		if strings.Contains(mantissa, ".") {
			mantissa = strings.TrimRight(strings.TrimRight(mantissa, "0"), ".")
		}
		return mantissa + sci[i:]
	}
	fixed := strconv.FormatFloat(f, 'f', p-1-exp, 64)
	if !strings.Contains(fixed, ".") {
		return fixed + ".0"
	}
	fixed = strings.TrimRight(fixed, "0")
	if strings.HasSuffix(fixed, ".") {
		fixed += "0"
	}
	return fixed
}

func unknownVerb(verb byte, v any) error {
	return fmt.Errorf("%w: unknown format code %q for %T", ErrConversion, verb, v)
}

func pad(text string, width int, fill rune, align byte) string {
	n := width - runewidth.StringWidth(text)
	if n <= 0 {
		return text
	}
	f := string(fill)
	switch align {
	case alignRight:
		return strings.Repeat(f, n) + text
	case alignCenter:
		left := n / 2
		return strings.Repeat(f, left) + text + strings.Repeat(f, n-left)
	case alignPadSign:
		sign := ""
		if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
			sign, text = text[:1], text[1:]
		}
		return sign + strings.Repeat(f, n) + text
	default:
		return text + strings.Repeat(f, n)
	}
}
