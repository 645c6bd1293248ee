package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bjaus/liner"
)

// Config holds everything one liner invocation needs.
type Config struct {
	Prefix    string
	Template  string
	Separator string // Go escape sequences such as \n and \t are interpreted
	Formatter string
	Verbose   bool
	Paths     []string // "-" or empty means stdin
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if _, err := liner.ParseFormatter(c.Formatter); err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(liner.FormatterNames(), ", "))
	}
	if _, err := unescape(c.Separator); err != nil {
		return fmt.Errorf("invalid separator %q: %w", c.Separator, err)
	}
	return nil
}

// Renderer validates the config and builds the renderer it describes.
func (c *Config) Renderer() (*liner.Renderer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f, _ := liner.ParseFormatter(c.Formatter)
	sep, _ := unescape(c.Separator)
	return liner.New(
		liner.WithPrefix(c.Prefix),
		liner.WithTemplate(c.Template),
		liner.WithSeparator(sep),
		liner.WithFormatter(f),
	), nil
}

// unescape interprets Go escape sequences in s. Bare double quotes are
// literal; escaped ones stay as they are.
func unescape(s string) (string, error) {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
			if i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
			}
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(s[i])
		}
	}
	sb.WriteByte('"')
	return strconv.Unquote(sb.String())
}
