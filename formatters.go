package liner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

var formatterNames = []string{"text", "go-template", "json", "yaml"}

var formatters = map[string]Formatter{
	"text":        FormatItem,
	"go-template": GoTemplateFormatter,
	"json":        JSONFormatter,
	"yaml":        YAMLFormatter,
}

// FormatterNames returns the names accepted by [ParseFormatter].
func FormatterNames() []string {
	out := make([]string, len(formatterNames))
	copy(out, formatterNames)
	return out
}

// ParseFormatter returns the built-in formatter registered under name.
func ParseFormatter(name string) (Formatter, error) {
	if f, ok := formatters[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormatter, name)
}

type goTemplateData struct {
	Prefix  string
	Element any
}

// GoTemplateFormatter executes template as a Go [text/template] with the
// fields .Prefix and .Element. Use [DefaultGoTemplate] for the equivalent of
// [DefaultTemplate].
func GoTemplateFormatter(element any, prefix, tmpl string) (string, error) {
	t, err := template.New("line").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, goTemplateData{Prefix: prefix, Element: element}); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return sb.String(), nil
}

// JSONFormatter substitutes the compact JSON encoding of element into the
// {element} slot of template. HTML characters are not escaped.
func JSONFormatter(element any, prefix, template string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(element); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return FormatItem(strings.TrimSuffix(buf.String(), "\n"), prefix, template)
}

// YAMLFormatter substitutes the flow-style YAML encoding of element into
// the {element} slot of template, so maps and slices stay on one line.
func YAMLFormatter(element any, prefix, template string) (string, error) {
	text, err := flowYAML(element)
	if err != nil {
		return "", err
	}
	return FormatItem(text, prefix, template)
}

func flowYAML(v any) (text string, err error) {
	// yaml.v3 panics on values it cannot represent, such as funcs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %T: %v", ErrConversion, v, r)
		}
	}()
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	setFlow(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversion, err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func setFlow(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style |= yaml.FlowStyle
	}
	for _, c := range n.Content {
		setFlow(c)
	}
}
