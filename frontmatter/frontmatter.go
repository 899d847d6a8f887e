// Package frontmatter splits a Markdown/MDX document into its metadata
// header and body. YAML headers are fenced by "---" lines, TOML headers by
// "+++" lines.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names the header syntax of a document.
type Format string

const (
	FormatNone Format = ""
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var delimiters = map[string]Format{
	"---": FormatYAML,
	"+++": FormatTOML,
}

// ErrUnterminated is returned when an opening fence has no closing fence.
var ErrUnterminated = errors.New("frontmatter: missing closing delimiter")

// Document is a parsed source document.
type Document struct {
	Format Format
	Fields map[string]any
	Body   string
}

// Parse reads the front matter header of data. A document without a header
// yields an empty field map and the whole input as body.
func Parse(data []byte) (Document, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	first, rest, found := strings.Cut(text, "\n")
	delim := strings.TrimRight(first, " \t\r")
	format, ok := delimiters[delim]
	if !ok {
		return Document{Fields: map[string]any{}, Body: text}, nil
	}
	if !found {
		return Document{}, ErrUnterminated
	}

	var header strings.Builder
	for {
		line, next, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, " \t\r") == delim {
			fields, err := decode(format, header.String())
			if err != nil {
				return Document{}, err
			}
			return Document{Format: format, Fields: fields, Body: next}, nil
		}
		if !more {
			return Document{}, ErrUnterminated
		}
		header.WriteString(line)
		header.WriteByte('\n')
		rest = next
	}
}

func decode(format Format, src string) (map[string]any, error) {
	fields := map[string]any{}
	if strings.TrimSpace(src) == "" {
		return fields, nil
	}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(src), &fields); err != nil {
			return nil, fmt.Errorf("frontmatter: yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal([]byte(src), &fields); err != nil {
			return nil, fmt.Errorf("frontmatter: toml: %w", err)
		}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	for k, v := range fields {
		fields[k] = normalize(v)
	}
	return fields, nil
}

// normalize reduces decoder-specific values to plain Go types: TOML local
// dates become time.Time and mappings get string keys.
func normalize(v any) any {
	switch t := v.(type) {
	case toml.LocalDate:
		return t.AsTime(time.UTC)
	case toml.LocalDateTime:
		return t.AsTime(time.UTC)
	case toml.LocalTime:
		return t.String()
	case map[string]any:
		for k, x := range t {
			t[k] = normalize(x)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, x := range t {
			m[fmt.Sprint(k)] = normalize(x)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	}
	return v
}
