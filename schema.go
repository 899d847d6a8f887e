package pubcontent

import (
	"fmt"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// Field names of the blog content collection, as written in front matter.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPubDate     = "pubDate"
	FieldUpdatedDate = "updatedDate"
	FieldHeroImage   = "heroImage"
	FieldTags        = "tags"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindDate
	kindTextList
)

type field struct {
	name     string
	required bool
	kind     fieldKind
	// nonBlank treats whitespace-only text as missing.
	nonBlank bool
}

var schema = []field{
	{name: FieldTitle, required: true, kind: kindText, nonBlank: true},
	{name: FieldDescription, required: true, kind: kindText},
	{name: FieldPubDate, required: true, kind: kindDate},
	{name: FieldUpdatedDate, kind: kindDate},
	{name: FieldHeroImage, kind: kindText},
	{name: FieldTags, kind: kindTextList},
}

// Validate checks a raw front matter mapping against the blog schema and
// returns the canonical entry. Every field is checked; on failure the error
// is a *ValidationError naming each failed field and no entry is returned.
// Keys outside the schema are ignored. A null value counts as absent.
func Validate(raw map[string]any) (Entry, error) {
	values := make(map[string]any, len(schema))
	errs := validation.Errors{}
	for _, f := range schema {
		v, ok := raw[f.name]
		if !ok || v == nil {
			if f.required {
				errs[f.name] = errMissingField
			}
			continue
		}
		out, err := f.coerce(v)
		if err != nil {
			errs[f.name] = err
			continue
		}
		values[f.name] = out
	}
	if len(errs) > 0 {
		return Entry{}, &ValidationError{Errors: errs}
	}

	e := Entry{
		title:       values[FieldTitle].(string),
		description: values[FieldDescription].(string),
		pubDate:     values[FieldPubDate].(time.Time),
	}
	if v, ok := values[FieldUpdatedDate]; ok {
		e.updatedDate = Some(v.(time.Time))
	}
	if v, ok := values[FieldHeroImage]; ok {
		e.heroImage = Some(v.(string))
	}
	if v, ok := values[FieldTags]; ok {
		e.tags = Some(v.([]string))
	}
	return e, nil
}

func (f field) coerce(v any) (any, error) {
	switch f.kind {
	case kindText:
		s, ok := v.(string)
		if !ok {
			return nil, errNotText
		}
		if f.nonBlank && strings.TrimSpace(s) == "" {
			return nil, errMissingField
		}
		return s, nil
	case kindDate:
		return coerceDate(v)
	case kindTextList:
		return coerceTextList(v)
	}
	panic(fmt.Sprintf("pubcontent: unhandled field kind %d", f.kind))
}

// Month-name layouts common in hand-written front matter that cast does not
// try on its own.
var extraDateLayouts = []string{
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
}

// coerceDate accepts a time.Time or a date-like string in any layout cast
// understands (2006-01-02, RFC 3339, ...) or one of extraDateLayouts.
func coerceDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}, errInvalidDate
		}
		if t, err := cast.ToTimeE(s); err == nil {
			return t, nil
		}
		for _, layout := range extraDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, errInvalidDate
}

func coerceTextList(v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), nil
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, errNotTextList
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, errNotTextList
}
