// Package pubcontent validates the front matter of a Markdown/MDX blog
// collection. Validate checks one metadata map against the post schema and
// reports every offending field; Load walks a content directory, validates
// each document in parallel and assembles the accepted posts into a
// Collection.
package pubcontent

import (
	"slices"
	"time"

	"github.com/goccy/go-json"
)

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the held value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Entry is the canonical metadata of one blog post after validation.
// Fields are only reachable through accessors so a validated entry stays
// as it was produced.
type Entry struct {
	title       string
	description string
	pubDate     time.Time
	updatedDate Optional[time.Time]
	heroImage   Optional[string]
	tags        Optional[[]string]
}

func (e Entry) Title() string                    { return e.title }
func (e Entry) Description() string              { return e.description }
func (e Entry) PubDate() time.Time               { return e.pubDate }
func (e Entry) UpdatedDate() Optional[time.Time] { return e.updatedDate }
func (e Entry) HeroImage() Optional[string]      { return e.heroImage }

// Tags returns a copy of the tag list in source order.
func (e Entry) Tags() Optional[[]string] {
	if tags, ok := e.tags.Get(); ok {
		return Some(slices.Clone(tags))
	}
	return None[[]string]()
}

// TagList returns the tags, or nil when the entry has none.
func (e Entry) TagList() []string {
	return e.Tags().OrElse(nil)
}

// Raw returns the entry as a raw field mapping. Validating the result
// yields an entry equal to e.
func (e Entry) Raw() map[string]any {
	raw := map[string]any{
		FieldTitle:       e.title,
		FieldDescription: e.description,
		FieldPubDate:     e.pubDate,
	}
	if d, ok := e.updatedDate.Get(); ok {
		raw[FieldUpdatedDate] = d
	}
	if img, ok := e.heroImage.Get(); ok {
		raw[FieldHeroImage] = img
	}
	if tags, ok := e.tags.Get(); ok {
		raw[FieldTags] = slices.Clone(tags)
	}
	return raw
}

type entryJSON struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PubDate     time.Time  `json:"pubDate"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
	HeroImage   *string    `json:"heroImage,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// MarshalJSON encodes the entry with absent optional fields omitted.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		Title:       e.title,
		Description: e.description,
		PubDate:     e.pubDate,
	}
	if d, ok := e.updatedDate.Get(); ok {
		out.UpdatedDate = &d
	}
	if img, ok := e.heroImage.Get(); ok {
		out.HeroImage = &img
	}
	if tags, ok := e.tags.Get(); ok {
		out.Tags = tags
	}
	return json.Marshal(out)
}

// Post is a validated entry together with the document it came from.
type Post struct {
	Slug  string `json:"slug"`
	Path  string `json:"path"`
	Entry Entry  `json:"entry"`
	Body  string `json:"-"`
}
