package pubcontent

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func validRaw() map[string]any {
	return map[string]any{
		"title":       "Hello",
		"description": "World",
		"pubDate":     "2025-01-01",
	}
}

func mustValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	return ve
}

func TestValidateMinimalEntry(t *testing.T) {
	e, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if e.Title() != "Hello" {
		t.Errorf("Title = %q, want %q", e.Title(), "Hello")
	}
	if e.Description() != "World" {
		t.Errorf("Description = %q, want %q", e.Description(), "World")
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !e.PubDate().Equal(want) {
		t.Errorf("PubDate = %v, want %v", e.PubDate(), want)
	}
	if e.Tags().IsPresent() {
		t.Error("Tags should be absent")
	}
	if e.HeroImage().IsPresent() {
		t.Error("HeroImage should be absent")
	}
	if e.UpdatedDate().IsPresent() {
		t.Error("UpdatedDate should be absent")
	}
}

func TestValidateFullEntry(t *testing.T) {
	raw := validRaw()
	raw["updatedDate"] = "2025-02-10"
	raw["heroImage"] = "/blog-placeholder-1.jpg"
	raw["tags"] = []any{"go", "astro"}

	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	updated, ok := e.UpdatedDate().Get()
	if !ok || !updated.Equal(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("UpdatedDate = %v, %v", updated, ok)
	}
	if img := e.HeroImage().OrElse(""); img != "/blog-placeholder-1.jpg" {
		t.Errorf("HeroImage = %q", img)
	}
	if tags := e.TagList(); !reflect.DeepEqual(tags, []string{"go", "astro"}) {
		t.Errorf("Tags = %v, want [go astro]", tags)
	}
}

func TestValidateMissingRequiredField(t *testing.T) {
	for _, field := range []string{FieldTitle, FieldDescription, FieldPubDate} {
		t.Run(field, func(t *testing.T) {
			raw := validRaw()
			delete(raw, field)
			_, err := Validate(raw)
			ve := mustValidationError(t, err)
			got := ve.Reasons()
			want := map[string]Reason{field: MissingField}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Reasons = %v, want %v", got, want)
			}
		})
	}
}

func TestValidateMissingTitleOnly(t *testing.T) {
	_, err := Validate(map[string]any{"description": "World", "pubDate": "2025-01-01"})
	ve := mustValidationError(t, err)
	if got := ve.Fields(); !reflect.DeepEqual(got, []string{"title"}) {
		t.Errorf("Fields = %v, want [title]", got)
	}
	if r, _ := ve.Reason("title"); r != MissingField {
		t.Errorf("Reason(title) = %q, want %q", r, MissingField)
	}
}

func TestValidateNullRequiredIsMissing(t *testing.T) {
	raw := validRaw()
	raw["title"] = nil
	_, err := Validate(raw)
	ve := mustValidationError(t, err)
	if r, _ := ve.Reason("title"); r != MissingField {
		t.Errorf("Reason(title) = %q, want %q", r, MissingField)
	}
}

func TestValidateBlankTitle(t *testing.T) {
	raw := validRaw()
	raw["title"] = "   "
	_, err := Validate(raw)
	ve := mustValidationError(t, err)
	if r, _ := ve.Reason("title"); r != MissingField {
		t.Errorf("Reason(title) = %q, want %q", r, MissingField)
	}
}

func TestValidateEmptyDescriptionAllowed(t *testing.T) {
	raw := validRaw()
	raw["description"] = ""
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if e.Description() != "" {
		t.Errorf("Description = %q, want empty", e.Description())
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"title", 42},
		{"title", []any{"a"}},
		{"description", true},
		{"heroImage", 3.5},
		{"tags", "go"},
		{"tags", []any{"a", 5}},
		{"tags", map[string]any{"a": "b"}},
	}
	for _, tt := range tests {
		raw := validRaw()
		raw[tt.field] = tt.value
		_, err := Validate(raw)
		ve := mustValidationError(t, err)
		want := map[string]Reason{tt.field: TypeMismatch}
		if got := ve.Reasons(); !reflect.DeepEqual(got, want) {
			t.Errorf("%s=%v: Reasons = %v, want %v", tt.field, tt.value, got, want)
		}
	}
}

func TestValidateTagsKeepOrder(t *testing.T) {
	_, err := Validate(map[string]any{
		"title":       "T",
		"description": "D",
		"pubDate":     "2025-01-01",
		"tags":        []any{"a", 5},
	})
	ve := mustValidationError(t, err)
	want := map[string]Reason{"tags": TypeMismatch}
	if got := ve.Reasons(); !reflect.DeepEqual(got, want) {
		t.Errorf("Reasons = %v, want %v", got, want)
	}
}

func TestValidateDates(t *testing.T) {
	tests := []struct {
		input any
		want  time.Time
		ok    bool
	}{
		{"2025-01-01", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"Jul 08 2022", time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC), true},
		{"March 5, 2023", time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC), time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC), true},
		{"not-a-date", time.Time{}, false},
		{"2024-13-45", time.Time{}, false},
		{"", time.Time{}, false},
		{20240101, time.Time{}, false},
		{[]any{"2024-01-01"}, time.Time{}, false},
	}
	for _, tt := range tests {
		raw := validRaw()
		raw["pubDate"] = tt.input
		e, err := Validate(raw)
		if !tt.ok {
			ve := mustValidationError(t, err)
			if r, _ := ve.Reason("pubDate"); r != InvalidDate {
				t.Errorf("pubDate=%v: Reason = %q, want %q", tt.input, r, InvalidDate)
			}
			continue
		}
		if err != nil {
			t.Errorf("pubDate=%v: unexpected error %v", tt.input, err)
			continue
		}
		if !e.PubDate().Equal(tt.want) {
			t.Errorf("pubDate=%v: got %v, want %v", tt.input, e.PubDate(), tt.want)
		}
	}
}

func TestValidateInvalidUpdatedDate(t *testing.T) {
	raw := validRaw()
	raw["updatedDate"] = "soon"
	_, err := Validate(raw)
	ve := mustValidationError(t, err)
	want := map[string]Reason{"updatedDate": InvalidDate}
	if got := ve.Reasons(); !reflect.DeepEqual(got, want) {
		t.Errorf("Reasons = %v, want %v", got, want)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	_, err := Validate(map[string]any{
		"title":       5,
		"pubDate":     "nope",
		"updatedDate": false,
		"heroImage":   true,
		"tags":        "go",
	})
	ve := mustValidationError(t, err)
	want := map[string]Reason{
		"title":       TypeMismatch,
		"description": MissingField,
		"pubDate":     InvalidDate,
		"updatedDate": InvalidDate,
		"heroImage":   TypeMismatch,
		"tags":        TypeMismatch,
	}
	if got := ve.Reasons(); !reflect.DeepEqual(got, want) {
		t.Errorf("Reasons = %v, want %v", got, want)
	}
}

func TestValidateNullOptionalIsAbsent(t *testing.T) {
	raw := validRaw()
	raw["updatedDate"] = nil
	raw["heroImage"] = nil
	raw["tags"] = nil
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if e.UpdatedDate().IsPresent() || e.HeroImage().IsPresent() || e.Tags().IsPresent() {
		t.Error("null optional fields should be absent")
	}
}

func TestValidateTagsKeepOrderAndDuplicates(t *testing.T) {
	raw := validRaw()
	raw["tags"] = []any{"Go", "go", "web", "Go"}
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	want := []string{"Go", "go", "web", "Go"}
	if got := e.TagList(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestValidateEmptyTagsArePresent(t *testing.T) {
	raw := validRaw()
	raw["tags"] = []any{}
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	tags, ok := e.Tags().Get()
	if !ok {
		t.Fatal("empty tag list should be present")
	}
	if len(tags) != 0 {
		t.Errorf("Tags = %v, want empty", tags)
	}
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	raw := validRaw()
	raw["draft"] = true
	raw["layout"] = 7
	if _, err := Validate(raw); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	inputs := []map[string]any{
		validRaw(),
		{
			"title":       "Full",
			"description": "",
			"pubDate":     "Jul 08 2022",
			"updatedDate": "2023-01-02T03:04:05Z",
			"heroImage":   "https://example.com/x.png",
			"tags":        []any{"b", "a", "b"},
		},
		{
			"title":       "Empty tags",
			"description": "d",
			"pubDate":     time.Date(2021, 5, 6, 0, 0, 0, 0, time.UTC),
			"tags":        []string{},
		},
	}
	for _, raw := range inputs {
		first, err := Validate(raw)
		if err != nil {
			t.Fatalf("Validate(%v) failed: %v", raw, err)
		}
		second, err := Validate(first.Raw())
		if err != nil {
			t.Fatalf("re-validating canonical form failed: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("canonical entry changed on re-validation:\n first=%#v\nsecond=%#v", first, second)
		}
	}
}

func TestEntryTagsReturnsCopy(t *testing.T) {
	raw := validRaw()
	raw["tags"] = []any{"go"}
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	tags := e.TagList()
	tags[0] = "changed"
	if got := e.TagList()[0]; got != "go" {
		t.Errorf("entry tags mutated through accessor: %q", got)
	}
}

func TestValidateDoesNotAliasInput(t *testing.T) {
	input := []string{"go"}
	raw := validRaw()
	raw["tags"] = input
	e, err := Validate(raw)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	input[0] = "changed"
	if got := e.TagList()[0]; got != "go" {
		t.Errorf("entry tags follow caller slice: %q", got)
	}
}

func TestEntryMarshalJSON(t *testing.T) {
	e, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got := string(b)
	for _, want := range []string{`"title":"Hello"`, `"description":"World"`, `"pubDate":"2025-01-01T00:00:00Z"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s missing %s", got, want)
		}
	}
	for _, absent := range []string{"heroImage", "updatedDate", "tags"} {
		if strings.Contains(got, absent) {
			t.Errorf("JSON %s should omit %s", got, absent)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := Validate(map[string]any{"description": "d", "pubDate": "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"title: is required", "pubDate: must be a valid date"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestReasonOfForeignError(t *testing.T) {
	if r := ReasonOf(errors.New("boom")); r != "" {
		t.Errorf("ReasonOf = %q, want empty", r)
	}
}

func TestOptional(t *testing.T) {
	none := None[string]()
	if none.IsPresent() {
		t.Error("None should be absent")
	}
	if got := none.OrElse("x"); got != "x" {
		t.Errorf("OrElse = %q, want x", got)
	}
	var zero Optional[int]
	if zero.IsPresent() {
		t.Error("zero Optional should be absent")
	}
	some := Some("")
	v, ok := some.Get()
	if !ok || v != "" {
		t.Errorf("Some(\"\") = %q, %v; want present empty string", v, ok)
	}
}

func TestCoerceUnhandledKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("coerce with an unhandled kind did not panic")
		}
	}()
	field{name: "x", kind: fieldKind(99)}.coerce("value")
}
