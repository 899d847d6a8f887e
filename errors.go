package pubcontent

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/morikuni/failure"
)

// Reason classifies why a single field failed validation.
type Reason string

const (
	MissingField Reason = "missing_field"
	TypeMismatch Reason = "type_mismatch"
	InvalidDate  Reason = "invalid_date"
)

var (
	errMissingField = validation.NewError(string(MissingField), "is required")
	errNotText      = validation.NewError(string(TypeMismatch), "must be text")
	errNotTextList  = validation.NewError(string(TypeMismatch), "must be a list of text values")
	errInvalidDate  = validation.NewError(string(InvalidDate), "must be a valid date")
)

// ValidationError reports every field of an entry that failed validation.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return "invalid entry: " + e.Errors.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Errors
}

// Fields returns the names of the failed fields in sorted order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Reason returns the failure reason recorded for field.
func (e *ValidationError) Reason(field string) (Reason, bool) {
	err, ok := e.Errors[field]
	if !ok {
		return "", false
	}
	return ReasonOf(err), true
}

// Reasons maps each failed field to its reason.
func (e *ValidationError) Reasons() map[string]Reason {
	out := make(map[string]Reason, len(e.Errors))
	for name, err := range e.Errors {
		out[name] = ReasonOf(err)
	}
	return out
}

// ReasonOf extracts the Reason carried by a field error, or "" if err
// did not come from the schema validator.
func ReasonOf(err error) Reason {
	var ve validation.Error
	if errors.As(err, &ve) {
		return Reason(ve.Code())
	}
	return ""
}

// Failure codes for documents rejected while loading a collection.
const (
	ReadFailed          failure.StringCode = "ReadFailed"
	ParseFailed         failure.StringCode = "ParseFailed"
	InvalidEntry        failure.StringCode = "InvalidEntry"
	DuplicateSlug       failure.StringCode = "DuplicateSlug"
	HeroImageUnreadable failure.StringCode = "HeroImageUnreadable"
	NotFound            failure.StringCode = "NotFound"
)
