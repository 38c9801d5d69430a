// Package form decodes and validates submitted post forms.
package form

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

const (
	// FieldTitle is the form field holding the post title.
	FieldTitle = "title"
	// FieldDescription is the form field holding the post body.
	FieldDescription = "description"
)

// Error codes reported per field.
const (
	CodeRequired  = "required"
	CodeMaxLength = "max_length"
)

// PostForm holds raw submitted values, echoed back when validation fails.
type PostForm struct {
	Title       string
	Description string
}

// FromPost pre-fills a form with a stored post.
func FromPost(post storage.Post) PostForm {
	return PostForm{Title: post.Title, Description: post.Description}
}

// FieldError describes one failed rule for a field.
type FieldError struct {
	Code   string
	Limit  int
	Actual int
}

// Errors maps field names to their failures. A nil Errors means valid.
type Errors map[string][]FieldError

// For returns the failures recorded for field.
func (e Errors) For(field string) []FieldError {
	if e == nil {
		return nil
	}
	return e[field]
}

// Fields returns the failing field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Error summarizes the failures, e.g. for logs.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		for _, fe := range e[field] {
			parts = append(parts, field+": "+fe.Code)
		}
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

type postFields struct {
	Title       string `form:"title" validate:"required,max=50"`
	Description string `form:"description" validate:"required,max=200"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})
	return v
}

// Decode reads the post fields from a submitted form.
func Decode(r *http.Request) (PostForm, error) {
	if err := r.ParseForm(); err != nil {
		return PostForm{}, fmt.Errorf("parse form: %w", err)
	}
	return PostForm{
		Title:       r.PostFormValue(FieldTitle),
		Description: r.PostFormValue(FieldDescription),
	}, nil
}

// Validate trims the submitted values and checks presence and length.
// It returns the sanitized input, or the per-field failures.
func Validate(f PostForm) (storage.PostInput, Errors) {
	fields := postFields{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
	}

	err := validate.Struct(fields)
	if err == nil {
		return storage.PostInput{Title: fields.Title, Description: fields.Description}, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return storage.PostInput{}, Errors{"": {{Code: err.Error()}}}
	}

	out := Errors{}
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], toFieldError(fe))
	}
	return storage.PostInput{}, out
}

func toFieldError(fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "max":
		limit, _ := strconv.Atoi(fe.Param())
		value, _ := fe.Value().(string)
		return FieldError{Code: CodeMaxLength, Limit: limit, Actual: utf8.RuneCountInString(value)}
	case "required":
		return FieldError{Code: CodeRequired}
	default:
		return FieldError{Code: fe.Tag()}
	}
}
