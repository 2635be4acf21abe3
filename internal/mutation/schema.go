// Package mutation runs form submissions through a validate-then-submit
// pipeline shared by every write the console performs.
package mutation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/medipharm/medipharm-console/internal/domain/model"
)

// ValidationError reports per-field problems keyed by the payload's JSON
// field names, which are also the HTML form field names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// Field returns the message for name, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

// Schema validates a payload and returns its coerced form.
// A rejected payload yields a *ValidationError.
type Schema[T any] interface {
	Validate(v T) (T, error)
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc[T any] func(v T) (T, error)

func (f SchemaFunc[T]) Validate(v T) (T, error) { return f(v) }

// StructSchema validates T with `validate` struct tags after an optional
// normalization step.
type StructSchema[T any] struct {
	normalize func(T) T
	check     func(T) map[string]string
}

// SchemaOption configures a StructSchema.
type SchemaOption[T any] func(*StructSchema[T])

// WithNormalize runs fn before validation; the validated payload is fn's result.
func WithNormalize[T any](fn func(T) T) SchemaOption[T] {
	return func(s *StructSchema[T]) { s.normalize = fn }
}

// WithCheck adds cross-field rules that struct tags cannot express.
// It returns field messages, or nil when the payload is fine.
func WithCheck[T any](fn func(T) map[string]string) SchemaOption[T] {
	return func(s *StructSchema[T]) { s.check = fn }
}

// NewStructSchema builds a tag-driven schema for T.
func NewStructSchema[T any](opts ...SchemaOption[T]) *StructSchema[T] {
	s := &StructSchema[T]{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StructSchema[T]) Validate(v T) (T, error) {
	if s.normalize != nil {
		v = s.normalize(v)
	}

	fields := map[string]string{}
	if err := Validator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return v, fmt.Errorf("validate %T: %w", v, err)
		}
		for _, fe := range verrs {
			name := fieldName(fe)
			if _, seen := fields[name]; !seen {
				fields[name] = fieldMessage(fe)
			}
		}
	}
	if s.check != nil {
		for k, msg := range s.check(v) {
			if _, seen := fields[k]; !seen {
				fields[k] = msg
			}
		}
	}

	if len(fields) > 0 {
		return v, &ValidationError{Fields: fields}
	}
	return v, nil
}

// SliceSchema validates every element with elem. Field keys are prefixed
// with the element index, e.g. "2.name".
func SliceSchema[T any](elem Schema[T]) Schema[[]T] {
	return SchemaFunc[[]T](func(items []T) ([]T, error) {
		if len(items) == 0 {
			return items, &ValidationError{Fields: map[string]string{"items": "At least one item is required."}}
		}
		out := make([]T, len(items))
		fields := map[string]string{}
		for i, item := range items {
			v, err := elem.Validate(item)
			out[i] = v
			if err == nil {
				continue
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return items, err
			}
			for k, msg := range verr.Fields {
				fields[fmt.Sprintf("%d.%s", i, k)] = msg
			}
		}
		if len(fields) > 0 {
			return out, &ValidationError{Fields: fields}
		}
		return out, nil
	})
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the console's custom tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			default:
				return name
			}
		})
		// RegisterValidation only fails for an empty tag or nil func.
		_ = v.RegisterValidation("medication_form", func(fl validator.FieldLevel) bool {
			return model.MedicationForm(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s.", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", label, fe.Param())
	case "latitude":
		return "Latitude must be between -90 and 90."
	case "longitude":
		return "Longitude must be between -180 and 180."
	case "url":
		return "Enter a valid URL."
	case "datetime":
		return label + " must be a date (YYYY-MM-DD)."
	case "medication_form":
		return "Choose a valid form."
	default:
		return label + " is invalid."
	}
}

// humanize turns a JSON field name into a label: "phoneNumber" -> "Phone number".
func humanize(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
