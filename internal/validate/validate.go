// Package validate checks service parameters before anything is persisted.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid input")

// Enum is implemented by string enums that know their members.
type Enum interface {
	Valid() bool
}

type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required", "notblank":
		return f.Field + " is required"
	case "enum":
		return f.Field + " has an unknown value"
	case "date":
		return f.Field + " must be a date"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f.Field, f.Param)
	}

	return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
}

// Error lists every failed field. It matches ErrInvalid with errors.Is.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}

	return strings.Join(msgs, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Invalid builds an Error for checks that do not fit a struct tag.
func Invalid(field, rule, param string) error {
	return &Error{Fields: []FieldError{{Field: field, Rule: rule, Param: param}}}
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	val.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}

		return nil
	}, decimal.Decimal{})

	_ = val.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.Valid()
	})

	_ = val.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.IsZero()
	})

	_ = val.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return val
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating: %w", err)
	}

	out := &Error{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = FieldError{
			Field: toSnake(fe.Field()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		}
	}

	return out
}

func toSnake(s string) string {
	var b strings.Builder

	var prev rune

	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte('_')
			}

			b.WriteRune(r + 'a' - 'A')
		} else {
			b.WriteRune(r)
		}

		prev = r
	}

	return b.String()
}
