package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("hcl"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field and reports all problems at once.
func (f *File) Validate() error {
	var result *multierror.Error

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Errorf("validating config: %w", err)
		}
		for _, e := range verrs {
			result = multierror.Append(result, errors.Errorf("%s: %s", fieldPath(e), describe(e)))
		}
	}

	if f.Outline != nil && f.Outline.StylesheetTimeout != nil {
		if d, err := time.ParseDuration(*f.Outline.StylesheetTimeout); err != nil {
			result = multierror.Append(result, errors.Errorf("outline.stylesheet_timeout: %w", err))
		} else if d < 0 {
			result = multierror.Append(result, errors.New("outline.stylesheet_timeout: must not be negative"))
		}
	}

	return result.ErrorOrNil()
}

// fieldPath drops the root type name: "File.format.indent_size" becomes
// "format.indent_size".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("unknown value %q, expected one of %s", e.Value(), strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("is invalid (%s)", e.Tag())
	}
}
