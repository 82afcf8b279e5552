package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one schema violation, reported by JSON field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validate is shared, read-only after init, and safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names, not Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok {
			return d.Time
		}
		return nil
	}, Date{})

	if err := v.RegisterValidation("password", passwordComplexity); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("notfuture", notFuture); err != nil {
		panic(err)
	}

	return v
}

// passwordComplexity requires one lowercase, one uppercase, one digit and
// one of @$!%*?&. Length is checked separately via the min tag.
func passwordComplexity(fl validator.FieldLevel) bool {
	var lower, upper, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

func notFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(time.Now())
}

// Check validates v against its struct tags and returns every violation.
// A nil result means the payload conforms.
func Check(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// DateFieldError reports a date value that failed to parse, in the same
// shape Check uses for schema violations.
func DateFieldError(field string) FieldError {
	return FieldError{Field: field, Message: label(field) + " must be a valid date"}
}

// fieldPath strips the outer struct name from the namespace, leaving the
// dotted JSON path ("dateOfBirth", "profile.location").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// overrides carries messages that a generic per-tag template cannot express.
var overrides = map[string]string{
	"password.password":       "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character",
	"knownAllergies.required": `Known allergies information is required (enter "None" if no allergies)`,
	"email.email":             "Please provide a valid email address",
}

func message(fe validator.FieldError) string {
	if msg, ok := overrides[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "notfuture":
		return name + " cannot be in the future"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", name, fe.Param())
	case "uuid4":
		return name + " must be a valid identifier"
	default:
		return fmt.Sprintf("%s failed validation (%s)", name, fe.Tag())
	}
}

// label turns a camelCase JSON name into a human label:
// "dateOfBirth" -> "Date of birth".
func label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
