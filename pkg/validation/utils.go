package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/deppfellow/go-branchio/pkg/errs"
	"github.com/go-playground/validator/v10"
)

// indirect unwraps interfaces and pointers. It reports false when the
// value is absent: invalid, or a nil pointer/interface.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

func matches(v reflect.Value, types []Type) bool {
	for _, t := range types {
		if is(v, t) {
			return true
		}
	}
	return false
}

func is(v reflect.Value, t Type) bool {
	switch t {
	case String:
		return v.Kind() == reflect.String || isBytes(v)
	case Int:
		return isInteger(v)
	case Float:
		return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
	case Bool:
		return v.Kind() == reflect.Bool
	case List:
		return isList(v)
	case Map:
		return v.Kind() == reflect.Map
	}
	return false
}

func isBytes(v reflect.Value) bool {
	return v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8
}

func isList(v reflect.Value) bool {
	return (v.Kind() == reflect.Slice || v.Kind() == reflect.Array) && !isBytes(v)
}

func isInteger(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func hasLength(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

// length counts runes for strings and elements for everything else.
func length(v reflect.Value) int {
	if v.Kind() == reflect.String {
		return utf8.RuneCountInString(v.String())
	}
	return v.Len()
}

// integer returns v as an int64. overflow is true for unsigned values
// above math.MaxInt64.
func integer(v reflect.Value) (n int64, overflow bool) {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, true
		}
		return int64(u), false
	}
	return v.Int(), false
}

// fromValidator converts the result of a single-tag validate.Var call into
// a ValidationError of the given kind.
func fromValidator(err error, kind errs.Kind, got any) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	var msg string

	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%v characters, must not exceed %s", got, fe.Param())
		} else {
			msg = fmt.Sprintf("%v items, must not exceed %s", got, fe.Param())
		}

	case "gte":
		msg = fmt.Sprintf("%v must be at least %s", got, fe.Param())

	case "lte":
		msg = fmt.Sprintf("%v must not exceed %s", got, fe.Param())

	default:
		msg = fmt.Sprintf("%v: %s:%s", got, fe.Tag(), fe.Param())
	}

	return errs.NewValidationError(kind, "", "%s", msg)
}
