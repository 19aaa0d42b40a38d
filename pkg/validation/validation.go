// Package validation checks parameter values against declarative
// constraints before they are sent to the API.
//
// A Constraint describes the rules for one field. Check runs them and, on
// success, records the value in an accumulating params map:
//
//	params := map[string]any{}
//	err := validation.Check("identity", "user-42", params, validation.Constraint{
//		Types:     []validation.Type{validation.String},
//		MaxLength: validation.Limit(127),
//	})
//
// Length and range rules are evaluated with go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/deppfellow/go-branchio/pkg/errs"
	"github.com/go-playground/validator/v10"
)

// Type is a class of value a constraint can require.
type Type int

const (
	// String matches Go strings and byte slices.
	String Type = iota + 1
	// Int matches every signed and unsigned integer kind.
	Int
	// Float matches float32 and float64.
	Float
	// Bool matches booleans.
	Bool
	// List matches slices and arrays (byte slices excluded).
	List
	// Map matches any map.
	Map
)

func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Map:
		return "map"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Constraint is the set of rules applied to one value.
//
// The zero Constraint accepts anything, including an absent value. Nil
// bounds are not checked.
type Constraint struct {
	// Required rejects an absent value.
	Required bool

	// Types lists the accepted types. Empty accepts any type.
	Types []Type

	// MaxLength bounds the length of strings, lists and maps.
	MaxLength *int

	// Gte and Lte are inclusive bounds, applied to integers only.
	//
	// Values of any other type skip them silently: a string checked
	// against Gte always passes.
	Gte *int64
	Lte *int64

	// SubTypes and SubMaxLength apply to each element of a list, or to
	// each value of a map. Map keys are not checked.
	SubTypes     []Type
	SubMaxLength *int
}

// Limit returns a pointer to n, for MaxLength and SubMaxLength.
func Limit(n int) *int {
	return &n
}

// Bound returns a pointer to n, for Gte and Lte.
func Bound(n int64) *int64 {
	return &n
}

// Field pairs a value with its name and constraint, for CheckAll.
type Field struct {
	Name       string
	Value      any
	Constraint Constraint
}

var validate = validator.New()

// Check validates value against c. On success, and when both name and into
// are given, a present value is stored in into under name, replacing any
// previous entry. An absent optional value leaves into untouched, and
// nothing is stored on failure.
//
// Errors are *errs.ValidationError attributed to name.
func Check(name string, value any, into map[string]any, c Constraint) error {
	if err := Validate(c, value); err != nil {
		// Validate does not know the field name, attach it here so the
		// caller sees which param was rejected.
		var ve *errs.ValidationError
		if name != "" && errors.As(err, &ve) {
			return ve.WithField(name)
		}
		return err
	}

	// An optional field that was not given is omitted from the params
	// entirely, it must not show up as a null key in the request body.
	if _, present := indirect(reflect.ValueOf(value)); !present {
		return nil
	}

	if name != "" && into != nil {
		// Store the value as given, not the dereferenced one.
		into[name] = value
	}
	return nil
}

// CheckAll runs Check for each field in order and stops at the first
// failure. Fields checked before the failure stay in into.
func CheckAll(into map[string]any, fields ...Field) error {
	for _, f := range fields {
		if err := Check(f.Name, f.Value, into, f.Constraint); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks value against c without recording it anywhere.
//
// An untyped nil or a nil pointer is absent. Pointers are dereferenced
// before the rules run.
func Validate(c Constraint, value any) error {
	// Unwrap pointers and interfaces first. Every rule below looks at the
	// underlying value, and a nil pointer counts as "not given".
	v, present := indirect(reflect.ValueOf(value))
	if !present {
		if c.Required {
			return errs.NewValidationError(errs.MissingRequiredField, "", "value is required")
		}
		return nil
	}

	// The rules run in a fixed order and the first violation wins:
	// type, then length, then the element or range rules.
	if len(c.Types) > 0 && !matches(v, c.Types) {
		return errs.NewValidationError(errs.TypeMismatch, "", "%s is not %s", v.Type(), describeTypes(c.Types))
	}

	// A max length on something without a length (a number, a bool) is a
	// type problem, not a length problem.
	if c.MaxLength != nil {
		if err := checkLength(v, *c.MaxLength, errs.TypeMismatch, errs.LengthExceeded); err != nil {
			return err
		}
	}

	switch {
	case isList(v):
		for i := 0; i < v.Len(); i++ {
			if err := checkElement(v.Index(i), c); err != nil {
				return prefix(err, fmt.Sprintf("element %d", i))
			}
		}

	case v.Kind() == reflect.Map:
		// Only map values are checked. Keys are visited sorted so the same
		// input always reports the same failing entry.
		for _, key := range sortedKeys(v) {
			if err := checkElement(v.MapIndex(key), c); err != nil {
				return prefix(err, fmt.Sprintf("value of %v", key.Interface()))
			}
		}

	case isInteger(v):
		// Gte and Lte only ever apply to integers. Floats, strings and the
		// rest pass through without a range check.
		return checkRange(v, c)
	}

	return nil
}

func checkElement(elem reflect.Value, c Constraint) error {
	v, present := indirect(elem)

	if len(c.SubTypes) > 0 && (!present || !matches(v, c.SubTypes)) {
		got := "null"
		if present {
			got = v.Type().String()
		}
		return errs.NewValidationError(errs.SubTypeMismatch, "", "%s is not %s", got, describeTypes(c.SubTypes))
	}

	if c.SubMaxLength != nil {
		if !present {
			return errs.NewValidationError(errs.SubTypeMismatch, "", "null has no length")
		}
		return checkLength(v, *c.SubMaxLength, errs.SubTypeMismatch, errs.SubLengthExceeded)
	}

	return nil
}

func checkLength(v reflect.Value, limit int, noLength, exceeded errs.Kind) error {
	if !hasLength(v) {
		return errs.NewValidationError(noLength, "", "%s has no length", v.Type())
	}

	if err := validate.Var(v.Interface(), fmt.Sprintf("max=%d", limit)); err != nil {
		return fromValidator(err, exceeded, length(v))
	}
	return nil
}

func checkRange(v reflect.Value, c Constraint) error {
	n, overflow := integer(v)

	if c.Gte != nil && !overflow {
		if err := validate.Var(n, fmt.Sprintf("gte=%d", *c.Gte)); err != nil {
			return fromValidator(err, errs.RangeViolation, n)
		}
	}

	if c.Lte != nil {
		if overflow {
			return errs.NewValidationError(errs.RangeViolation, "", "%v must not exceed %d", v.Interface(), *c.Lte)
		}
		if err := validate.Var(n, fmt.Sprintf("lte=%d", *c.Lte)); err != nil {
			return fromValidator(err, errs.RangeViolation, n)
		}
	}

	return nil
}

func prefix(err error, where string) error {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return &errs.ValidationError{
			Kind:    ve.Kind,
			Field:   ve.Field,
			Message: where + ": " + ve.Message,
		}
	}
	return err
}

func describeTypes(types []Type) string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return strings.Join(names, " or ")
}

func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}
