// Package validate checks request structs against `validate` tags.
//
// Rules are comma-separated and applied in order; the first failure wins:
//
//	required      not zero, and not blank for strings
//	email         looks like an email address
//	alpha_dash    letters, digits, hyphens, underscores
//	min=N         strings: at least N runes; numbers: at least N
//	max=N         strings: at most N runes; numbers: at most N
//	in=A|B|C      one of the listed values
//
// Messages are keyed by the field's json name:
//
//	type orderRules struct {
//	    Quantity  int    `json:"quantity"   validate:"min=1"`
//	    PizzaSize string `json:"pizza_size" validate:"in=SMALL|MEDIUM|LARGE|EXTRA_LARGE"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type rule func(field, param string, v reflect.Value) string

var rules = map[string]rule{
	"required":   required,
	"email":      email,
	"alpha_dash": alphaDash,
	"min":        bound(func(got, limit float64) bool { return got >= limit }, "be at least %s", "be at least %s characters"),
	"max":        bound(func(got, limit float64) bool { return got <= limit }, "not be greater than %s", "not exceed %s characters"),
	"in":         oneOf,
}

// Struct validates the exported, tagged fields of v (a struct or pointer to
// one). The result maps json field name to message and is empty when v is
// valid. Unknown rule names panic, since they are programming errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || !f.IsExported() {
			continue
		}
		name := jsonName(f)
		for _, part := range strings.Split(tag, ",") {
			key, param, _ := strings.Cut(strings.TrimSpace(part), "=")
			check, ok := rules[key]
			if !ok {
				panic(fmt.Sprintf("validate: unknown rule %q on %s.%s", key, rt.Name(), f.Name))
			}
			if msg := check(name, param, rv.Field(i)); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func required(field, _ string, v reflect.Value) string {
	missing := v.IsZero()
	switch v.Kind() {
	case reflect.String:
		missing = strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		missing = false
	}
	if missing {
		return fmt.Sprintf("The %s field is required.", field)
	}
	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func email(field, _ string, v reflect.Value) string {
	if !emailRE.MatchString(text(v)) {
		return fmt.Sprintf("The %s must be a valid email address.", field)
	}
	return ""
}

func alphaDash(field, _ string, v reflect.Value) string {
	for _, c := range text(v) {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
			return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field)
		}
	}
	return ""
}

func oneOf(field, param string, v reflect.Value) string {
	got := text(v)
	for _, allowed := range strings.Split(param, "|") {
		if got == strings.TrimSpace(allowed) {
			return ""
		}
	}
	return fmt.Sprintf("The selected %s is invalid.", field)
}

// bound builds min/max: numbers compare by value, everything else by rune
// count.
func bound(ok func(got, limit float64) bool, numMsg, lenMsg string) rule {
	return func(field, param string, v reflect.Value) string {
		limit, err := strconv.ParseFloat(param, 64)
		if err != nil {
			panic(fmt.Sprintf("validate: bad limit %q for %s", param, field))
		}
		if n, numeric := number(v); numeric {
			if !ok(n, limit) {
				return fmt.Sprintf("The %s must "+numMsg+".", field, param)
			}
			return ""
		}
		if !ok(float64(len([]rune(text(v)))), limit) {
			return fmt.Sprintf("The %s must "+lenMsg+".", field, param)
		}
		return ""
	}
}

func number(v reflect.Value) (float64, bool) {
	switch {
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	case v.CanFloat():
		return v.Float(), true
	}
	return 0, false
}

func text(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}
