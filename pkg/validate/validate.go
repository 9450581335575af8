// Package validate checks struct fields against rules in a `validate` tag.
//
// Rules are comma separated:
//
//	required      field must not be zero/blank
//	nullable      skip remaining rules when the field is empty
//	email         valid email address
//	objectid      24 hex characters (a document ID)
//	min=N max=N   string length in characters
//	gt=N gte=N    numeric lower bounds
//	lte=N         numeric upper bound
//	in=a|b|c      value must be one of the listed items
//
// Example:
//
//	type ContactInput struct {
//	    Email   string `json:"email"   validate:"required,email"`
//	    Message string `json:"message" validate:"required,max=5000"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Struct validates the tagged fields of v and returns json field name →
// message. An empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		value := rv.Field(i)
		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if msg := apply(strings.TrimSpace(rule), name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	return errs
}

func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func apply(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "", "nullable":
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "objectid":
		if !objectIDRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid id.", field)
		}
	case "min":
		if float64(len([]rune(raw))) < parseFloat(param) {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		if float64(len([]rune(raw))) > parseFloat(param) {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt":
		if toFloat(v) <= parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if toFloat(v) < parseFloat(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		if toFloat(v) > parseFloat(param) {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "oneline":
		if strings.ContainsAny(raw, "\r\n") {
			return fmt.Sprintf("The %s must be a single line.", field)
		}
	case "in":
		for _, allowed := range strings.Split(param, "|") {
			if raw == allowed {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s has an unknown validation rule %q.", field, key)
	}
	return ""
}

var (
	emailRE    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	objectIDRE = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return parseFloat(fmt.Sprintf("%v", v.Interface()))
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
