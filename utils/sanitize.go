package utils

import (
	"html"
	"reflect"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize trims and strips markup from every string, []string and non-nil
// *string field of the struct pointed to by o. Nested structs and fields
// tagged `sanitize:"-"` are left untouched.
func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || t.Field(i).Tag.Get("sanitize") == "-" {
			continue
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(SanitizeString(field.String()))

		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String {
				field.Elem().SetString(SanitizeString(field.Elem().String()))
			}

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(SanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

// maxSanitizePasses bounds the decode loop for deeply entity-encoded input.
const maxSanitizePasses = 8

// SanitizeString strips tags and surrounding whitespace. Entities produced by
// the policy are decoded again, templates escape on output. Decoding can
// expose new markup, so the pass repeats until the value is stable and
// SanitizeString(SanitizeString(s)) == SanitizeString(s).
func SanitizeString(s string) string {
	out := strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(out)))
		if next == out {
			break
		}
		out = next
	}
	return out
}
