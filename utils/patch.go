package utils

import (
	"reflect"
	"strconv"
	"strings"
)

// UpdatesFromPtrDTO builds a map[string]any containing only the non-nil
// *fields of a pointer DTO, keyed by the `json` tag (before any comma
// options). Feed the result to gorm's Updates for partial PATCH semantics.
func UpdatesFromPtrDTO(dto any) map[string]any {
	res := make(map[string]any)
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return res
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return res
	}
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		res[name] = fv.Elem().Interface()
	}
	return res
}

// ParseIntDefault parses a non-negative integer, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
