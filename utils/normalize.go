package utils

import (
	"reflect"
	"strings"
)

// SanitizeFileName replaces path separators and other characters that are
// unsafe in download file names. Contract numbers like "12/HĐ-VPKĐ" become
// "12-HĐ-VPKĐ".
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "",
		"?", "",
		"\"", "",
		"<", "",
		">", "",
		"|", "",
	)
	return strings.TrimSpace(replacer.Replace(name))
}

// NormalizeDTO trims every string field (and non-nil *string field) on a
// pointer-to-struct DTO in place. Nil pointers stay nil so GORM partial
// updates are unaffected. Monetary fields are decimals and are not touched.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		switch f.Kind() {
		case reflect.String:
			if f.CanSet() {
				f.SetString(strings.TrimSpace(f.String()))
			}
		case reflect.Ptr:
			if !f.IsNil() && f.Elem().Kind() == reflect.String {
				f.Elem().SetString(strings.TrimSpace(f.Elem().String()))
			}
		}
	}
}
