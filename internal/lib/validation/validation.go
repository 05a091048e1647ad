// Package validation настраивает go-playground/validator для JSON-запросов.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// New возвращает валидатор, который называет поля по тегу json.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Failed возвращает тег первого нарушенного правила для каждого поля.
// Ошибка, не являющаяся validator.ValidationErrors, даёт nil.
func Failed(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

// Required выбирает поля, не прошедшие правило required, с сообщением "<Field> is required".
func Required(failed map[string]string) map[string]string {
	out := make(map[string]string)
	for field, tag := range failed {
		if tag == "required" {
			out[field] = capitalize(field) + " is required"
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
