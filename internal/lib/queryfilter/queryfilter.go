// Package queryfilter разбирает и валидирует параметры запроса аналитики
// (диапазон дат, возрастная группа, пол) в models.Filter.
//
// Все ошибки по полям собираются и возвращаются вместе; разбор не прерывается
// на первом неверном параметре. Исключение строка запроса, которую нельзя
// разобрать синтаксически: тогда возвращается одна общая ошибка.
package queryfilter

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feature-analytics/internal/models"
)

// Имена параметров запроса.
const (
	ParamDateFrom = "date_from"
	ParamDateTo   = "date_to"
	ParamAgeGroup = "age_group"
	ParamGender   = "gender"
)

// Тексты ошибок по полям.
const (
	MsgInvalidDate     = "Invalid date format, expected YYYY-MM-DD"
	MsgDateRequired    = "At least one of date_from or date_to is required"
	MsgDateOrder       = "date_from must not be after date_to"
	MsgInvalidAgeGroup = "Invalid age group provided, must be one of AGE_15_25 or OVER_25"
	MsgInvalidGender   = "Invalid gender provided, must be one of MALE or FEMALE"
)

// ErrMalformedQuery возвращается, если строку запроса нельзя разобрать.
var ErrMalformedQuery = errors.New("malformed query string")

// ValidationError содержит все найденные ошибки, сгруппированные по имени параметра.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range []string{ParamDateFrom, ParamDateTo, ParamAgeGroup, ParamGender} {
		if msg, ok := e.Fields[name]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", name, msg))
		}
	}
	return "invalid filter: " + strings.Join(parts, "; ")
}

// Parser валидирует параметры фильтра.
type Parser struct {
	validate *validator.Validate
}

// New создаёт Parser, который называет поля по тегу query.
func New() *Parser {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(models.DateLayout, fl.Field().String())
		return err == nil
	})
	mustRegister(v, "agegroup", func(fl validator.FieldLevel) bool {
		return models.AgeGroup(fl.Field().String()).Valid()
	})
	mustRegister(v, "gender", func(fl validator.FieldLevel) bool {
		return models.Gender(fl.Field().String()).Valid()
	})
	return &Parser{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("queryfilter: register %q: %v", tag, err))
	}
}

// Parse разбирает сырую строку запроса. Возвращает ErrMalformedQuery
// или *ValidationError при ошибках.
func (p *Parser) Parse(rawQuery string) (models.Filter, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return models.Filter{}, fmt.Errorf("%w: %w", ErrMalformedQuery, err)
	}
	return p.ParseValues(values)
}

// ParseValues валидирует уже разобранные параметры.
func (p *Parser) ParseValues(values url.Values) (models.Filter, error) {
	const op = "queryfilter.ParseValues"

	raw := models.DummyFilter{
		DateFrom: strings.TrimSpace(values.Get(ParamDateFrom)),
		DateTo:   strings.TrimSpace(values.Get(ParamDateTo)),
		AgeGroup: strings.TrimSpace(values.Get(ParamAgeGroup)),
		Gender:   strings.TrimSpace(values.Get(ParamGender)),
	}

	fields := make(map[string]string)
	if err := p.validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Filter{}, fmt.Errorf("%s: %w", op, err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = messageFor(fe.Field())
		}
	}

	var filter models.Filter

	filter.DateFrom = parseDate(raw.DateFrom, ParamDateFrom, fields)
	filter.DateTo = parseDate(raw.DateTo, ParamDateTo, fields)

	if raw.DateFrom == "" && raw.DateTo == "" {
		fields[ParamDateFrom] = MsgDateRequired
		fields[ParamDateTo] = MsgDateRequired
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		fields[ParamDateFrom] = MsgDateOrder
	}

	if raw.AgeGroup != "" {
		if _, bad := fields[ParamAgeGroup]; !bad {
			ag := models.AgeGroup(raw.AgeGroup)
			filter.AgeGroup = &ag
		}
	}
	if raw.Gender != "" {
		if _, bad := fields[ParamGender]; !bad {
			g := models.Gender(raw.Gender)
			filter.Gender = &g
		}
	}

	if len(fields) > 0 {
		return models.Filter{}, &ValidationError{Fields: fields}
	}
	return filter, nil
}

// parseDate возвращает nil для пустой строки или уже отклонённого поля.
func parseDate(value, field string, fields map[string]string) *time.Time {
	if value == "" {
		return nil
	}
	if _, bad := fields[field]; bad {
		return nil
	}
	d, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil {
		fields[field] = MsgInvalidDate
		return nil
	}
	return &d
}

func messageFor(field string) string {
	switch field {
	case ParamDateFrom, ParamDateTo:
		return MsgInvalidDate
	case ParamAgeGroup:
		return MsgInvalidAgeGroup
	case ParamGender:
		return MsgInvalidGender
	default:
		return "Invalid value"
	}
}
