package models

import (
	"strings"
	"time"
)

// DateLayout формат календарной даты в параметрах запроса.
const DateLayout = "2006-01-02"

// Filter провалидированные параметры выборки аналитики.
// nil в любом поле означает отсутствие ограничения по этому измерению.
type Filter struct {
	DateFrom *time.Time // Начало диапазона включительно
	DateTo   *time.Time // Конец диапазона включительно
	AgeGroup *AgeGroup
	Gender   *Gender
}

// DummyFilter принимает сырые строковые параметры запроса до валидации
// и преобразования в Filter. Теги isodate, agegroup и gender регистрирует queryfilter.New.
type DummyFilter struct {
	DateFrom string `query:"date_from" validate:"omitempty,isodate"`
	DateTo   string `query:"date_to" validate:"omitempty,isodate"`
	AgeGroup string `query:"age_group" validate:"omitempty,agegroup"`
	Gender   string `query:"gender" validate:"omitempty,gender"`
}

// Key возвращает каноническое строковое представление фильтра,
// одинаковое для равных фильтров. Используется как ключ кеша.
func (f Filter) Key() string {
	parts := []string{"-", "-", "-", "-"}
	if f.DateFrom != nil {
		parts[0] = f.DateFrom.Format(DateLayout)
	}
	if f.DateTo != nil {
		parts[1] = f.DateTo.Format(DateLayout)
	}
	if f.AgeGroup != nil {
		parts[2] = string(*f.AgeGroup)
	}
	if f.Gender != nil {
		parts[3] = string(*f.Gender)
	}
	return strings.Join(parts, ":")
}
