// Package models содержит доменные структуры сервиса аналитики:
// дневные записи использования функций, фильтр запроса и пользователя.
package models

import "time"

// AgeGroup возрастная группа, которой помечена запись.
type AgeGroup string

// Gender пол, которым помечена запись.
type Gender string

const (
	// AgeGroup15to25 соответствует группе "15-25".
	AgeGroup15to25 AgeGroup = "AGE_15_25"
	// AgeGroupOver25 соответствует группе "over-25".
	AgeGroupOver25 AgeGroup = "OVER_25"

	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// AgeGroups закрытый набор допустимых возрастных групп.
var AgeGroups = []AgeGroup{AgeGroup15to25, AgeGroupOver25}

// Genders закрытый набор допустимых значений пола.
var Genders = []Gender{GenderMale, GenderFemale}

// Valid сообщает, принадлежит ли значение перечислению.
func (a AgeGroup) Valid() bool {
	for _, v := range AgeGroups {
		if a == v {
			return true
		}
	}
	return false
}

// Valid сообщает, принадлежит ли значение перечислению.
func (g Gender) Valid() bool {
	for _, v := range Genders {
		if g == v {
			return true
		}
	}
	return false
}

// FeatureUsage агрегированные за один день счётчики использования шести функций
// для пары (возрастная группа, пол). Записи только читаются.
type FeatureUsage struct {
	ID       int       `json:"id"`
	Day      time.Time `json:"day"`
	AgeGroup AgeGroup  `json:"ageGroup"`
	Gender   Gender    `json:"gender"`
	FeatureA int       `json:"featureA"`
	FeatureB int       `json:"featureB"`
	FeatureC int       `json:"featureC"`
	FeatureD int       `json:"featureD"`
	FeatureE int       `json:"featureE"`
	FeatureF int       `json:"featureF"`
}
