package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/feature-analytics/internal/models"
)

// FindFeatureUsage возвращает не более limit записей, удовлетворяющих фильтру.
//
// Ограничения применяются конъюнктивно; отсутствующее в фильтре измерение
// ничего не ограничивает. Границы диапазона дат включительные.
// Порядок (day, id) делает результат детерминированным для одинаковых данных.
func (s *Storage) FindFeatureUsage(ctx context.Context, filter models.Filter, limit int) ([]models.FeatureUsage, error) {
	const op = "storage.FindFeatureUsage"

	var dateFrom, dateTo, ageGroup, gender any
	if filter.DateFrom != nil {
		dateFrom = *filter.DateFrom
	}
	if filter.DateTo != nil {
		dateTo = *filter.DateTo
	}
	if filter.AgeGroup != nil {
		ageGroup = string(*filter.AgeGroup)
	}
	if filter.Gender != nil {
		gender = string(*filter.Gender)
	}

	query := `SELECT id, day, age_group, gender,
			      feature_a, feature_b, feature_c, feature_d, feature_e, feature_f
			  FROM feature_usage
			  WHERE ($1::date IS NULL OR day >= $1::date)
			    AND ($2::date IS NULL OR day <= $2::date)
			    AND ($3::text IS NULL OR age_group = $3::text)
			    AND ($4::text IS NULL OR gender = $4::text)
			  ORDER BY day, id
			  LIMIT $5`
	rows, err := s.DB.QueryContext(ctx, query, dateFrom, dateTo, ageGroup, gender, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.FeatureUsage, 0)
	for rows.Next() {
		var (
			item models.FeatureUsage
			ag   string
			gd   string
		)
		if err := rows.Scan(&item.ID, &item.Day, &ag, &gd,
			&item.FeatureA, &item.FeatureB, &item.FeatureC,
			&item.FeatureD, &item.FeatureE, &item.FeatureF); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.AgeGroup = models.AgeGroup(ag)
		item.Gender = models.Gender(gd)
		item.Day = item.Day.UTC()
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
