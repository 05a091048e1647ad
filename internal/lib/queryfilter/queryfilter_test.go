package queryfilter_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/feature-analytics/internal/lib/queryfilter"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_Valid(t *testing.T) {
	p := queryfilter.New()

	tests := []struct {
		name     string
		query    string
		wantFrom *time.Time
		wantTo   *time.Time
		wantAge  *models.AgeGroup
		wantGen  *models.Gender
	}{
		{
			name:     "full range",
			query:    "date_from=2023-01-01&date_to=2023-01-31",
			wantFrom: ptr(date(2023, 1, 1)),
			wantTo:   ptr(date(2023, 1, 31)),
		},
		{
			name:     "single day",
			query:    "date_from=2023-01-15&date_to=2023-01-15",
			wantFrom: ptr(date(2023, 1, 15)),
			wantTo:   ptr(date(2023, 1, 15)),
		},
		{
			name:     "only from",
			query:    "date_from=2022-10-04",
			wantFrom: ptr(date(2022, 10, 4)),
		},
		{
			name:   "only to",
			query:  "date_to=2022-10-29",
			wantTo: ptr(date(2022, 10, 29)),
		},
		{
			name:     "all filters",
			query:    "date_from=2022-10-04&date_to=2022-10-29&age_group=OVER_25&gender=FEMALE",
			wantFrom: ptr(date(2022, 10, 4)),
			wantTo:   ptr(date(2022, 10, 29)),
			wantAge:  ptr(models.AgeGroupOver25),
			wantGen:  ptr(models.GenderFemale),
		},
		{
			name:     "surrounding spaces are ignored",
			query:    "date_from=%202023-01-01%20&age_group=AGE_15_25",
			wantFrom: ptr(date(2023, 1, 1)),
			wantAge:  ptr(models.AgeGroup15to25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := p.Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, f.DateFrom)
			assert.Equal(t, tt.wantTo, f.DateTo)
			assert.Equal(t, tt.wantAge, f.AgeGroup)
			assert.Equal(t, tt.wantGen, f.Gender)
		})
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	p := queryfilter.New()

	tests := []struct {
		name       string
		query      string
		wantFields map[string]string
	}{
		{
			name:  "no dates",
			query: "age_group=OVER_25",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgDateRequired,
				"date_to":   queryfilter.MsgDateRequired,
			},
		},
		{
			name:  "both dates malformed are reported together",
			query: "date_from=abc&date_to=2023/01/31",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgInvalidDate,
				"date_to":   queryfilter.MsgInvalidDate,
			},
		},
		{
			name:  "impossible calendar date",
			query: "date_from=2023-02-30&date_to=2023-13-01",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgInvalidDate,
				"date_to":   queryfilter.MsgInvalidDate,
			},
		},
		{
			name:  "from after to",
			query: "date_from=2023-02-01&date_to=2023-01-01",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgDateOrder,
			},
		},
		{
			name:  "invalid age group",
			query: "date_from=2023-01-01&age_group=INVALID_VALUE",
			wantFields: map[string]string{
				"age_group": queryfilter.MsgInvalidAgeGroup,
			},
		},
		{
			name:  "enum values are case sensitive",
			query: "date_from=2023-01-01&gender=male",
			wantFields: map[string]string{
				"gender": queryfilter.MsgInvalidGender,
			},
		},
		{
			name:  "everything wrong at once",
			query: "date_from=x&date_to=y&age_group=z&gender=w",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgInvalidDate,
				"date_to":   queryfilter.MsgInvalidDate,
				"age_group": queryfilter.MsgInvalidAgeGroup,
				"gender":    queryfilter.MsgInvalidGender,
			},
		},
		{
			name:  "missing dates and bad gender",
			query: "gender=OTHER",
			wantFields: map[string]string{
				"date_from": queryfilter.MsgDateRequired,
				"date_to":   queryfilter.MsgDateRequired,
				"gender":    queryfilter.MsgInvalidGender,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.query)
			require.Error(t, err)

			var verr *queryfilter.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantFields, verr.Fields)
		})
	}
}

func TestParse_AgeGroupMessageListsValidValues(t *testing.T) {
	_, err := queryfilter.New().Parse("date_from=2023-01-01&age_group=INVALID_VALUE")

	var verr *queryfilter.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields["age_group"], "AGE_15_25")
	assert.Contains(t, verr.Fields["age_group"], "OVER_25")
	assert.Contains(t, verr.Error(), "age_group")
}

func TestParse_EveryParameterKind(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		wantMsg   string
	}{
		{name: "date_from only", query: "date_from=2024-02-29"},
		{name: "date_to only", query: "date_to=2024-03-01"},
		{name: "bad date_to", query: "date_to=2024-13-01", wantField: "date_to", wantMsg: queryfilter.MsgInvalidDate},
		{name: "age group", query: "date_from=2024-01-01&age_group=OVER_25"},
		{name: "bad age group", query: "date_from=2024-01-01&age_group=over_25", wantField: "age_group", wantMsg: queryfilter.MsgInvalidAgeGroup},
		{name: "gender", query: "date_from=2024-01-01&gender=FEMALE"},
		{name: "bad gender", query: "date_from=2024-01-01&gender=OTHER", wantField: "gender", wantMsg: queryfilter.MsgInvalidGender},
	}

	p := queryfilter.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() {
				_, err = p.Parse(tt.query)
			})
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *queryfilter.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantMsg, verr.Fields[tt.wantField])
		})
	}
}

func TestParse_MalformedQuery(t *testing.T) {
	_, err := queryfilter.New().Parse("date_from=%zz")

	require.Error(t, err)
	assert.ErrorIs(t, err, queryfilter.ErrMalformedQuery)

	var verr *queryfilter.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func ptr[T any](v T) *T {
	return &v
}
