package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/feature-analytics/internal/migrations"
	"github.com/magabrotheeeer/feature-analytics/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	_, err = migrations.Run(storage.DB, migrationsPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	return storage
}

// TestDataFactory создаёт тестовые записи в базе.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUsage вставляет одну запись использования функций и возвращает её ID.
func (f *TestDataFactory) CreateUsage(t *testing.T, day time.Time, age models.AgeGroup, gender models.Gender, counters [6]int) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO feature_usage
		(day, age_group, gender, feature_a, feature_b, feature_c, feature_d, feature_e, feature_f)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		day, string(age), string(gender),
		counters[0], counters[1], counters[2], counters[3], counters[4], counters[5]).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateDays вставляет по записи на каждую комбинацию групп для дней [from, from+days).
func (f *TestDataFactory) CreateDays(t *testing.T, from time.Time, days int) int {
	t.Helper()
	count := 0
	for i := range days {
		day := from.AddDate(0, 0, i)
		for _, age := range models.AgeGroups {
			for _, gender := range models.Genders {
				f.CreateUsage(t, day, age, gender, [6]int{i, i + 1, i + 2, i + 3, i + 4, i + 5})
				count++
			}
		}
	}
	return count
}
